package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/linkedin-collector/internal/client"
	"github.com/mmeshcher/linkedin-collector/internal/config"
	"github.com/mmeshcher/linkedin-collector/internal/form"
	"github.com/mmeshcher/linkedin-collector/internal/login"
	"github.com/mmeshcher/linkedin-collector/internal/ui"
)

const eventTimeout = 30 * time.Second

var errQuit = errors.New("quit")

type app struct {
	ctx   context.Context
	loop  *ui.Loop
	api   *client.Client
	lines <-chan string
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.ParseClientFlags()
	if err != nil {
		logger.Fatal("Configuration error", zap.Error(err))
	}

	api, err := client.New(cfg.BaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to create client", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := ui.NewLoop()
	go loop.Run(ctx)
	defer loop.Close()

	a := &app{ctx: ctx, loop: loop, api: api, lines: readLines(ctx)}

	fmt.Printf("外贸LinkedIn收集系统 (%s)\n", cfg.BaseURL)

	if err := a.login(); err != nil {
		if !errors.Is(err, errQuit) {
			logger.Error("Login aborted", zap.Error(err))
		}
		return
	}

	if err := a.collect(); err != nil && !errors.Is(err, errQuit) {
		logger.Error("Form aborted", zap.Error(err))
	}
}

func readLines(ctx context.Context) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case out <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (a *app) prompt(label string) (string, error) {
	fmt.Print(label)
	select {
	case line, ok := <-a.lines:
		if !ok || line == "q" {
			return "", errQuit
		}
		return line, nil
	case <-a.ctx.Done():
		return "", errQuit
	}
}

func (a *app) wait(events <-chan event, id string) (event, error) {
	timeout := time.NewTimer(eventTimeout)
	defer timeout.Stop()

	for {
		select {
		case ev := <-events:
			printEvent(ev)
			if ev.id == id {
				return ev, nil
			}
		case <-timeout.C:
			return event{}, fmt.Errorf("no response for %s", id)
		case <-a.ctx.Done():
			return event{}, errQuit
		}
	}
}

func printEvent(ev event) {
	if ev.success {
		fmt.Println("✓", ev.text)
		return
	}
	fmt.Println("✗", ev.text)
}

func (a *app) do(fn func()) error {
	if !a.loop.Do(fn) {
		return errQuit
	}
	return nil
}

func (a *app) login() error {
	var (
		page     *ui.Page
		ctrl     *login.Controller
		r        *renderer
		navigate = make(chan string, 1)
	)

	if err := a.do(func() {
		page = ui.NewPage(a.loop)
		login.Layout(page)
		r = newRenderer(a.loop, page, login.EmailMessageID, login.CodeMessageID)
		ctrl = login.New(a.ctx, page, a.loop, a.api, func(path string) { navigate <- path })
	}); err != nil {
		return err
	}
	defer a.do(func() {
		ctrl.Close()
		page.Close()
	})

	for {
		email, err := a.prompt("邮箱地址: ")
		if err != nil {
			return err
		}
		if err := a.do(func() {
			ctrl.InputEmail(email)
			ctrl.SendCode()
		}); err != nil {
			return err
		}

		ev, err := a.wait(r.events, login.EmailMessageID)
		if err != nil {
			return err
		}
		if ev.success {
			break
		}
	}

	if err := a.waitStep(ctrl, login.StepCodeEntry); err != nil {
		return err
	}

	for {
		line, err := a.prompt("验证码 (r 重新发送): ")
		if err != nil {
			return err
		}

		if line == "r" {
			var label string
			var disabled bool
			if err := a.do(func() {
				if btn, ok := page.Lookup(login.ResendButtonID); ok {
					label, disabled = btn.Text(), btn.Disabled()
				}
				ctrl.Resend()
			}); err != nil {
				return err
			}
			if disabled {
				fmt.Println("…", label)
				continue
			}
			if _, err := a.wait(r.events, login.CodeMessageID); err != nil {
				return err
			}
			continue
		}

		if err := a.do(func() {
			ctrl.InputCode(line)
			ctrl.Verify()
		}); err != nil {
			return err
		}

		ev, err := a.wait(r.events, login.CodeMessageID)
		if err != nil {
			return err
		}
		if !ev.success {
			continue
		}

		select {
		case path := <-navigate:
			fmt.Println("→", a.api.URL(path))
			return nil
		case <-a.ctx.Done():
			return errQuit
		}
	}
}

func (a *app) waitStep(ctrl *login.Controller, want login.Step) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		var step login.Step
		if err := a.do(func() { step = ctrl.Step() }); err != nil {
			return err
		}
		if step == want {
			return nil
		}

		select {
		case <-ticker.C:
		case <-a.ctx.Done():
			return errQuit
		}
	}
}

func (a *app) collect() error {
	var (
		page *ui.Page
		ctrl *form.Controller
		r    *renderer
	)

	if err := a.do(func() {
		page = ui.NewPage(a.loop)
		form.Layout(page)
		r = newRenderer(a.loop, page, form.FormMessageID)
		// The terminal asks for confirmation before calling Clear.
		ctrl = form.New(a.ctx, page, a.loop, a.api, func(string) bool { return true })
	}); err != nil {
		return err
	}
	defer a.do(func() {
		ctrl.Close()
		page.Close()
	})

	for {
		line, err := a.prompt("链接数量 (1-10): ")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			err = ctrlErr(a, func() error { return ctrl.SelectCount(n) })
		}
		if err != nil {
			fmt.Println("✗", "请选择 1 到 10 之间的数量")
			continue
		}

		for i := 1; i <= n; i++ {
			value, err := a.prompt(fmt.Sprintf("LinkedIn链接 %d: ", i))
			if err != nil {
				return err
			}

			var icon, counter string
			if err := a.do(func() {
				ctrl.Input(i, value)
				ctrl.Blur(i)
				if e, ok := page.Lookup(form.IconID(i)); ok {
					icon = e.Text()
				}
				if e, ok := page.Lookup(form.CounterID); ok {
					counter = e.Text()
				}
			}); err != nil {
				return err
			}
			fmt.Println(icon, counter)
		}

		if err := a.do(ctrl.Submit); err != nil {
			return err
		}
		if _, err := a.wait(r.events, form.FormMessageID); err != nil {
			return err
		}

		answer, err := a.prompt("回车继续提交, c 清空, q 退出: ")
		if err != nil {
			return err
		}
		if answer == "c" {
			var cleared bool
			if err := a.do(func() { cleared = ctrl.Clear() }); err != nil {
				return err
			}
			if cleared {
				fmt.Println("已清空")
			}
		}
	}
}

func ctrlErr(a *app, fn func() error) error {
	var err error
	if doErr := a.do(func() { err = fn() }); doErr != nil {
		return doErr
	}
	return err
}
