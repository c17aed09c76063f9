// Package login drives the two-step email verification page: request a code
// for an email address, then submit the code and move on to the form page.
package login

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmeshcher/linkedin-collector/internal/client"
	"github.com/mmeshcher/linkedin-collector/internal/models"
	"github.com/mmeshcher/linkedin-collector/internal/ui"
	"github.com/mmeshcher/linkedin-collector/internal/validation"
)

const (
	msgEmailRequired = "请输入邮箱地址"
	msgEmailInvalid  = "邮箱格式不正确"
	msgCodeRequired  = "请输入验证码"
	msgCodeLength    = "验证码应为6位数字"
	msgCodeResent    = "验证码已重新发送"
	msgNetworkError  = "网络错误，请稍后重试"

	resendLabel = "重新发送"

	codeLength      = 6
	resendCooldown  = 60
	stepSwitchDelay = 1000 * time.Millisecond
	navigateDelay   = 1000 * time.Millisecond
	countdownTick   = time.Second
)

type Step int

const (
	StepEmailEntry Step = iota
	StepCodeEntry
)

func (s Step) String() string {
	switch s {
	case StepEmailEntry:
		return "email-entry"
	case StepCodeEntry:
		return "code-entry"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

type Requester interface {
	Request(ctx context.Context, path string, payload any) (*models.Result, error)
}

// Navigator leaves the current page for path.
type Navigator func(path string)

// Controller owns the login page state for one page view. All methods must
// be called on the UI loop.
type Controller struct {
	ctx      context.Context
	page     *ui.Page
	rt       ui.Runtime
	api      Requester
	navigate Navigator

	step        Step
	codeSent    bool
	countdown   int
	resendTimer ui.Timer

	timerSeq int
	timers   map[int]ui.Timer
	closed   bool
}

func New(ctx context.Context, page *ui.Page, rt ui.Runtime, api Requester, navigate Navigator) *Controller {
	return &Controller{
		ctx:      ctx,
		page:     page,
		rt:       rt,
		api:      api,
		navigate: navigate,
		step:     StepEmailEntry,
		timers:   make(map[int]ui.Timer),
	}
}

func (c *Controller) Step() Step { return c.step }

func (c *Controller) CodeSent() bool { return c.codeSent }

// Countdown is the number of seconds left before a resend is allowed.
func (c *Controller) Countdown() int { return c.countdown }

func (c *Controller) InputEmail(value string) {
	if e, ok := c.page.Lookup(EmailInputID); ok {
		e.SetValue(value)
	}
}

// InputCode stores value in the code field with every non-digit removed.
func (c *Controller) InputCode(value string) {
	if e, ok := c.page.Lookup(CodeInputID); ok {
		e.SetValue(validation.FilterDigits(value))
	}
}

// KeyPress handles a key typed into one of the page inputs.
func (c *Controller) KeyPress(id, key string) {
	if key != "Enter" {
		return
	}
	switch id {
	case EmailInputID:
		c.SendCode()
	case CodeInputID:
		c.Verify()
	}
}

func (c *Controller) SendCode() {
	if c.closed || c.step != StepEmailEntry || !c.clickable(SendButtonID) {
		return
	}

	email := strings.TrimSpace(c.value(EmailInputID))
	if email == "" {
		c.page.ShowMessage(EmailMessageID, msgEmailRequired, ui.MessageError)
		return
	}
	if !validation.ValidateEmail(email) {
		c.page.ShowMessage(EmailMessageID, msgEmailInvalid, ui.MessageError)
		return
	}

	c.page.SetButtonLoading(SendButtonID, true)
	c.page.HideMessage(EmailMessageID)

	ui.Await(c.rt, func() (*models.Result, error) {
		return c.api.Request(c.ctx, client.PathSendCode, models.SendCodeRequest{Email: email})
	}, func(result *models.Result, err error) {
		defer c.page.SetButtonLoading(SendButtonID, false)
		if c.closed {
			return
		}

		switch {
		case err != nil:
			c.page.ShowMessage(EmailMessageID, msgNetworkError, ui.MessageError)
		case result.Success:
			c.page.ShowMessage(EmailMessageID, result.Message, ui.MessageSuccess)
			if e, ok := c.page.Lookup(EmailDisplayID); ok {
				e.SetText(email)
			}
			c.after(stepSwitchDelay, c.enterCodeStep)
			c.codeSent = true
			c.startResendTimer()
		default:
			c.page.ShowMessage(EmailMessageID, result.Message, ui.MessageError)
		}
	})
}

func (c *Controller) Verify() {
	if c.closed || c.step != StepCodeEntry || !c.clickable(VerifyButtonID) {
		return
	}

	email := strings.TrimSpace(c.value(EmailInputID))
	code := strings.TrimSpace(c.value(CodeInputID))
	if code == "" {
		c.page.ShowMessage(CodeMessageID, msgCodeRequired, ui.MessageError)
		return
	}
	if len(code) != codeLength {
		c.page.ShowMessage(CodeMessageID, msgCodeLength, ui.MessageError)
		return
	}

	c.page.SetButtonLoading(VerifyButtonID, true)
	c.page.HideMessage(CodeMessageID)

	ui.Await(c.rt, func() (*models.Result, error) {
		return c.api.Request(c.ctx, client.PathVerifyCode, models.VerifyCodeRequest{Email: email, Code: code})
	}, func(result *models.Result, err error) {
		defer c.page.SetButtonLoading(VerifyButtonID, false)
		if c.closed {
			return
		}

		switch {
		case err != nil:
			c.page.ShowMessage(CodeMessageID, msgNetworkError, ui.MessageError)
		case result.Success:
			c.page.ShowMessage(CodeMessageID, result.Message, ui.MessageSuccess)
			c.after(navigateDelay, func() {
				if c.navigate != nil {
					c.navigate(client.PathForm)
				}
			})
		default:
			c.page.ShowMessage(CodeMessageID, result.Message, ui.MessageError)
		}
	})
}

// Resend asks for a fresh code for the email already entered. The email
// field is not validated again.
func (c *Controller) Resend() {
	if c.closed || c.step != StepCodeEntry || !c.clickable(ResendButtonID) {
		return
	}

	email := strings.TrimSpace(c.value(EmailInputID))

	c.page.SetButtonLoading(ResendButtonID, true)
	c.page.HideMessage(CodeMessageID)

	ui.Await(c.rt, func() (*models.Result, error) {
		return c.api.Request(c.ctx, client.PathSendCode, models.SendCodeRequest{Email: email})
	}, func(result *models.Result, err error) {
		// Restored before the countdown starts so the countdown keeps the button disabled.
		c.page.SetButtonLoading(ResendButtonID, false)
		if c.closed {
			return
		}

		switch {
		case err != nil:
			c.page.ShowMessage(CodeMessageID, msgNetworkError, ui.MessageError)
		case result.Success:
			c.page.ShowMessage(CodeMessageID, msgCodeResent, ui.MessageSuccess)
			c.startResendTimer()
		default:
			c.page.ShowMessage(CodeMessageID, result.Message, ui.MessageError)
		}
	})
}

// Close cancels every pending timer. Responses that arrive afterwards are ignored.
func (c *Controller) Close() {
	c.closed = true
	c.stopResendTimer()
	for seq, t := range c.timers {
		t.Stop()
		delete(c.timers, seq)
	}
}

func (c *Controller) enterCodeStep() {
	if e, ok := c.page.Lookup(EmailStepID); ok {
		e.RemoveClass("active")
	}
	if e, ok := c.page.Lookup(CodeStepID); ok {
		e.AddClass("active")
	}
	if e, ok := c.page.Lookup(CodeInputID); ok {
		e.Focus()
	}
	c.step = StepCodeEntry
}

func (c *Controller) startResendTimer() {
	btn, ok := c.page.Lookup(ResendButtonID)
	if !ok {
		return
	}

	c.stopResendTimer()
	c.countdown = resendCooldown
	btn.SetDisabled(true)

	c.resendTimer = c.rt.Every(countdownTick, func() {
		c.countdown--
		btn.SetText(fmt.Sprintf("%s (%ds)", resendLabel, c.countdown))

		if c.countdown <= 0 {
			c.stopResendTimer()
			btn.SetDisabled(false)
			btn.SetText(resendLabel)
		}
	})
}

func (c *Controller) stopResendTimer() {
	if c.resendTimer != nil {
		c.resendTimer.Stop()
		c.resendTimer = nil
	}
}

func (c *Controller) after(d time.Duration, fn func()) {
	c.timerSeq++
	seq := c.timerSeq
	c.timers[seq] = c.rt.AfterFunc(d, func() {
		delete(c.timers, seq)
		fn()
	})
}

func (c *Controller) value(id string) string {
	if e, ok := c.page.Lookup(id); ok {
		return e.Value()
	}
	return ""
}

// clickable reports whether the button exists and is enabled.
func (c *Controller) clickable(id string) bool {
	e, ok := c.page.Lookup(id)
	return ok && !e.Disabled()
}
