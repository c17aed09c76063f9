// Package form drives the LinkedIn URL collection page: a user-chosen number
// of URL inputs with live validation, a valid-link counter and submission.
package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmeshcher/linkedin-collector/internal/client"
	"github.com/mmeshcher/linkedin-collector/internal/models"
	"github.com/mmeshcher/linkedin-collector/internal/ui"
	"github.com/mmeshcher/linkedin-collector/internal/validation"
)

const (
	msgFillAll      = "请填写所有LinkedIn链接输入框"
	msgFixInvalid   = "请检查并修正无效的LinkedIn链接格式"
	msgNeedOne      = "请至少输入一个有效的LinkedIn链接"
	msgNetworkError = "网络错误，请稍后重试"
	msgConfirmClear = "确定要清空所有内容吗？"

	iconValid   = "✓"
	iconInvalid = "✗"

	resetDelay = 2000 * time.Millisecond
)

// CountChoices is the menu of field counts a user can pick from.
var CountChoices = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

var ErrInvalidCount = errors.New("unsupported number of links")

type FieldState int

const (
	FieldEmpty FieldState = iota
	FieldValid
	FieldInvalid
)

type Requester interface {
	Request(ctx context.Context, path string, payload any) (*models.Result, error)
}

// Confirmer asks the user to confirm prompt.
type Confirmer func(prompt string) bool

// Controller owns the form page state for one page view. All methods must be
// called on the UI loop.
type Controller struct {
	ctx     context.Context
	page    *ui.Page
	rt      ui.Runtime
	api     Requester
	confirm Confirmer

	count      int
	generation int

	timerSeq int
	timers   map[int]ui.Timer
	closed   bool
}

// New wires the controller to page and generates the initial single field.
func New(ctx context.Context, page *ui.Page, rt ui.Runtime, api Requester, confirm Confirmer) *Controller {
	c := &Controller{
		ctx:     ctx,
		page:    page,
		rt:      rt,
		api:     api,
		confirm: confirm,
		timers:  make(map[int]ui.Timer),
	}

	if _, ok := page.Lookup(CountSelectID); ok {
		c.generate(1)
	}

	return c
}

// Count is the number of URL inputs currently on the page.
func (c *Controller) Count() int { return c.count }

func (c *Controller) SelectCount(n int) error {
	if !validCount(n) {
		return fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	sel, ok := c.page.Lookup(CountSelectID)
	if !ok {
		return nil
	}
	sel.SetValue(strconv.Itoa(n))
	c.generate(n)
	c.page.HideMessage(FormMessageID)
	return nil
}

// Input sets the value of field i (1-based) and revalidates it.
func (c *Controller) Input(i int, value string) {
	input, ok := c.page.Lookup(InputID(i))
	if !ok {
		return
	}
	input.SetValue(value)
	c.validateField(i)
	c.updateCounter()
}

// Blur revalidates field i when it loses focus.
func (c *Controller) Blur(i int) {
	c.validateField(i)
}

// State returns the validity state of field i as last rendered.
func (c *Controller) State(i int) FieldState {
	input, ok := c.page.Lookup(InputID(i))
	if !ok {
		return FieldEmpty
	}
	switch {
	case input.HasClass("valid"):
		return FieldValid
	case input.HasClass("invalid"):
		return FieldInvalid
	default:
		return FieldEmpty
	}
}

func (c *Controller) ValidCount() int {
	valid := 0
	for _, value := range c.values() {
		if value != "" && validation.ValidateLinkedInURL(value) {
			valid++
		}
	}
	return valid
}

// Clear empties every field after the user confirms. It reports whether it cleared.
func (c *Controller) Clear() bool {
	if c.closed || !c.clickable(ClearButtonID) {
		return false
	}
	if c.confirm == nil || !c.confirm(msgConfirmClear) {
		return false
	}

	c.resetFields()
	c.page.HideMessage(FormMessageID)
	return true
}

func (c *Controller) Submit() {
	if c.closed || !c.clickable(SubmitButtonID) {
		return
	}

	urls := make([]string, 0, c.count)
	hasEmpty, hasInvalid := false, false
	for _, value := range c.values() {
		switch {
		case value == "":
			hasEmpty = true
		case !validation.ValidateLinkedInURL(value):
			hasInvalid = true
		default:
			urls = append(urls, value)
		}
	}

	switch {
	case hasEmpty:
		c.page.ShowMessage(FormMessageID, msgFillAll, ui.MessageError)
		return
	case hasInvalid:
		c.page.ShowMessage(FormMessageID, msgFixInvalid, ui.MessageError)
		return
	case len(urls) == 0:
		c.page.ShowMessage(FormMessageID, msgNeedOne, ui.MessageError)
		return
	}

	c.page.SetButtonLoading(SubmitButtonID, true)
	c.page.HideMessage(FormMessageID)

	generation := c.generation
	payload := models.SubmitRequest{LinkedInURLs: strings.Join(urls, "\n")}

	ui.Await(c.rt, func() (*models.Result, error) {
		return c.api.Request(c.ctx, client.PathSubmitLinkedIn, payload)
	}, func(result *models.Result, err error) {
		defer c.page.SetButtonLoading(SubmitButtonID, false)
		if c.closed {
			return
		}

		switch {
		case err != nil:
			c.page.ShowMessage(FormMessageID, msgNetworkError, ui.MessageError)
		case result.Success:
			c.page.ShowMessage(FormMessageID, result.Message, ui.MessageSuccess)
			c.after(resetDelay, func() {
				// Fields regenerated in the meantime are not the ones that were submitted.
				if c.generation == generation {
					c.resetFields()
				}
			})
		default:
			c.page.ShowMessage(FormMessageID, result.Message, ui.MessageError)
		}
	})
}

// Close cancels pending timers. Responses that arrive afterwards are ignored.
func (c *Controller) Close() {
	c.closed = true
	for seq, t := range c.timers {
		t.Stop()
		delete(c.timers, seq)
	}
}

func (c *Controller) generate(n int) {
	for i := 1; i <= c.count; i++ {
		c.page.Remove(LabelID(i))
		c.page.Remove(InputID(i))
		c.page.Remove(IconID(i))
	}

	for i := 1; i <= n; i++ {
		c.page.Add(LabelID(i)).SetText(fmt.Sprintf("LinkedIn链接 %d", i))
		c.page.Add(InputID(i))
		c.page.Add(IconID(i)).AddClass("validation-icon")
	}

	c.count = n
	c.generation++

	if container, ok := c.page.Lookup(ContainerID); ok {
		container.AddClass("active")
	}
	c.updateCounter()
}

func (c *Controller) validateField(i int) FieldState {
	input, ok := c.page.Lookup(InputID(i))
	if !ok {
		return FieldEmpty
	}
	icon, _ := c.page.Lookup(IconID(i))

	value := strings.TrimSpace(input.Value())
	state := FieldEmpty
	switch {
	case value == "":
	case validation.ValidateLinkedInURL(value):
		state = FieldValid
	default:
		state = FieldInvalid
	}

	input.RemoveClass("valid", "invalid")
	if icon != nil {
		icon.RemoveClass("valid", "invalid")
		icon.SetText("")
	}

	switch state {
	case FieldValid:
		input.AddClass("valid")
		if icon != nil {
			icon.AddClass("valid")
			icon.SetText(iconValid)
		}
	case FieldInvalid:
		input.AddClass("invalid")
		if icon != nil {
			icon.AddClass("invalid")
			icon.SetText(iconInvalid)
		}
	}

	return state
}

func (c *Controller) updateCounter() {
	if counter, ok := c.page.Lookup(CounterID); ok {
		counter.SetText(fmt.Sprintf("%d 个有效链接", c.ValidCount()))
	}
}

func (c *Controller) resetFields() {
	for i := 1; i <= c.count; i++ {
		if input, ok := c.page.Lookup(InputID(i)); ok {
			input.SetValue("")
			input.RemoveClass("valid", "invalid")
		}
		if icon, ok := c.page.Lookup(IconID(i)); ok {
			icon.SetText("")
			icon.RemoveClass("valid", "invalid")
		}
	}
	c.updateCounter()
}

// values returns the trimmed value of every field in order.
func (c *Controller) values() []string {
	out := make([]string, 0, c.count)
	for i := 1; i <= c.count; i++ {
		if input, ok := c.page.Lookup(InputID(i)); ok {
			out = append(out, strings.TrimSpace(input.Value()))
		}
	}
	return out
}

func (c *Controller) after(d time.Duration, fn func()) {
	c.timerSeq++
	seq := c.timerSeq
	c.timers[seq] = c.rt.AfterFunc(d, func() {
		delete(c.timers, seq)
		fn()
	})
}

func (c *Controller) clickable(id string) bool {
	e, ok := c.page.Lookup(id)
	return ok && !e.Disabled()
}

func validCount(n int) bool {
	for _, choice := range CountChoices {
		if choice == n {
			return true
		}
	}
	return false
}
