package login

import "github.com/mmeshcher/linkedin-collector/internal/ui"

const (
	EmailInputID   = "email"
	SendButtonID   = "send-code-btn"
	CodeInputID    = "verification-code"
	VerifyButtonID = "verify-btn"
	ResendButtonID = "resend-btn"
	EmailStepID    = "email-step"
	CodeStepID     = "code-step"
	EmailDisplayID = "email-display"
	EmailMessageID = "email-message"
	CodeMessageID  = "code-message"
)

// Layout adds the login page elements in their initial state.
func Layout(p *ui.Page) {
	p.Add(EmailStepID).AddClass("step", "active")
	p.Add(EmailInputID)
	p.Add(SendButtonID).SetText("发送验证码")
	p.Add(EmailMessageID).Hide()

	p.Add(CodeStepID).AddClass("step")
	p.Add(EmailDisplayID)
	p.Add(CodeInputID)
	p.Add(VerifyButtonID).SetText("验证登录")
	p.Add(ResendButtonID).SetText(resendLabel)
	p.Add(CodeMessageID).Hide()
}
