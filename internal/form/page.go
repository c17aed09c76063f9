package form

import (
	"fmt"

	"github.com/mmeshcher/linkedin-collector/internal/ui"
)

const (
	CountSelectID  = "linkedin-count"
	ContainerID    = "linkedin-inputs-container"
	SubmitButtonID = "submit-btn"
	ClearButtonID  = "clear-btn"
	CounterID      = "url-count"
	FormMessageID  = "form-message"
	FormID         = "linkedin-form"
)

func InputID(i int) string { return fmt.Sprintf("linkedin-url-%d", i) }

func IconID(i int) string { return fmt.Sprintf("icon-%d", i) }

func LabelID(i int) string { return fmt.Sprintf("label-linkedin-url-%d", i) }

// Layout adds the static form page elements. Input fields are generated by the controller.
func Layout(p *ui.Page) {
	p.Add(FormID)
	p.Add(CountSelectID).SetValue("1")
	p.Add(ContainerID)
	p.Add(CounterID)
	p.Add(SubmitButtonID).SetText("提交")
	p.Add(ClearButtonID).SetText("清空")
	p.Add(FormMessageID).Hide()
}
