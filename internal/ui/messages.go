package ui

import "time"

type MessageKind string

const (
	MessageInfo    MessageKind = "info"
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

const successAutoHide = 3000 * time.Millisecond

// ShowMessage writes text into the element id, tags it with kind and makes it
// visible. Success messages hide themselves after three seconds; that timer is
// not cancelled by a later ShowMessage or HideMessage on the same element.
func (p *Page) ShowMessage(id, text string, kind MessageKind) {
	e, ok := p.Lookup(id)
	if !ok {
		return
	}
	e.SetText(text)
	e.SetClassName("message " + string(kind))
	e.Show()

	if kind == MessageSuccess {
		p.schedule(successAutoHide, e.Hide)
	}
}

func (p *Page) HideMessage(id string) {
	if e, ok := p.Lookup(id); ok {
		e.Hide()
	}
}

func (p *Page) SetButtonLoading(id string, loading bool) {
	e, ok := p.Lookup(id)
	if !ok {
		return
	}
	if loading {
		e.AddClass("loading")
	} else {
		e.RemoveClass("loading")
	}
	e.SetDisabled(loading)
}
