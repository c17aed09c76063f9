package main

import (
	"github.com/mmeshcher/linkedin-collector/internal/ui"
)

type event struct {
	id      string
	text    string
	success bool
}

// renderer turns page mutations into message events. It flushes once per
// loop turn so a half-applied ShowMessage is never reported. Every turn that
// touches a visible message reports it, so a repeated identical message is
// delivered again.
type renderer struct {
	loop    *ui.Loop
	page    *ui.Page
	ids     []string
	dirty   map[string]bool
	pending bool
	events  chan event
}

func newRenderer(loop *ui.Loop, page *ui.Page, ids ...string) *renderer {
	r := &renderer{
		loop:   loop,
		page:   page,
		ids:    ids,
		dirty:  make(map[string]bool),
		events: make(chan event, 32),
	}
	page.Observe(r.observe)
	return r
}

func (r *renderer) observe(e *ui.Element) {
	r.dirty[e.ID()] = true
	if r.pending {
		return
	}
	r.pending = true
	r.loop.Post(r.flush)
}

func (r *renderer) flush() {
	r.pending = false
	for _, id := range r.ids {
		if !r.dirty[id] {
			continue
		}
		delete(r.dirty, id)

		e, ok := r.page.Lookup(id)
		if !ok || !e.Visible() || e.Text() == "" {
			continue
		}

		select {
		case r.events <- event{id: id, text: e.Text(), success: e.HasClass(string(ui.MessageSuccess))}:
		default:
		}
	}
	clear(r.dirty)
}
