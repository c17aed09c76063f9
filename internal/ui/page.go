// Package ui holds the headless page model the client controllers render into,
// along with the event loop and timers they run on.
package ui

import (
	"strings"
	"time"
)

// Element is a named node on a page. Mutations are only made from the UI loop.
type Element struct {
	id       string
	page     *Page
	text     string
	value    string
	classes  []string
	hidden   bool
	disabled bool
	focused  bool
}

func (e *Element) ID() string { return e.id }

func (e *Element) Text() string { return e.text }

func (e *Element) SetText(text string) {
	e.text = text
	e.changed()
}

func (e *Element) Value() string { return e.value }

func (e *Element) SetValue(value string) {
	e.value = value
	e.changed()
}

// ClassName returns the space-separated class list.
func (e *Element) ClassName() string { return strings.Join(e.classes, " ") }

// SetClassName replaces the whole class list.
func (e *Element) SetClassName(className string) {
	e.classes = strings.Fields(className)
	e.changed()
}

func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(names ...string) {
	for _, name := range names {
		if !e.HasClass(name) {
			e.classes = append(e.classes, name)
		}
	}
	e.changed()
}

func (e *Element) RemoveClass(names ...string) {
	kept := e.classes[:0]
	for _, c := range e.classes {
		remove := false
		for _, name := range names {
			if c == name {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, c)
		}
	}
	e.classes = kept
	e.changed()
}

func (e *Element) Visible() bool { return !e.hidden }

func (e *Element) Show() {
	e.hidden = false
	e.changed()
}

func (e *Element) Hide() {
	e.hidden = true
	e.changed()
}

func (e *Element) Disabled() bool { return e.disabled }

func (e *Element) SetDisabled(disabled bool) {
	e.disabled = disabled
	e.changed()
}

func (e *Element) Focused() bool { return e.focused }

// Focus moves focus to e, clearing it from every other element on the page.
func (e *Element) Focus() {
	if e.page != nil {
		for _, other := range e.page.elements {
			other.focused = false
		}
	}
	e.focused = true
	e.changed()
}

func (e *Element) changed() {
	if e.page != nil {
		e.page.notify(e)
	}
}

// Page is a registry of elements addressed by id. Lookups of unknown ids
// report absence instead of failing, and every helper treats absence as a no-op.
type Page struct {
	sched     Scheduler
	elements  map[string]*Element
	order     []string
	observers []func(*Element)

	timerSeq int
	timers   map[int]Timer
}

func NewPage(sched Scheduler) *Page {
	return &Page{
		sched:    sched,
		elements: make(map[string]*Element),
		timers:   make(map[int]Timer),
	}
}

// Add creates an element with the given id, replacing any existing one.
func (p *Page) Add(id string) *Element {
	if _, exists := p.elements[id]; !exists {
		p.order = append(p.order, id)
	}
	e := &Element{id: id, page: p}
	p.elements[id] = e
	p.notify(e)
	return e
}

func (p *Page) Remove(id string) {
	e, ok := p.elements[id]
	if !ok {
		return
	}
	delete(p.elements, id)
	for i, existing := range p.order {
		if existing == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	e.page = nil
}

func (p *Page) Lookup(id string) (*Element, bool) {
	e, ok := p.elements[id]
	return e, ok
}

// Elements returns the elements in insertion order.
func (p *Page) Elements() []*Element {
	out := make([]*Element, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.elements[id])
	}
	return out
}

// Observe registers fn to be called after every element mutation.
func (p *Page) Observe(fn func(*Element)) {
	p.observers = append(p.observers, fn)
}

// Close cancels every timer the page scheduled. The page stays readable.
func (p *Page) Close() {
	for seq, t := range p.timers {
		t.Stop()
		delete(p.timers, seq)
	}
}

func (p *Page) notify(e *Element) {
	for _, fn := range p.observers {
		fn(e)
	}
}

func (p *Page) schedule(d time.Duration, fn func()) {
	if p.sched == nil {
		return
	}
	p.timerSeq++
	seq := p.timerSeq
	p.timers[seq] = p.sched.AfterFunc(d, func() {
		delete(p.timers, seq)
		fn()
	})
}
