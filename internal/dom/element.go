package dom

import (
	"github.com/PuerkitoBio/goquery"
)

const (
	CursorClass = "tw-cursor"
	CursorGlyph = "︳"

	blinkAnimation = "blink 1s infinite"
)

// Element is one node of a Document. It implements typewriter.Target; its
// cursor marker is a span child owned by the element itself.
type Element struct {
	doc   *Document
	sel   *goquery.Selection
	label string
}

// Snapshot is a read-only copy of an element's visible state.
type Snapshot struct {
	Label  string
	Text   string
	Color  string
	Cursor bool
	Blink  bool
	Hidden bool
}

func (e *Element) Label() string { return e.label }

// Text returns the element text without any cursor marker.
func (e *Element) Text() (string, error) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.text(), nil
}

func (e *Element) text() string {
	return e.sel.Clone().Find("." + CursorClass).Remove().End().Text()
}

func (e *Element) SetText(text string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.sel.SetText(text)
	return nil
}

func (e *Element) SetColor(color string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return setStyle(e.sel, "color", color)
}

func (e *Element) ResetMargin() error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return setStyle(e.sel, "margin", "0px")
}

func (e *Element) RemoveCursor() error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.cursor().Remove()
	return nil
}

func (e *Element) AppendCursor(blink bool) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	style := ""
	if blink {
		style = ` style="animation: ` + blinkAnimation + `"`
	}
	e.sel.AppendHtml(`<span class="` + CursorClass + `"` + style + `>` + CursorGlyph + `</span>`)
	return nil
}

// Show makes a hidden element visible the way the demo page does.
func (e *Element) Show() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	_ = setStyle(e.sel, "display", "flex")
}

func (e *Element) Snapshot() Snapshot {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	cur := e.cursor()
	return Snapshot{
		Label:  e.label,
		Text:   e.text(),
		Color:  getStyle(e.sel, "color"),
		Cursor: cur.Length() > 0,
		Blink:  cur.Length() > 0 && getStyle(cur.Last(), "animation") != "",
		Hidden: getStyle(e.sel, "display") == "none",
	}
}

func (e *Element) cursor() *goquery.Selection {
	return e.sel.ChildrenFiltered("span." + CursorClass)
}
