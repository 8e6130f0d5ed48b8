package typewriter

// Target is one element whose text is animated. SetText replaces the whole
// content of the element, cursor marker included. Each target owns its own
// cursor marker, so markers of different targets never interfere.
type Target interface {
	Text() (string, error)
	SetText(text string) error
	SetColor(color string) error
	ResetMargin() error
	RemoveCursor() error
	AppendCursor(blink bool) error
}
