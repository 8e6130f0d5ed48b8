package dom

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/san-kum/typewrite/internal/typewriter"
)

var ErrNoMatch = errors.New("dom: selector matched no element")

var _ typewriter.Target = (*Element)(nil)

// Document is a parsed HTML page. All element mutations go through the
// document lock so a renderer can read snapshots while timelines write.
type Document struct {
	mu  sync.RWMutex
	doc *goquery.Document
}

func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

func ParseString(html string) (*Document, error) {
	return Parse(strings.NewReader(html))
}

func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Select returns one Element per node matched by the CSS selector.
func (d *Document) Select(selector string) ([]*Element, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}
	elems := make([]*Element, 0, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		elems = append(elems, &Element{doc: d, sel: s, label: label(s, selector, i)})
	})
	return elems, nil
}

// Targets is Select typed for the engine.
func (d *Document) Targets(selector string) ([]typewriter.Target, error) {
	elems, err := d.Select(selector)
	if err != nil {
		return nil, err
	}
	return AsTargets(elems), nil
}

func AsTargets(elems []*Element) []typewriter.Target {
	targets := make([]typewriter.Target, len(elems))
	for i, e := range elems {
		targets[i] = e
	}
	return targets
}

func (d *Document) HTML() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return goquery.OuterHtml(d.doc.Selection)
}

func (d *Document) Save(path string) error {
	html, err := d.HTML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0644)
}

func label(s *goquery.Selection, selector string, i int) string {
	if id, ok := s.Attr("id"); ok && id != "" {
		return "#" + id
	}
	return fmt.Sprintf("%s[%d]", selector, i)
}
