package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrInvalidStyle is returned for a style value that would spill into other
// declarations.
var ErrInvalidStyle = errors.New("dom: invalid style value")

type declaration struct {
	prop  string
	value string
}

func parseStyle(style string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: value})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value
	}
	return strings.Join(parts, "; ")
}

// setStyle sets one inline style property, keeping the others in order.
func setStyle(sel *goquery.Selection, prop, value string) error {
	if strings.ContainsAny(value, ";{}\n\r") {
		return fmt.Errorf("%w: %s: %q", ErrInvalidStyle, prop, value)
	}
	style, _ := sel.Attr("style")
	decls := parseStyle(style)
	found := false
	for i := range decls {
		if decls[i].prop == prop {
			decls[i].value = value
			found = true
		}
	}
	if !found {
		decls = append(decls, declaration{prop: prop, value: value})
	}
	sel.SetAttr("style", formatStyle(decls))
	return nil
}

func getStyle(sel *goquery.Selection, prop string) string {
	style, _ := sel.Attr("style")
	value := ""
	for _, d := range parseStyle(style) {
		if d.prop == prop {
			value = d.value
		}
	}
	return value
}
