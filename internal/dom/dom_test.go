package dom

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/typewrite/internal/config"
	"github.com/san-kum/typewrite/internal/typewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<h1 id="heading" style="margin: 12px; font-weight: bold">Hello</h1>
<p class="line">one</p>
<p class="line">two</p>
<p id="hidden" style="display: none">later</p>
</body></html>`

func TestSelect(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	elems, err := doc.Select("p.line")
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, "p.line[0]", elems[0].Label())

	heading, err := doc.Select("#heading")
	require.NoError(t, err)
	assert.Equal(t, "#heading", heading[0].Label())

	_, err = doc.Select("#missing")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestElementMutations(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	elems, err := doc.Select("#heading")
	require.NoError(t, err)
	h := elems[0]

	text, err := h.Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)

	require.NoError(t, h.SetText("He"))
	require.NoError(t, h.SetColor("orange"))
	require.NoError(t, h.ResetMargin())
	require.NoError(t, h.AppendCursor(true))

	snap := h.Snapshot()
	assert.Equal(t, "He", snap.Text)
	assert.Equal(t, "orange", snap.Color)
	assert.True(t, snap.Cursor)
	assert.True(t, snap.Blink)

	html, err := doc.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, `margin: 0px; font-weight: bold; color: orange`)
	assert.Contains(t, html, `class="tw-cursor"`)

	require.NoError(t, h.RemoveCursor())
	require.NoError(t, h.AppendCursor(false))
	snap = h.Snapshot()
	assert.True(t, snap.Cursor)
	assert.False(t, snap.Blink)

	text, err = h.Text()
	require.NoError(t, err)
	assert.Equal(t, "He", text, "cursor glyph must not leak into the text")

	require.NoError(t, h.SetText("Hel"))
	assert.False(t, h.Snapshot().Cursor, "SetText drops the marker")
}

func TestShow(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	elems, err := doc.Select("#hidden")
	require.NoError(t, err)

	assert.True(t, elems[0].Snapshot().Hidden)
	elems[0].Show()
	assert.False(t, elems[0].Snapshot().Hidden)
}

func TestCursorMarkersArePerElement(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	elems, err := doc.Select("p.line")
	require.NoError(t, err)

	require.NoError(t, elems[0].AppendCursor(true))
	require.NoError(t, elems[1].AppendCursor(true))
	require.NoError(t, elems[0].RemoveCursor())

	assert.False(t, elems[0].Snapshot().Cursor)
	assert.True(t, elems[1].Snapshot().Cursor)
}

func TestEngineOverDocument(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	targets, err := doc.Targets("p.line, #heading")
	require.NoError(t, err)
	require.Len(t, targets, 3)

	done := typewriter.New().Run(context.Background(), targets, config.Options{
		Speed: config.Int(100), Cursor: config.Bool(true), Color: config.String("yellowgreen"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	value, err := done.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, typewriter.CompletionValue, value)

	html, err := doc.HTML()
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(html, CursorClass))
	for _, tgt := range targets {
		snap := tgt.(*Element).Snapshot()
		assert.Equal(t, "yellowgreen", snap.Color)
		assert.True(t, snap.Cursor)
	}
	text, err := targets[0].Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
}

func TestSaveLoad(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, doc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	elems, err := loaded.Select("p.line")
	require.NoError(t, err)
	assert.Len(t, elems, 2)
}

func TestParseStyle(t *testing.T) {
	decls := parseStyle(" Color : red ;; margin:0 ; bogus")
	require.Len(t, decls, 2)
	assert.Equal(t, declaration{prop: "color", value: "red"}, decls[0])
	assert.Equal(t, "color: red; margin: 0", formatStyle(decls))
}

func TestSetColorRejectsExtraDeclarations(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	elems, err := doc.Select("#heading")
	require.NoError(t, err)
	el := elems[0]

	for _, color := range []string{"red; display: none", "red}body{color:blue", "red\ndisplay: none"} {
		err := el.SetColor(color)
		assert.ErrorIs(t, err, ErrInvalidStyle, color)
	}

	snap := el.Snapshot()
	assert.False(t, snap.Hidden)
	assert.Empty(t, snap.Color)

	require.NoError(t, el.SetColor("#ffa500"))
	assert.Equal(t, "#ffa500", el.Snapshot().Color)
}

func TestEngineFailsTargetOnInvalidColor(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	targets, err := doc.Targets("#heading")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	done := typewriter.New().Run(ctx, targets, config.Options{Color: config.String("red; display: none")})
	_, err = done.Wait(ctx)
	assert.ErrorIs(t, err, typewriter.ErrTargetFault)
	assert.ErrorIs(t, err, ErrInvalidStyle)
	assert.False(t, selectOne(t, doc, "#heading").Snapshot().Hidden)
}

func selectOne(t *testing.T, doc *Document, selector string) *Element {
	t.Helper()
	elems, err := doc.Select(selector)
	require.NoError(t, err)
	return elems[0]
}
