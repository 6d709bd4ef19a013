package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// markup accumulates the first write error so components can emit HTML
// without checking every call.
type markup struct {
	w   io.Writer
	err error
}

func newMarkup(w io.Writer) *markup {
	return &markup{w: w}
}

func (m *markup) raw(parts ...string) {
	for _, part := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, part)
	}
}

func (m *markup) text(value string) {
	m.raw(templ.EscapeString(value))
}

// open writes a start tag. attrs alternates names and values; values are
// escaped and empty names are skipped.
func (m *markup) open(tag string, attrs ...string) {
	m.raw("<", tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		name := strings.TrimSpace(attrs[i])
		if name == "" {
			continue
		}
		m.raw(" ", name, `="`, templ.EscapeString(attrs[i+1]), `"`)
	}
	m.raw(">")
}

func (m *markup) close(tag string) {
	m.raw("</", tag, ">")
}

// element writes a complete element with escaped text content.
func (m *markup) element(tag, content string, attrs ...string) {
	m.open(tag, attrs...)
	m.text(content)
	m.close(tag)
}

func (m *markup) component(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

func attrIf(ok bool, name string) string {
	if ok {
		return name
	}
	return ""
}
