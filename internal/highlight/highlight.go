package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Highlighter renders a Python snippet for terminal display. Cosmetic
// only: failures degrade to the plain text.
type Highlighter interface {
	Highlight(code string) string
}

// Chroma colorizes with a 256-color terminal formatter.
type Chroma struct {
	Style string
}

func (c Chroma) Highlight(code string) string {
	style := c.Style
	if style == "" {
		style = "monokai"
	}

	var sb strings.Builder
	if err := quick.Highlight(&sb, code, "python", "terminal256", style); err != nil {
		return code
	}
	return sb.String()
}

// Noop returns the code untouched, for non-TTY output.
type Noop struct{}

func (Noop) Highlight(code string) string { return code }
