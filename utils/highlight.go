package utils

import (
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// HighlightCode writes source code to w with terminal syntax highlighting.
// Unknown themes fall back to chroma's default.
func HighlightCode(w io.Writer, code string, language string, theme string) error {
	return quick.Highlight(w, code, language, "terminal256", theme)
}
