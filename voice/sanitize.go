package voice

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Sanitize prepares raw announcement text for a synthesis engine. Markdown
// structure is parsed and reduced to its spoken text, emoji and pictographs
// are dropped, line and block breaks become sentence breaks and whitespace
// collapses to single spaces. Returns "" when nothing speakable remains.
func Sanitize(input string) string {
	// Emoji go first so sentence breaks land against real words.
	source := []byte(stripEmoji(input))
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var w sentenceWriter
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				w.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					w.Break()
				}
			}
		case *ast.String:
			if entering {
				w.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				w.Write(node.Label(source))
			}
		case *ast.CodeBlock:
			if entering {
				writeLines(&w, source, node)
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			if entering {
				writeLines(&w, source, node)
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			// Markup has no spoken form.
			return ast.WalkSkipChildren, nil
		default:
			if !entering && n.Type() == ast.TypeBlock {
				w.Break()
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(w.String()), " ")
}

// writeLines flushes a code block's raw lines, one sentence per line.
func writeLines(w *sentenceWriter, source []byte, n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		w.Write(bytes.TrimSpace(seg.Value(source)))
		w.Break()
	}
}

// sentenceWriter accumulates spoken text, turning line and block boundaries
// into sentence punctuation. Breaks are applied lazily, only when more text
// follows, so the output never gains a trailing period it didn't have.
type sentenceWriter struct {
	buf          bytes.Buffer
	pendingBreak bool
}

func (w *sentenceWriter) Write(p []byte) {
	if len(bytes.TrimSpace(p)) == 0 {
		return
	}
	if w.pendingBreak {
		w.pendingBreak = false
		w.flushBreak()
	}
	w.buf.Write(p)
}

func (w *sentenceWriter) Break() {
	w.pendingBreak = true
}

// flushBreak terminates the buffered text with sentence punctuation so a
// synthesis engine pauses where a line or block boundary was.
func (w *sentenceWriter) flushBreak() {
	s := strings.TrimRight(w.buf.String(), " \t\n")
	if s == "" {
		w.buf.Reset()
		return
	}
	w.buf.Reset()
	w.buf.WriteString(s)
	switch s[len(s)-1] {
	case '.', '!', '?', ':', ';', ',':
	default:
		w.buf.WriteByte('.')
	}
	w.buf.WriteByte(' ')
}

func (w *sentenceWriter) String() string {
	return w.buf.String()
}

// stripEmoji removes pictographic runes and their joiners.
func stripEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isEmoji(r rune) bool {
	switch {
	case r == 0xFE0F || r == 0x200D || r == 0x20E3: // variation selector, ZWJ, keycap
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, transport, skin tones
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // stars, arrows
		return true
	}
	return false
}
