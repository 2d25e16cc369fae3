package render

import (
	"html"
	"strings"

	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

// markdownEscaper escapes characters that carry inline meaning anywhere in a
// CommonMark/GFM line.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`&`, `\&`,
	`|`, `\|`,
	`~`, `\~`,
)

// Markdown serialises doc into Markdown. Each section becomes a <details>
// panel whose body is regular Markdown, so the preview collapses the same way
// the storefront does. A nil document yields nil.
func Markdown(doc *interfaces.ParsedDocument, open bool) []byte {
	if doc == nil {
		return nil
	}

	var b strings.Builder
	if doc.HasPresentation() {
		writeInline(&b, doc.Presentation)
		b.WriteString("\n\n")
	}

	for _, section := range doc.Sections {
		writeSection(&b, section, open)
	}
	return []byte(b.String())
}

func writeSection(b *strings.Builder, section interfaces.Section, open bool) {
	b.WriteString("<details")
	if section.Slug != "" {
		b.WriteString(` id="`)
		b.WriteString(html.EscapeString(section.Slug))
		b.WriteString(`"`)
	}
	if open {
		b.WriteString(" open")
	}
	b.WriteString(">\n<summary>")
	b.WriteString(html.EscapeString(section.Title))
	b.WriteString("</summary>\n\n")

	content := section.Content
	switch {
	case content.IsList():
		if !content.Intro.IsEmpty() {
			writeInline(b, content.Intro)
			b.WriteString("\n\n")
		}
		for _, item := range content.Items {
			b.WriteString("- ")
			if item.HasLabel() {
				writeBold(b, item.Label)
				b.WriteString(" ")
			}
			writeInline(b, item.Text)
			b.WriteString("\n")
		}
		if len(content.Items) > 0 {
			b.WriteString("\n")
		}
	case !content.Text.IsEmpty():
		writeInline(b, content.Text)
		b.WriteString("\n\n")
	}

	b.WriteString("</details>\n\n")
}

func writeInline(b *strings.Builder, content interfaces.InlineContent) {
	lineStart := true
	for _, run := range content {
		if run.IsBold() {
			writeBold(b, run.Text)
			lineStart = false
			continue
		}
		lines := strings.Split(run.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteString("\n")
				lineStart = true
			}
			if line == "" {
				continue
			}
			escaped := markdownEscaper.Replace(line)
			if lineStart {
				escaped = escapeBlockMarker(escaped)
			}
			b.WriteString(escaped)
			lineStart = false
		}
	}
}

// writeBold keeps surrounding whitespace outside the delimiters; CommonMark
// does not open emphasis before a space.
func writeBold(b *strings.Builder, text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		b.WriteString(text)
		return
	}
	lead := text[:strings.Index(text, trimmed)]
	trail := text[len(lead)+len(trimmed):]
	b.WriteString(lead)
	b.WriteString("**")
	b.WriteString(markdownEscaper.Replace(trimmed))
	b.WriteString("**")
	b.WriteString(trail)
}

// escapeBlockMarker neutralises a leading character that would open a
// heading, list, quote or setext underline.
func escapeBlockMarker(line string) string {
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	body := line[indent:]
	if body == "" {
		return line
	}
	switch body[0] {
	case '#', '-', '+', '=':
		return line[:indent] + `\` + body
	}
	digits := 0
	for digits < len(body) && body[digits] >= '0' && body[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(body) && (body[digits] == '.' || body[digits] == ')') {
		return line[:indent] + body[:digits] + `\` + body[digits:]
	}
	return line
}
