package description

import (
	"regexp"
	"sort"

	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

var (
	// emphasisPattern matches *content* where content is any run of text
	// without an asterisk or line break. Inner whitespace is kept in the run.
	emphasisPattern = regexp.MustCompile(`\*([^*\n]+)\*`)
	// danglingBoldPattern matches *word with no closing delimiter. The
	// terminator is consumed by the match but not by the span.
	danglingBoldPattern = regexp.MustCompile(`\*([\p{L}\p{N}]+)(?:[\s.,;:!?]|$)`)
)

// markupSpan is a matched emphasis range in byte offsets. text is the inner
// content without delimiters.
type markupSpan struct {
	start int
	end   int
	text  string
}

func (s markupSpan) overlaps(other markupSpan) bool {
	return s.start < other.end && other.start < s.end
}

// ExtractRuns converts text with asterisk emphasis into plain and bold runs in
// left-to-right order. Well-formed *spans* win over dangling *word matches
// that overlap them. Empty input yields nil.
func ExtractRuns(text string) interfaces.InlineContent {
	if text == "" {
		return nil
	}

	spans := findMarkupSpans(text)
	if len(spans) == 0 {
		return interfaces.InlineContent{interfaces.PlainRun(text)}
	}

	runs := make(interfaces.InlineContent, 0, len(spans)*2+1)
	cursor := 0
	for _, span := range spans {
		if span.start > cursor {
			runs = append(runs, interfaces.PlainRun(text[cursor:span.start]))
		}
		runs = append(runs, interfaces.BoldRun(span.text))
		cursor = span.end
	}
	if cursor < len(text) {
		runs = append(runs, interfaces.PlainRun(text[cursor:]))
	}
	return runs
}

func findMarkupSpans(text string) []markupSpan {
	var spans []markupSpan
	for _, loc := range emphasisPattern.FindAllStringSubmatchIndex(text, -1) {
		spans = append(spans, markupSpan{start: loc[0], end: loc[1], text: text[loc[2]:loc[3]]})
	}

	wellFormed := len(spans)
	for _, loc := range danglingBoldPattern.FindAllStringSubmatchIndex(text, -1) {
		candidate := markupSpan{start: loc[0], end: loc[3], text: text[loc[2]:loc[3]]}
		if overlapsAny(candidate, spans[:wellFormed]) {
			continue
		}
		spans = append(spans, candidate)
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})
	return spans
}

func overlapsAny(candidate markupSpan, spans []markupSpan) bool {
	for _, span := range spans {
		if candidate.overlaps(span) {
			return true
		}
	}
	return false
}
