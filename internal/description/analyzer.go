package description

import (
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

const (
	DefaultIntroMinLength = 10
	DefaultIntroMaxLength = 200
)

// Analyzer decides whether a section body is a paragraph or a list and pulls
// out an introductory clause ending in a colon. Bounds are exclusive rune
// counts on the text before the first colon.
type Analyzer struct {
	introMin int
	introMax int
}

// NewAnalyzer builds an analyzer with the given intro bounds. Non-positive
// maximums fall back to the defaults.
func NewAnalyzer(introMin, introMax int) *Analyzer {
	if introMin < 0 {
		introMin = DefaultIntroMinLength
	}
	if introMax <= 0 {
		introMax = DefaultIntroMaxLength
	}
	return &Analyzer{introMin: introMin, introMax: introMax}
}

// DefaultAnalyzer returns an analyzer using a (10, 200) intro window.
func DefaultAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultIntroMinLength, DefaultIntroMaxLength)
}

// Analyze builds the content of one section body.
//
// With an intro and a bulleted remainder the result is a list with intro.
// Without an intro, a bulleted body is a list without intro. Anything else,
// including multi-line bodies with no markers, is a paragraph of the whole
// body with line breaks kept inside the runs.
func (a *Analyzer) Analyze(body string) interfaces.SectionContent {
	intro, rest, hasIntro := a.SplitIntro(body)
	if !hasIntro {
		rest = body
	}

	if isList(rest) {
		var introRuns interfaces.InlineContent
		if hasIntro {
			introRuns = ExtractRuns(intro)
		}
		return interfaces.ListContent(introRuns, NormalizeItems(rest))
	}

	return interfaces.PlainContent(ExtractRuns(body))
}

// SplitIntro splits body at its first colon when the text before it has a
// length strictly inside the intro window and something follows the colon.
// The clause may wrap over several lines. intro keeps the trailing colon.
//
// A clause holding a bulleted line is never an intro: the colon then belongs
// to a list entry such as "• Motor: 1.6", and taking it would pull that entry
// into the intro.
func (a *Analyzer) SplitIntro(body string) (intro, rest string, ok bool) {
	idx := strings.Index(body, ":")
	if idx < 0 {
		return "", body, false
	}

	before := strings.TrimSpace(body[:idx])
	after := strings.TrimSpace(body[idx+1:])
	if after == "" || isList(before) {
		return "", body, false
	}

	length := utf8.RuneCountInString(before)
	if length <= a.introMin || length >= a.introMax {
		return "", body, false
	}
	return before + ":", after, true
}

func isList(rest string) bool {
	for _, line := range strings.Split(rest, "\n") {
		if IsBulletLine(line) {
			return true
		}
	}
	return false
}
