package description

import (
	"regexp"
	"strings"
)

// sectionPattern matches a bracketed title and the body running up to the
// next opening bracket. Sections are flat: a body never contains '['.
var sectionPattern = regexp.MustCompile(`\[([^\]]*)\]([^\[]*)`)

// RawSection is a titled slice of the decoded payload before classification.
type RawSection struct {
	Title string
	Body  string
}

// SplitSections slices text into sections in the order their opening
// brackets appear. Text before the first bracket is dropped, as are sections
// whose title is blank. Empty bodies are kept.
func SplitSections(text string) []RawSection {
	matches := sectionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	sections := make([]RawSection, 0, len(matches))
	for _, match := range matches {
		title := strings.TrimSpace(match[1])
		if title == "" {
			continue
		}
		sections = append(sections, RawSection{
			Title: title,
			Body:  strings.TrimSpace(match[2]),
		})
	}
	return sections
}
