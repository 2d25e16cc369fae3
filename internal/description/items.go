package description

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

// Placeholder delimiters come from the Unicode private use area, which does
// not occur in description payloads.
const (
	placeholderOpen  = "\uE000"
	placeholderClose = "\uE001"
)

var (
	// bulletLinePattern detects a trimmed line that starts with a bullet marker.
	bulletLinePattern = regexp.MustCompile(`^(?:•|[-*]\s)`)
	// bulletPrefixPattern strips the marker and its trailing whitespace.
	bulletPrefixPattern = regexp.MustCompile(`^(?:•\s*|[-*]\s+)`)
	// inlineBulletPattern finds bullet markers inside a single physical line.
	inlineBulletPattern = regexp.MustCompile(`•|(?:^|\s)[-*](?:\s|$)`)
	placeholderPattern  = regexp.MustCompile(placeholderOpen + `(\d+)` + placeholderClose)
	leadingLabelPattern = regexp.MustCompile(`^\*([^*\n]+)\*`)
	// boldSpanPattern is the tight form used only while segmenting inline
	// bullets: content may not start or end with whitespace, so the markers
	// in "* a * b" are never shielded as one span.
	boldSpanPattern = regexp.MustCompile(`\*([^*\s](?:[^*\n]*[^*\s])?)\*`)
)

// IsBulletLine reports whether the trimmed line begins with a bullet marker.
func IsBulletLine(line string) bool {
	return bulletLinePattern.MatchString(strings.TrimSpace(line))
}

// NormalizeItems splits a list chunk into items. A chunk without line breaks
// is re-segmented on inline bullet markers first; well-formed *bold* spans are
// shielded behind placeholders while splitting so their asterisks survive.
func NormalizeItems(chunk string) []interfaces.ListItem {
	var lines []string
	if !strings.Contains(chunk, "\n") && hasInlineBullets(chunk) {
		lines = segmentInline(chunk)
	} else {
		lines = strings.Split(chunk, "\n")
	}

	items := make([]interfaces.ListItem, 0, len(lines))
	for _, line := range lines {
		cleaned := stripBullet(strings.TrimSpace(line))
		if cleaned == "" {
			continue
		}
		items = append(items, splitLabel(cleaned))
	}
	return items
}

func hasInlineBullets(chunk string) bool {
	protected, _ := protectBoldSpans(chunk)
	return inlineBulletPattern.MatchString(protected)
}

func segmentInline(chunk string) []string {
	protected, spans := protectBoldSpans(chunk)
	parts := inlineBulletPattern.Split(protected, -1)
	for i, part := range parts {
		parts[i] = restoreBoldSpans(part, spans)
	}
	return parts
}

func protectBoldSpans(text string) (string, []string) {
	var spans []string
	protected := boldSpanPattern.ReplaceAllStringFunc(text, func(match string) string {
		token := fmt.Sprintf("%s%d%s", placeholderOpen, len(spans), placeholderClose)
		spans = append(spans, match)
		return token
	})
	return protected, spans
}

func restoreBoldSpans(text string, spans []string) string {
	if len(spans) == 0 {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		match := placeholderPattern.FindStringSubmatch(token)
		idx, err := strconv.Atoi(match[1])
		if err != nil || idx >= len(spans) {
			return token
		}
		return spans[idx]
	})
}

// stripBullet removes one leading marker. A leading '*' only counts as a
// bullet when whitespace follows it, so "*Motor* 1.6" keeps its opener.
func stripBullet(line string) string {
	if loc := bulletPrefixPattern.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:])
	}
	return line
}

// splitLabel separates a leading *label* from the rest of the item. Items
// whose bold span is not the first element, or is the whole item, keep the
// full line as text.
func splitLabel(line string) interfaces.ListItem {
	loc := leadingLabelPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return interfaces.ListItem{Text: ExtractRuns(line)}
	}
	label := strings.TrimSpace(line[loc[2]:loc[3]])
	rest := strings.TrimSpace(line[loc[1]:])
	if label == "" || rest == "" {
		return interfaces.ListItem{Text: ExtractRuns(line)}
	}
	return interfaces.ListItem{
		Label: label,
		Text:  ExtractRuns(rest),
	}
}
