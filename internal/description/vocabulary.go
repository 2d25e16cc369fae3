package description

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Class is the classifier verdict for a section title.
type Class int

const (
	// ClassSection marks a title that becomes a collapsible section.
	ClassSection Class = iota
	// ClassDiscard marks a title dropped from the document.
	ClassDiscard
	// ClassPresentation marks the title captured as the presentation paragraph.
	ClassPresentation
)

func (c Class) String() string {
	switch c {
	case ClassDiscard:
		return "discard"
	case ClassPresentation:
		return "presentation"
	default:
		return "section"
	}
}

// DefaultDiscardLabels are the title labels dropped unconditionally.
var DefaultDiscardLabels = []string{"TÍTULO", "SUBTÍTULO"}

// DefaultPresentationLabels are the title labels captured as presentation.
var DefaultPresentationLabels = []string{"Apresentação do Modelo"}

// Vocabulary holds the fixed labels of the source wording, stored in
// normalised form. It is immutable after construction.
type Vocabulary struct {
	discard      map[string]struct{}
	presentation map[string]struct{}
}

// NewVocabulary builds a vocabulary from raw labels. Blank labels are ignored.
func NewVocabulary(discard, presentation []string) *Vocabulary {
	return &Vocabulary{
		discard:      labelSet(discard),
		presentation: labelSet(presentation),
	}
}

// DefaultVocabulary returns the Portuguese vocabulary.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(DefaultDiscardLabels, DefaultPresentationLabels)
}

// Classify decides what happens to a section with the given title. Discard
// labels take precedence when a label appears in both lists.
func (v *Vocabulary) Classify(title string) Class {
	key := NormalizeLabel(title)
	if key == "" {
		return ClassDiscard
	}
	if _, ok := v.discard[key]; ok {
		return ClassDiscard
	}
	if _, ok := v.presentation[key]; ok {
		return ClassPresentation
	}
	return ClassSection
}

// NormalizeLabel lower-cases a label, strips diacritics and collapses
// whitespace so "  Subtítulo " and "SUBTITULO" compare equal.
func NormalizeLabel(label string) string {
	folded := strings.ToLower(removeAccents(label))
	return strings.Join(strings.Fields(folded), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

func labelSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if key := NormalizeLabel(label); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}
