package interfaces

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// DescriptionParser converts a raw vehicle description payload into a
// structured document. A nil document means "nothing to render": the payload
// was empty or could not be parsed. Implementations never return errors to the
// caller and are safe for concurrent use.
type DescriptionParser interface {
	Parse(ctx context.Context, raw string) *ParsedDocument
}

// DocumentRenderer turns a parsed document into presentation markup.
type DocumentRenderer interface {
	Render(ctx context.Context, doc *ParsedDocument) ([]byte, error)
}

// DocumentSink receives the outcome of description commands. Document is nil
// when the payload produced no document; HTML is only set by render commands.
type DocumentSink interface {
	Accept(ctx context.Context, result DocumentResult) error
}

// DocumentResult bundles the parse outcome delivered to a DocumentSink.
type DocumentResult struct {
	VehicleID uuid.UUID
	Source    string
	Document  *ParsedDocument
	HTML      []byte
}

// RunKind tags an inline run.
type RunKind string

const (
	RunPlain RunKind = "plain"
	RunBold  RunKind = "bold"
)

// Run is one contiguous span of plain or emphasised text.
type Run struct {
	Kind RunKind `json:"kind"`
	Text string  `json:"text"`
}

// PlainRun builds a plain run.
func PlainRun(text string) Run { return Run{Kind: RunPlain, Text: text} }

// BoldRun builds a bold run.
func BoldRun(text string) Run { return Run{Kind: RunBold, Text: text} }

// IsBold reports whether the run is emphasised.
func (r Run) IsBold() bool { return r.Kind == RunBold }

// InlineContent is an ordered sequence of runs. A nil value stands for absent
// content wherever the model allows it.
type InlineContent []Run

// Text concatenates the run texts, dropping emphasis.
func (c InlineContent) Text() string {
	if len(c) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, run := range c {
		builder.WriteString(run.Text)
	}
	return builder.String()
}

// IsEmpty reports whether the content carries no runs.
func (c InlineContent) IsEmpty() bool {
	return len(c) == 0
}

// ListItem is one entry of a list section. Label is empty when no short bold
// lead-in could be separated from the item text.
type ListItem struct {
	Label string        `json:"label,omitempty"`
	Text  InlineContent `json:"text"`
}

// HasLabel reports whether the item carries a bold lead-in.
func (i ListItem) HasLabel() bool {
	return i.Label != ""
}

// ContentKind tags section content.
type ContentKind string

const (
	ContentPlain ContentKind = "plain"
	ContentList  ContentKind = "list"
)

// SectionContent is either a flat paragraph (Kind == ContentPlain, Text set)
// or a list (Kind == ContentList, optional Intro, Items).
type SectionContent struct {
	Kind  ContentKind   `json:"kind"`
	Text  InlineContent `json:"text,omitempty"`
	Intro InlineContent `json:"intro,omitempty"`
	Items []ListItem    `json:"items,omitempty"`
}

// PlainContent builds paragraph content.
func PlainContent(text InlineContent) SectionContent {
	return SectionContent{Kind: ContentPlain, Text: text}
}

// ListContent builds list content. A nil intro means no introductory clause.
func ListContent(intro InlineContent, items []ListItem) SectionContent {
	return SectionContent{Kind: ContentList, Intro: intro, Items: items}
}

// IsList reports whether the content is a list.
func (c SectionContent) IsList() bool {
	return c.Kind == ContentList
}

// Section is a titled block rendered as a collapsible panel. Slug is derived
// from Title and is suitable as an anchor.
type Section struct {
	Title   string         `json:"title"`
	Slug    string         `json:"slug,omitempty"`
	Content SectionContent `json:"content"`
}

// ParsedDocument is the parser output. Presentation is nil when the payload
// carried no presentation section.
type ParsedDocument struct {
	Presentation InlineContent `json:"presentation,omitempty"`
	Sections     []Section     `json:"sections"`
}

// HasPresentation reports whether a presentation paragraph was captured.
func (d *ParsedDocument) HasPresentation() bool {
	return d != nil && len(d.Presentation) > 0
}

// Section returns the first section whose title matches case-insensitively.
func (d *ParsedDocument) Section(title string) (Section, bool) {
	if d == nil {
		return Section{}, false
	}
	for _, section := range d.Sections {
		if strings.EqualFold(section.Title, strings.TrimSpace(title)) {
			return section, true
		}
	}
	return Section{}, false
}
