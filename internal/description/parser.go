package description

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-vdesc/internal/logging"
	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for diagnostics. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Parser) {
		p.logger = logging.OrNoOp(logger)
	}
}

// WithDecoder overrides the payload decoder.
func WithDecoder(decoder Decoder) Option {
	return func(p *Parser) {
		p.decoder = decoder
	}
}

// WithVocabulary overrides the section label vocabulary.
func WithVocabulary(vocabulary *Vocabulary) Option {
	return func(p *Parser) {
		if vocabulary != nil {
			p.vocabulary = vocabulary
		}
	}
}

// WithAnalyzer overrides the section content analyzer.
func WithAnalyzer(analyzer *Analyzer) Option {
	return func(p *Parser) {
		if analyzer != nil {
			p.analyzer = analyzer
		}
	}
}

// Parser assembles ParsedDocuments. It keeps no per-call state and is safe
// for concurrent use.
type Parser struct {
	decoder    Decoder
	vocabulary *Vocabulary
	analyzer   *Analyzer
	logger     interfaces.Logger
}

var _ interfaces.DescriptionParser = (*Parser)(nil)

// NewParser constructs a parser with the Portuguese vocabulary and default
// heuristics unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		decoder:    DefaultDecoder(),
		vocabulary: DefaultVocabulary(),
		analyzer:   DefaultAnalyzer(),
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts raw into a document. Blank payloads yield nil, as does any
// unexpected failure, which is logged and never propagated.
//
// Presentation follows the last presentation section in the payload, even
// when that section is empty: an empty trailing presentation clears the
// paragraph captured by an earlier one and Presentation is nil.
func (p *Parser) Parse(ctx context.Context, raw string) (doc *interfaces.ParsedDocument) {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	logger := p.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("description.parse.recovered", "error", wrapRecovered(recovered), "payload_bytes", len(raw))
			doc = nil
		}
	}()

	text, err := p.decoder.Decode(raw)
	if err != nil {
		logger.Debug("description.decode.fallback", "error", err, "payload_bytes", len(raw))
	}

	doc = p.assemble(text, logger)
	logger.Debug("description.parse.completed",
		"sections", len(doc.Sections),
		"presentation", doc.HasPresentation(),
	)
	return doc
}

func (p *Parser) assemble(text string, logger interfaces.Logger) *interfaces.ParsedDocument {
	doc := &interfaces.ParsedDocument{Sections: []interfaces.Section{}}
	slugs := map[string]int{}

	for _, raw := range SplitSections(text) {
		switch p.vocabulary.Classify(raw.Title) {
		case ClassDiscard:
			logging.WithSectionContext(logger, raw.Title, "").Trace("description.section.discarded")
		case ClassPresentation:
			doc.Presentation = ExtractRuns(raw.Body)
		default:
			section := interfaces.Section{
				Title:   raw.Title,
				Slug:    uniqueSlug(raw.Title, slugs),
				Content: p.analyzer.Analyze(raw.Body),
			}
			doc.Sections = append(doc.Sections, section)
			logging.WithSectionContext(logger, section.Title, section.Slug).Debug("description.section.analyzed",
				"content", string(section.Content.Kind),
				"items", len(section.Content.Items),
				"intro", !section.Content.Intro.IsEmpty(),
			)
		}
	}
	return doc
}

// uniqueSlug derives an anchor from title, suffixing repeats with -2, -3...
func uniqueSlug(title string, seen map[string]int) string {
	base, err := slug.Normalize(title)
	if err != nil || base == "" {
		return ""
	}
	seen[base]++
	if count := seen[base]; count > 1 {
		return fmt.Sprintf("%s-%d", base, count)
	}
	return base
}
