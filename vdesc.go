package vdesc

import (
	"context"

	descriptioncmd "github.com/goliatone/go-vdesc/internal/commands/description"
	"github.com/goliatone/go-vdesc/internal/di"
	"github.com/goliatone/go-vdesc/internal/validation"
)

// Module is the top level runtime façade for vehicle descriptions.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Parse converts a raw payload into a document. It returns nil for blank or
// unparseable payloads and never fails.
func (m *Module) Parse(ctx context.Context, raw string) *ParsedDocument {
	return m.container.Parser().Parse(ctx, raw)
}

// Render returns the HTML preview of doc.
func (m *Module) Render(ctx context.Context, doc *ParsedDocument) ([]byte, error) {
	return m.container.Renderer().Render(ctx, doc)
}

// Markdown returns the Markdown the preview is rendered from.
func (m *Module) Markdown(doc *ParsedDocument) []byte {
	return m.container.Renderer().Markdown(doc)
}

// Validate checks doc against the published document schema.
func (m *Module) Validate(doc *ParsedDocument) error {
	if validator := m.container.Validator(); validator != nil {
		return validator.Validate(doc)
	}
	return validation.ValidateDocument(doc)
}

// Commands returns the go-command handlers, nil when Features.Commands is off.
func (m *Module) Commands() *descriptioncmd.HandlerSet {
	return m.container.Commands()
}

// DocumentSchema returns the JSON schema describing encoded documents.
func DocumentSchema() []byte {
	return validation.Schema()
}
