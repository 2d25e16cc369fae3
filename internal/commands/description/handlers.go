package descriptioncmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-vdesc/internal/commands"
	"github.com/goliatone/go-vdesc/internal/logging"
	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

const (
	parseOperation  = "description.parse"
	renderOperation = "description.render"

	outputInvalidCode = "DESCRIPTION_OUTPUT_INVALID"
)

var (
	// ErrDescriptionCommandsDisabled is returned when the commands feature flag is off.
	ErrDescriptionCommandsDisabled = errors.New("description command: feature disabled")
	// ErrParserRequired guards handler construction.
	ErrParserRequired = errors.New("description command: parser is required")
	// ErrRendererRequired guards render handler construction.
	ErrRendererRequired = errors.New("description command: renderer is required")
	// ErrSinkRequired guards handler construction.
	ErrSinkRequired = errors.New("description command: sink is required")
)

var (
	_ command.Commander[ParseDescriptionCommand]  = (*ParseDescriptionHandler)(nil)
	_ command.Commander[RenderDescriptionCommand] = (*RenderDescriptionHandler)(nil)
)

// DocumentValidator checks parser output against the document contract.
type DocumentValidator interface {
	Validate(doc *interfaces.ParsedDocument) error
}

// Services bundles the collaborators used by description handlers. Validator
// is optional.
type Services struct {
	Parser    interfaces.DescriptionParser
	Renderer  interfaces.DocumentRenderer
	Validator DocumentValidator
	Sink      interfaces.DocumentSink
}

// ParseDescriptionHandler parses payloads and forwards documents to the sink.
type ParseDescriptionHandler struct {
	inner *commands.Handler[ParseDescriptionCommand]
}

// NewParseDescriptionHandler creates a handler bound to services.Parser and services.Sink.
func NewParseDescriptionHandler(services Services, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ParseDescriptionCommand]) *ParseDescriptionHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg ParseDescriptionCommand) error {
		if !gates.commandsEnabled() {
			return ErrDescriptionCommandsDisabled
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		doc, err := parseAndCheck(ctx, services, msg.Payload)
		if err != nil {
			return err
		}
		if err := services.Sink.Accept(ctx, interfaces.DocumentResult{
			VehicleID: msg.VehicleID,
			Source:    msg.Source,
			Document:  doc,
		}); err != nil {
			return err
		}

		logging.WithFields(logging.WithDescriptionContext(baseLogger, msg.VehicleID, msg.Source), documentFields(doc)).
			Info("description.command.parse.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ParseDescriptionCommand]{
		commands.WithLogger[ParseDescriptionCommand](baseLogger),
		commands.WithOperation[ParseDescriptionCommand](parseOperation),
		commands.WithMessageFields(func(msg ParseDescriptionCommand) map[string]any {
			return messageFields(msg.VehicleID, msg.Source, msg.Payload)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ParseDescriptionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ParseDescriptionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ParseDescriptionCommand].
func (h *ParseDescriptionHandler) Execute(ctx context.Context, msg ParseDescriptionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *ParseDescriptionHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for description parsing.
func (h *ParseDescriptionHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"description", "parse"},
		Group:       "description",
		Description: "Parse a vehicle description payload into a structured document",
	}
}

// RenderDescriptionHandler parses payloads, renders the HTML preview and
// forwards both to the sink.
type RenderDescriptionHandler struct {
	inner *commands.Handler[RenderDescriptionCommand]
}

// NewRenderDescriptionHandler creates a handler bound to the parser, renderer and sink.
func NewRenderDescriptionHandler(services Services, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[RenderDescriptionCommand]) *RenderDescriptionHandler {
	baseLogger := logging.OrNoOp(logger)

	exec := func(ctx context.Context, msg RenderDescriptionCommand) error {
		if !gates.commandsEnabled() {
			return ErrDescriptionCommandsDisabled
		}
		if services.Renderer == nil {
			return ErrRendererRequired
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		doc, err := parseAndCheck(ctx, services, msg.Payload)
		if err != nil {
			return err
		}
		html, err := services.Renderer.Render(ctx, doc)
		if err != nil {
			return err
		}
		if err := services.Sink.Accept(ctx, interfaces.DocumentResult{
			VehicleID: msg.VehicleID,
			Source:    msg.Source,
			Document:  doc,
			HTML:      html,
		}); err != nil {
			return err
		}

		fields := documentFields(doc)
		fields["html_bytes"] = len(html)
		logging.WithFields(logging.WithDescriptionContext(baseLogger, msg.VehicleID, msg.Source), fields).
			Info("description.command.render.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RenderDescriptionCommand]{
		commands.WithLogger[RenderDescriptionCommand](baseLogger),
		commands.WithOperation[RenderDescriptionCommand](renderOperation),
		commands.WithMessageFields(func(msg RenderDescriptionCommand) map[string]any {
			return messageFields(msg.VehicleID, msg.Source, msg.Payload)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RenderDescriptionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenderDescriptionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RenderDescriptionCommand].
func (h *RenderDescriptionHandler) Execute(ctx context.Context, msg RenderDescriptionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *RenderDescriptionHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for description rendering.
func (h *RenderDescriptionHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"description", "render"},
		Group:       "description",
		Description: "Render a vehicle description payload as an HTML preview",
	}
}

func parseAndCheck(ctx context.Context, services Services, payload string) (*interfaces.ParsedDocument, error) {
	doc := services.Parser.Parse(ctx, payload)
	if services.Validator == nil || doc == nil {
		return doc, nil
	}
	if err := services.Validator.Validate(doc); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "parsed description violates the document schema").
			WithTextCode(outputInvalidCode)
	}
	return doc, nil
}

func documentFields(doc *interfaces.ParsedDocument) map[string]any {
	if doc == nil {
		return map[string]any{"empty": true}
	}
	return map[string]any{
		"sections":     len(doc.Sections),
		"presentation": doc.HasPresentation(),
	}
}

func messageFields(vehicleID uuid.UUID, source, payload string) map[string]any {
	fields := map[string]any{
		"vehicle_id":    vehicleID.String(),
		"payload_bytes": len(payload),
	}
	if source != "" {
		fields["source"] = source
	}
	return fields
}
