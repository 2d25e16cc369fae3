package logging

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

const (
	rootModule     = "vdesc"
	parserModule   = "vdesc.parser"
	renderModule   = "vdesc.render"
	commandsModule = "vdesc.commands"
)

// Field keys shared by every description log line. Console output lists
// them ahead of the remaining fields.
const (
	FieldVehicleID = "vehicle_id"
	FieldSource    = "source"
	FieldSection   = "section"
	FieldSlug      = "slug"
)

// DescriptionKeys is the leading field order used by line oriented providers.
var DescriptionKeys = []string{FieldVehicleID, FieldSource, FieldSection, FieldSlug}

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ParserLogger returns the logger namespace reserved for the description parser.
func ParserLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, parserModule)
}

// RenderLogger returns the logger namespace reserved for preview rendering.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// CommandLogger returns a logger for command handlers of the given command
// module, tagged so executions can be filtered per handler family.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := ModuleLogger(provider, commandsModule+"."+name)
	return WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}

// WithDescriptionContext enriches the logger with the vehicle identifier and
// payload source. Nil identifiers and blank sources are ignored.
func WithDescriptionContext(logger interfaces.Logger, vehicleID uuid.UUID, source string) interfaces.Logger {
	fields := map[string]any{}
	if vehicleID != uuid.Nil {
		fields[FieldVehicleID] = vehicleID.String()
	}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[FieldSource] = trimmed
	}
	return WithFields(logger, fields)
}

// WithSectionContext tags the logger with a section title and its anchor.
func WithSectionContext(logger interfaces.Logger, title, slug string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		fields[FieldSection] = trimmed
	}
	if slug != "" {
		fields[FieldSlug] = slug
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
