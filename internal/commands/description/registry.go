package descriptioncmd

import (
	"github.com/goliatone/go-vdesc/internal/commands"
	"github.com/goliatone/go-vdesc/internal/logging"
	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterDescriptionCommands.
type HandlerSet struct {
	Parse  *ParseDescriptionHandler
	Render *RenderDescriptionHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	parseHandlerOpts  []commands.HandlerOption[ParseDescriptionCommand]
	renderHandlerOpts []commands.HandlerOption[RenderDescriptionCommand]
}

// WithParseHandlerOptions forwards options to the ParseDescriptionHandler constructor.
func WithParseHandlerOptions(opts ...commands.HandlerOption[ParseDescriptionCommand]) Option {
	return func(cfg *options) {
		cfg.parseHandlerOpts = append(cfg.parseHandlerOpts, opts...)
	}
}

// WithRenderHandlerOptions forwards options to the RenderDescriptionHandler constructor.
func WithRenderHandlerOptions(opts ...commands.HandlerOption[RenderDescriptionCommand]) Option {
	return func(cfg *options) {
		cfg.renderHandlerOpts = append(cfg.renderHandlerOpts, opts...)
	}
}

// RegisterDescriptionCommands builds the description handlers and registers
// them with reg when one is supplied. The render handler is only built when a
// renderer is available.
func RegisterDescriptionCommands(reg CommandRegistry, services Services, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if services.Parser == nil {
		return nil, ErrParserRequired
	}
	if services.Sink == nil {
		return nil, ErrSinkRequired
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.CommandLogger(provider, "description")
	set := &HandlerSet{
		Parse: NewParseDescriptionHandler(services, logger, gates, cfg.parseHandlerOpts...),
	}
	if services.Renderer != nil {
		set.Render = NewRenderDescriptionHandler(services, logger, gates, cfg.renderHandlerOpts...)
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Parse); err != nil {
			return nil, err
		}
		if set.Render != nil {
			if err := reg.RegisterCommand(set.Render); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
