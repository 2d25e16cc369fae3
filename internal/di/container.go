package di

import (
	"fmt"
	"io"
	"strings"

	descriptioncmd "github.com/goliatone/go-vdesc/internal/commands/description"
	"github.com/goliatone/go-vdesc/internal/description"
	"github.com/goliatone/go-vdesc/internal/logging"
	"github.com/goliatone/go-vdesc/internal/logging/console"
	"github.com/goliatone/go-vdesc/internal/logging/gologger"
	"github.com/goliatone/go-vdesc/internal/render"
	"github.com/goliatone/go-vdesc/internal/runtimeconfig"
	"github.com/goliatone/go-vdesc/internal/validation"
	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

// Container wires the parser, renderer, validator and command handlers from
// a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer

	parser    interfaces.DescriptionParser
	renderer  *render.Renderer
	validator *validation.DocumentValidator

	sink     interfaces.DocumentSink
	registry descriptioncmd.CommandRegistry
	commands *descriptioncmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogWriter sets the destination of the console provider.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithParser replaces the configured description parser.
func WithParser(parser interfaces.DescriptionParser) Option {
	return func(c *Container) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithSink sets the destination of command results. Defaults to an in-memory sink.
func WithSink(sink interfaces.DocumentSink) Option {
	return func(c *Container) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// WithCommandRegistry registers description handlers with reg.
func WithCommandRegistry(reg descriptioncmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer validates cfg and builds every collaborator.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	if c.parser == nil {
		c.parser = c.newParser()
	}
	c.renderer = render.NewRenderer(render.Options{
		Extensions:   append([]string(nil), cfg.Render.Extensions...),
		HardWraps:    cfg.Render.HardWraps,
		OpenSections: cfg.Render.OpenSections,
	}, logging.RenderLogger(c.loggerProvider))

	if cfg.Schema.ValidateOutput {
		validator, err := validation.NewDocumentValidator()
		if err != nil {
			return nil, err
		}
		c.validator = validator
	}

	if c.sink == nil {
		c.sink = &descriptioncmd.MemorySink{}
	}
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "").Debug("container.configured",
		"commands", c.commands != nil,
		"validate_output", c.validator != nil,
	)
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		c.loggerProvider = noopProvider{}
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     append([]string(nil), c.Config.Logging.Focus...),
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "console", "":
		opts := console.Options{Writer: c.logWriter}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, c.Config.Logging.Provider)
	}
	return nil
}

func (c *Container) newParser() *description.Parser {
	cfg := c.Config
	return description.NewParser(
		description.WithLogger(logging.ParserLogger(c.loggerProvider)),
		description.WithDecoder(description.Decoder{
			Enabled:         cfg.Decoder.Enabled,
			MinBase64Length: cfg.Decoder.MinBase64Length,
		}),
		description.WithVocabulary(description.NewVocabulary(cfg.Vocabulary.DiscardLabels, cfg.Vocabulary.PresentationLabels)),
		description.WithAnalyzer(description.NewAnalyzer(cfg.Analyzer.IntroMinLength, cfg.Analyzer.IntroMaxLength)),
	)
}

func (c *Container) configureCommands() error {
	if !c.Config.Features.Commands {
		return nil
	}
	services := descriptioncmd.Services{
		Parser:   c.parser,
		Renderer: c.renderer,
		Sink:     c.sink,
	}
	if c.validator != nil {
		services.Validator = c.validator
	}
	set, err := descriptioncmd.RegisterDescriptionCommands(c.registry, services, c.loggerProvider, descriptioncmd.FeatureGates{
		CommandsEnabled: func() bool { return c.Config.Features.Commands },
	})
	if err != nil {
		return err
	}
	c.commands = set
	return nil
}

// LoggerProvider returns the active provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Parser returns the configured description parser.
func (c *Container) Parser() interfaces.DescriptionParser {
	return c.parser
}

// Renderer returns the preview renderer.
func (c *Container) Renderer() *render.Renderer {
	return c.renderer
}

// Validator returns the document validator, nil unless Schema.ValidateOutput is set.
func (c *Container) Validator() *validation.DocumentValidator {
	return c.validator
}

// Sink returns the command result sink.
func (c *Container) Sink() interfaces.DocumentSink {
	return c.sink
}

// Commands returns the description handlers, nil when the feature is disabled.
func (c *Container) Commands() *descriptioncmd.HandlerSet {
	return c.commands
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
