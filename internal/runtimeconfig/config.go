package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDecoderThresholdInvalid indicates a negative base64 length threshold.
var ErrDecoderThresholdInvalid = errors.New("vdesc config: decoder base64 threshold must be zero or positive")

// ErrIntroBoundsInvalid guards the intro clause length window.
var ErrIntroBoundsInvalid = errors.New("vdesc config: analyzer intro bounds are invalid")

// ErrVocabularyEmpty ensures the classifier has labels to match against.
var ErrVocabularyEmpty = errors.New("vdesc config: vocabulary requires at least one presentation label")

var ErrVocabularyLabelBlank = errors.New("vdesc config: vocabulary labels must not be blank")
var ErrLoggingProviderRequired = errors.New("vdesc config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("vdesc config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("vdesc config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("vdesc config: logging format is invalid")

// Config aggregates parser tuning, feature flags and logging options.
type Config struct {
	Decoder    DecoderConfig
	Analyzer   AnalyzerConfig
	Vocabulary VocabularyConfig
	Render     RenderConfig
	Schema     SchemaConfig
	Features   Features
	Logging    LoggingConfig
}

// DecoderConfig controls base64 payload detection.
type DecoderConfig struct {
	// Enabled toggles the base64 detection pass. Delimiter normalisation always runs.
	Enabled bool
	// MinBase64Length is the length a payload must exceed before decoding is attempted.
	MinBase64Length int
}

// AnalyzerConfig captures the intro clause heuristics. Lengths are exclusive
// bounds measured in runes on the text preceding the first colon.
type AnalyzerConfig struct {
	IntroMinLength int
	IntroMaxLength int
}

// VocabularyConfig lists the section labels with special meaning. Matching is
// case-insensitive, whitespace-collapsed and diacritic-insensitive.
type VocabularyConfig struct {
	DiscardLabels      []string
	PresentationLabels []string
}

// RenderConfig mirrors the goldmark options used by the preview renderer.
type RenderConfig struct {
	Extensions []string
	HardWraps  bool
	// OpenSections renders every collapsible panel expanded.
	OpenSections bool
}

// SchemaConfig toggles output contract validation in command handlers.
type SchemaConfig struct {
	ValidateOutput bool
}

// Features toggles optional runtime functionality.
type Features struct {
	Logger   bool
	Commands bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the defaults used for Portuguese vehicle descriptions.
func DefaultConfig() Config {
	return Config{
		Decoder: DecoderConfig{
			Enabled:         true,
			MinBase64Length: 50,
		},
		Analyzer: AnalyzerConfig{
			IntroMinLength: 10,
			IntroMaxLength: 200,
		},
		Vocabulary: VocabularyConfig{
			DiscardLabels:      []string{"TÍTULO", "SUBTÍTULO"},
			PresentationLabels: []string{"Apresentação do Modelo"},
		},
		Render: RenderConfig{
			Extensions: []string{"gfm"},
		},
		Schema: SchemaConfig{},
		Features: Features{
			Commands: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Decoder.MinBase64Length < 0 {
		return ErrDecoderThresholdInvalid
	}
	if cfg.Analyzer.IntroMinLength < 0 {
		return fmt.Errorf("%w: minimum %d", ErrIntroBoundsInvalid, cfg.Analyzer.IntroMinLength)
	}
	if cfg.Analyzer.IntroMaxLength <= cfg.Analyzer.IntroMinLength+1 {
		return fmt.Errorf("%w: window (%d, %d) is empty", ErrIntroBoundsInvalid, cfg.Analyzer.IntroMinLength, cfg.Analyzer.IntroMaxLength)
	}
	if len(cfg.Vocabulary.PresentationLabels) == 0 {
		return ErrVocabularyEmpty
	}
	for _, label := range append(append([]string{}, cfg.Vocabulary.DiscardLabels...), cfg.Vocabulary.PresentationLabels...) {
		if strings.TrimSpace(label) == "" {
			return ErrVocabularyLabelBlank
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
