package vdesc

import "github.com/goliatone/go-vdesc/internal/runtimeconfig"

var (
	ErrDecoderThresholdInvalid = runtimeconfig.ErrDecoderThresholdInvalid
	ErrIntroBoundsInvalid      = runtimeconfig.ErrIntroBoundsInvalid
	ErrVocabularyEmpty         = runtimeconfig.ErrVocabularyEmpty
	ErrVocabularyLabelBlank    = runtimeconfig.ErrVocabularyLabelBlank
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	DecoderConfig    = runtimeconfig.DecoderConfig
	AnalyzerConfig   = runtimeconfig.AnalyzerConfig
	VocabularyConfig = runtimeconfig.VocabularyConfig
	RenderConfig     = runtimeconfig.RenderConfig
	SchemaConfig     = runtimeconfig.SchemaConfig
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the defaults for Portuguese vehicle descriptions.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
