package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-vdesc/internal/logging"
	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

// ErrRenderFailed wraps goldmark conversion failures.
var ErrRenderFailed = errors.New("render: conversion failed")

// Options mirrors runtimeconfig.RenderConfig.
type Options struct {
	Extensions []string
	HardWraps  bool
	// OpenSections renders every panel expanded.
	OpenSections bool
}

// Renderer implements interfaces.DocumentRenderer with goldmark. The engine
// is built once and reused; goldmark converters are safe for concurrent use.
type Renderer struct {
	options Options
	engine  goldmark.Markdown
	logger  interfaces.Logger
}

var _ interfaces.DocumentRenderer = (*Renderer)(nil)

// NewRenderer builds a renderer. A nil logger disables logging.
func NewRenderer(opts Options, logger interfaces.Logger) *Renderer {
	return &Renderer{
		options: opts,
		engine:  newGoldmarkEngine(opts),
		logger:  logging.OrNoOp(logger),
	}
}

// Markdown returns the intermediate Markdown for doc.
func (r *Renderer) Markdown(doc *interfaces.ParsedDocument) []byte {
	return Markdown(doc, r.options.OpenSections)
}

// Render converts doc into an HTML fragment. A nil document renders as empty
// output.
func (r *Renderer) Render(ctx context.Context, doc *interfaces.ParsedDocument) ([]byte, error) {
	if doc == nil {
		return nil, nil
	}
	logger := r.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}

	source := r.Markdown(doc)
	var buf bytes.Buffer
	if err := r.engine.Convert(source, &buf); err != nil {
		logger.Error("description.render.failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	logger.Debug("description.render.completed",
		"sections", len(doc.Sections),
		"bytes", buf.Len(),
	)
	return buf.Bytes(), nil
}

// newGoldmarkEngine maps Options onto goldmark. Raw HTML is always allowed
// because section panels are emitted as <details> blocks; payload text is
// escaped before it reaches the engine.
func newGoldmarkEngine(opts Options) goldmark.Markdown {
	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"typographer":   extension.Typographer,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}
