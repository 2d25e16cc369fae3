package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-vdesc"
	descriptioncmd "github.com/goliatone/go-vdesc/internal/commands/description"
	"github.com/goliatone/go-vdesc/internal/di"
	"github.com/goliatone/go-vdesc/internal/source"
	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("vdesc preview: %v", err)
	}
}

type output struct {
	VehicleID string                `json:"vehicle_id"`
	Reference string                `json:"reference,omitempty"`
	Title     string                `json:"title,omitempty"`
	Source    string                `json:"source,omitempty"`
	Document  *vdesc.ParsedDocument `json:"document"`
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("vdesc-preview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "Record file to parse (reads stdin when empty)")
	dir := fs.String("dir", "", "Directory of record files to parse")
	pattern := fs.String("pattern", "*.txt", "Glob pattern applied when discovering records in -dir")
	format := fs.String("format", "json", "Output format: json, markdown or html")
	validate := fs.Bool("validate", false, "Validate each document against the JSON schema")
	open := fs.Bool("open", false, "Render every section panel expanded")
	logProvider := fs.String("log-provider", "console", "Logging provider: console or gologger")
	logLevel := fs.String("log-level", "warn", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	writer, err := newWriter(*format, stdout)
	if err != nil {
		return err
	}

	cfg := vdesc.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = *logProvider
	cfg.Logging.Level = *logLevel
	cfg.Render.OpenSections = *open
	cfg.Schema.ValidateOutput = *validate

	ctx := context.Background()
	records, err := loadRecords(ctx, *file, *dir, *pattern, stdin)
	if err != nil {
		return err
	}

	byID := make(map[string]*source.Record, len(records))
	for _, record := range records {
		byID[record.ID.String()] = record
	}

	var module *vdesc.Module
	sink := descriptioncmd.SinkFunc(func(_ context.Context, result interfaces.DocumentResult) error {
		return writer(module, byID[result.VehicleID.String()], result)
	})
	module, err = vdesc.New(cfg, di.WithSink(sink), di.WithLogWriter(stderr))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	commands := module.Commands()
	if commands == nil || commands.Render == nil {
		return errors.New("description commands not configured")
	}

	for _, record := range records {
		cmd := vdesc.RenderDescriptionCommand{
			VehicleID: record.ID,
			Payload:   record.Payload,
			Source:    record.Source,
		}
		if err := commands.Render.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("render %s: %w", record.Path, err)
		}
	}
	return nil
}

func loadRecords(ctx context.Context, file, dir, pattern string, stdin io.Reader) ([]*source.Record, error) {
	switch {
	case dir != "":
		return source.NewLoader(os.DirFS(dir), source.LoaderConfig{Pattern: pattern}).LoadAll(ctx)
	case file != "":
		record, err := source.NewLoader(os.DirFS(filepath.Dir(file)), source.LoaderConfig{}).LoadFile(ctx, filepath.Base(file))
		if err != nil {
			return nil, err
		}
		return []*source.Record{record}, nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		record, err := source.ParseRecord("stdin", data)
		if err != nil {
			return nil, err
		}
		return []*source.Record{record}, nil
	}
}

type writeFunc func(module *vdesc.Module, record *source.Record, result interfaces.DocumentResult) error

func newWriter(format string, out io.Writer) (writeFunc, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return func(_ *vdesc.Module, record *source.Record, result interfaces.DocumentResult) error {
			payload := output{
				VehicleID: result.VehicleID.String(),
				Source:    result.Source,
				Document:  result.Document,
			}
			if record != nil {
				payload.Reference = record.Reference
				payload.Title = record.Title
			}
			return encoder.Encode(payload)
		}, nil
	case "markdown", "md":
		return func(module *vdesc.Module, _ *source.Record, result interfaces.DocumentResult) error {
			_, err := out.Write(module.Markdown(result.Document))
			return err
		}, nil
	case "html":
		return func(_ *vdesc.Module, _ *source.Record, result interfaces.DocumentResult) error {
			_, err := out.Write(result.HTML)
			return err
		}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
