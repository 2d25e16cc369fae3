package commands

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

type testMessage struct{ Vehicle string }

func (testMessage) Type() string { return "vdesc.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "vdesc.test.invalid" }

func (invalidMessage) Validate() error {
	return errors.New("invalid")
}

type entry struct {
	level  string
	msg    string
	fields map[string]any
}

type captureLogger struct {
	mu      *sync.Mutex
	entries *[]entry
	fields  map[string]any
}

func newCaptureLogger() *captureLogger {
	return &captureLogger{mu: &sync.Mutex{}, entries: &[]entry{}, fields: map[string]any{}}
}

func (c *captureLogger) log(level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*c.entries = append(*c.entries, entry{level: level, msg: msg, fields: c.fields})
}

func (c *captureLogger) Trace(msg string, _ ...any) { c.log("trace", msg) }
func (c *captureLogger) Debug(msg string, _ ...any) { c.log("debug", msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.log("info", msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.log("warn", msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.log("error", msg) }
func (c *captureLogger) Fatal(msg string, _ ...any) { c.log("fatal", msg) }

func (c *captureLogger) WithContext(context.Context) interfaces.Logger { return c }

func (c *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(c.fields)+len(fields))
	for k, v := range c.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &captureLogger{mu: c.mu, entries: c.entries, fields: merged}
}

func (c *captureLogger) find(msg string) (entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range *c.entries {
		if e.msg == msg {
			return e, true
		}
	}
	return entry{}, false
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerLogsMessageFields(t *testing.T) {
	logger := newCaptureLogger()
	h := NewHandler[testMessage](func(context.Context, testMessage) error { return nil },
		WithLogger[testMessage](logger),
		WithOperation[testMessage]("description.parse"),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"vehicle": msg.Vehicle}
		}),
	)

	if err := h.Execute(context.Background(), testMessage{Vehicle: "onix"}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	success, ok := logger.find("command.execute.success")
	if !ok {
		t.Fatalf("expected success log, got %+v", *logger.entries)
	}
	if success.fields["command"] != "vdesc.test.message" || success.fields["operation"] != "description.parse" || success.fields["vehicle"] != "onix" {
		t.Fatalf("unexpected fields: %#v", success.fields)
	}
}

func TestHandlerTelemetryReceivesOutcome(t *testing.T) {
	var got TelemetryInfo
	h := NewHandler[testMessage](func(context.Context, testMessage) error { return errors.New("boom") },
		WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
			got = info
		}),
	)

	_ = h.Execute(context.Background(), testMessage{})
	if got.Status != TelemetryStatusFailed || got.Error == nil {
		t.Fatalf("expected failed telemetry, got %+v", got)
	}
	if got.Command != "vdesc.test.message" {
		t.Fatalf("expected command type, got %q", got.Command)
	}
}

func TestDefaultTelemetryLogsContextErrors(t *testing.T) {
	logger := newCaptureLogger()
	telemetry := DefaultTelemetry[testMessage](logger)
	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Status: TelemetryStatusContextError,
		Error:  context.Canceled,
		Fields: map[string]any{"command": "vdesc.test.message"},
	})

	logged, ok := logger.find("command.execute.context_error")
	if !ok || logged.level != "error" {
		t.Fatalf("expected context error log, got %+v", *logger.entries)
	}
	if logged.fields["command"] != "vdesc.test.message" {
		t.Fatalf("expected telemetry fields, got %#v", logged.fields)
	}
}

func TestWrapValidationErrorNamesRejectedFields(t *testing.T) {
	cause := validation.Errors{
		"payload":    errors.New("the length must be no more than 1048576"),
		"vehicle_id": errors.New("vehicle id is required"),
		"source":     nil,
	}

	if got := invalidFields(cause); !reflect.DeepEqual(got, []string{"payload", "vehicle_id"}) {
		t.Fatalf("invalidFields = %v", got)
	}
	if got := invalidFields(errors.New("plain")); got != nil {
		t.Fatalf("expected no fields for plain error, got %v", got)
	}

	err := wrapValidationError(cause)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
