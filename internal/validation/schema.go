package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

//go:embed document.schema.json
var documentSchema []byte

const documentSchemaURL = "document.schema.json"

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrDocumentEncoding = errors.New("document encoding failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// DocumentValidationError surfaces schema issues with instance locations.
type DocumentValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *DocumentValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *DocumentValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var docErr *DocumentValidationError
	if errors.As(err, &docErr) && docErr != nil {
		return docErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// DocumentValidator checks encoded documents against the output contract.
// The compiled schema is immutable and safe to share.
type DocumentValidator struct {
	schema *jsonschema.Schema
}

// NewDocumentValidator compiles the embedded document schema.
func NewDocumentValidator() (*DocumentValidator, error) {
	compiled, err := compileSchema(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &DocumentValidator{schema: compiled}, nil
}

// Schema returns a copy of the raw JSON schema.
func Schema() []byte {
	return bytes.Clone(documentSchema)
}

// Validate encodes doc and checks it against the schema. A nil document is
// valid: it means there is nothing to render.
func (v *DocumentValidator) Validate(doc *interfaces.ParsedDocument) error {
	if doc == nil {
		return nil
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentEncoding, err)
	}
	return v.ValidateJSON(encoded)
}

// ValidateJSON checks an already encoded document.
func (v *DocumentValidator) ValidateJSON(data []byte) error {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentEncoding, err)
	}
	if err := v.schema.Validate(instance); err != nil {
		return &DocumentValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

var (
	defaultOnce      sync.Once
	defaultValidator *DocumentValidator
	defaultErr       error
)

// ValidateDocument validates doc with a lazily compiled shared validator.
func ValidateDocument(doc *interfaces.ParsedDocument) error {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = NewDocumentValidator()
	})
	if defaultErr != nil {
		return defaultErr
	}
	return defaultValidator.Validate(doc)
}

func compileSchema(raw []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(documentSchemaURL, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile(documentSchemaURL)
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
