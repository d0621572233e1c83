// Package openapi loads OpenAPI documents from disk, detecting YAML or JSON
// input and verifying the version marker before handing the bytes to the
// kin-openapi loader.
package openapi

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// ErrorCode categorizes loader errors for clearer handling and messaging.
type ErrorCode string

const (
	ParseError      ErrorCode = "ParseError"
	ValidationError ErrorCode = "ValidationError"
)

// SpecError is a structured loader error carrying the offending location.
type SpecError struct {
	Code     ErrorCode
	Message  string
	Location string
	Cause    error
}

func (e *SpecError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s: %s", e.Location, e.Message)
	}
	return e.Message
}

func (e *SpecError) Unwrap() error { return e.Cause }

// versionProbe sniffs the document version markers without building the full
// model. Swagger 2.x is accepted for detection only; generation still runs
// through the 3.x model after kin-openapi conversion upstream of this tool.
type versionProbe struct {
	OpenAPI string `yaml:"openapi" json:"openapi"`
	Swagger string `yaml:"swagger" json:"swagger"`
}

// sniffVersion attempts a YAML parse first and falls back to JSON, then
// checks that either the openapi or swagger field is present.
func sniffVersion(data []byte, location string) error {
	var probe versionProbe
	if err := yaml.Unmarshal(data, &probe); err != nil {
		if jerr := json.Unmarshal(data, &probe); jerr != nil {
			return &SpecError{
				Code:     ParseError,
				Message:  fmt.Sprintf("document is neither valid YAML nor valid JSON: %v", err),
				Location: location,
				Cause:    err,
			}
		}
	}
	if probe.OpenAPI == "" && probe.Swagger == "" {
		return &SpecError{
			Code:     ValidationError,
			Message:  "document has neither an openapi nor a swagger version field",
			Location: location,
		}
	}
	return nil
}

// Document pairs the kin-openapi model with a raw duck-typed mirror of the
// same bytes. The mirror preserves keywords the typed model is lossy about
// (tri-state nullable, if/then/else, dependentRequired, dependentSchemas,
// legacy dependencies); the composition engine reads those through type-guard
// helpers. A Document is immutable once loaded.
type Document struct {
	Model    *openapi3.T
	Raw      map[string]any
	Location string
}

// RawSchema returns the raw mirror of a named component schema, or nil.
func (d *Document) RawSchema(name string) map[string]any {
	components, ok := d.Raw["components"].(map[string]any)
	if !ok {
		return nil
	}
	schemas, ok := components["schemas"].(map[string]any)
	if !ok {
		return nil
	}
	raw, _ := schemas[name].(map[string]any)
	return raw
}

// LoadData parses an OpenAPI document from raw bytes.
func LoadData(data []byte, location string) (*Document, error) {
	if err := sniffVersion(data, location); err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		if jerr := json.Unmarshal(data, &raw); jerr != nil {
			return nil, &SpecError{
				Code:     ParseError,
				Message:  fmt.Sprintf("parsing document: %v", err),
				Location: location,
				Cause:    err,
			}
		}
	}

	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	model, err := loader.LoadFromData(data)
	if err != nil {
		return nil, &SpecError{
			Code:     ParseError,
			Message:  fmt.Sprintf("parsing document: %v", err),
			Location: location,
			Cause:    err,
		}
	}
	return &Document{Model: model, Raw: raw, Location: location}, nil
}

// LoadDocument reads and parses an OpenAPI document from a file path.
func LoadDocument(path string) (*Document, error) {
	return loadFile(path)
}

// ValidateDocument loads a document and runs kin-openapi's structural
// validation over it.
func ValidateDocument(path string) error {
	doc, err := LoadDocument(path)
	if err != nil {
		return err
	}
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	if err := doc.Model.Validate(loader.Context); err != nil {
		return &SpecError{
			Code:     ValidationError,
			Message:  fmt.Sprintf("validating document: %v", err),
			Location: path,
			Cause:    err,
		}
	}
	return nil
}
