package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"notelint/internal/lint"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "notelint://report.schema.json"

//go:embed report.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Validate checks r against the embedded report schema.
func Validate(r *lint.Report) error {
	if r == nil {
		return fmt.Errorf("report is nil")
	}

	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile report schema: %w", err)
	}

	var v any
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report for schema validation: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to normalize report for schema validation: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("report schema validation failed: %w", err)
	}
	return nil
}

// SaveReport validates r and writes it as indented JSON.
func SaveReport(path string, r *lint.Report) error {
	if err := Validate(r); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0644)
}

func LoadReport(path string) (*lint.Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r lint.Report
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
