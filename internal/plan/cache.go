package plan

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/document.schema.json
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemaDoc  *jsonschema.Schema
	schemaErr  error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := schemaFS.ReadFile("schema/document.schema.json")
		if err != nil {
			schemaErr = fmt.Errorf("reading embedded schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("document.schema.json", bytes.NewReader(raw)); err != nil {
			schemaErr = fmt.Errorf("loading cache schema: %w", err)
			return
		}
		schemaDoc, schemaErr = compiler.Compile("document.schema.json")
	})
	return schemaDoc, schemaErr
}

// SaveCache writes a document as a pretty-printed UTF-8 JSON snapshot.
// Snapshots are regenerated whole, never merged.
func SaveCache(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing cache %s: %w", path, err)
	}
	return nil
}

// LoadCache reads a cache file, validates it against the embedded schema and
// decodes it. Validation catches hand-edited or truncated snapshots before
// anything reaches the upload path.
func LoadCache(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cache %s: %w", path, err)
	}
	return DecodeCache(data)
}

// DecodeCache validates and decodes raw cache JSON.
func DecodeCache(data []byte) (*Document, error) {
	schema, err := documentSchema()
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("decoding cache: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("cache does not match contract: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding cache: %w", err)
	}
	return &doc, nil
}
