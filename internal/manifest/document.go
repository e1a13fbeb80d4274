package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/iancoleman/orderedmap"

	"github.com/barisgit/ngx-electron/internal/fsops"
)

// Indent is the indentation used when writing documents back to disk.
const Indent = "  "

// ConfigParseError reports a configuration document that is not valid JSON or
// lacks the structure an edit needs.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// Document is a JSON object that keeps key order and unknown fields intact
// across a load/save cycle.
type Document struct {
	*orderedmap.OrderedMap
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return &Document{OrderedMap: m}
}

// Parse decodes a JSON object.
func Parse(data []byte) (*Document, error) {
	doc := NewDocument()
	if err := json.Unmarshal(data, doc.OrderedMap); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &fsops.FilesystemError{Op: "read", Path: path, Err: err}
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, &ConfigParseError{Path: path, Err: err}
	}
	return doc, nil
}

// Save writes doc to path with stable indentation.
func Save(path string, doc *Document) error {
	data, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &fsops.FilesystemError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Bytes serializes the document with Indent and a trailing newline.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(d.OrderedMap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Object returns the nested object stored under key. Changes to the returned
// document are only visible after SetObject.
func (d *Document) Object(key string) (*Document, bool) {
	v, ok := d.Get(key)
	if !ok {
		return nil, false
	}
	switch m := v.(type) {
	case orderedmap.OrderedMap:
		return &Document{OrderedMap: &m}, true
	case *orderedmap.OrderedMap:
		return &Document{OrderedMap: m}, true
	default:
		return nil, false
	}
}

// ObjectOrNew returns the nested object under key, or a fresh empty one.
func (d *Document) ObjectOrNew(key string) *Document {
	if child, ok := d.Object(key); ok {
		return child
	}
	return NewDocument()
}

// SetObject stores child under key.
func (d *Document) SetObject(key string, child *Document) {
	d.Set(key, child.OrderedMap)
}

// StringValue returns the string value stored under key.
func (d *Document) StringValue(key string) (string, bool) {
	v, ok := d.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
