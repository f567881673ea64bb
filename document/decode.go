package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of an input document.
type Format uint8

const (
	// FormatJSON is the default format.
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFormat returns the format with the given name or file extension.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatForPath picks the format from the file extension. Unknown
// extensions are read as JSON.
func FormatForPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatJSON
}

// Decode reads a document in format f. Unknown fields are rejected and
// unset fields get their defaults. The result is not validated.
func Decode(r io.Reader, f Format) (*Document, error) {
	doc := New()
	var err error
	switch f {
	case FormatJSON:
		err = decodeJSON(r, doc)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(doc)
	case FormatTOML:
		err = decodeTOML(r, doc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, f)
	}
	if errors.Is(err, io.EOF) {
		err = errors.New("empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("document: decoding %s: %w", f, err)
	}
	return doc, nil
}

// DecodeFileFormat reads the document at path in format f. Failures to
// open or read the file are returned as *fs.PathError.
func DecodeFileFormat(path string, f Format) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file, f)
}

func decodeJSON(r io.Reader, doc *Document) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after document")
	}
	return nil
}

// decodeTOML reads TOML into a generic tree and decodes that as JSON, so
// content nodes keep their structural string/table/array form.
func decodeTOML(r io.Reader, doc *Document) error {
	var tree map[string]any
	if err := toml.NewDecoder(r).Decode(&tree); err != nil {
		return err
	}
	if tree == nil {
		return io.EOF
	}
	b, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	return decodeJSON(bytes.NewReader(b), doc)
}
