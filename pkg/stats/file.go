package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither JSON, YAML
// nor a workbook.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// File is a source document, typically a workbook of statistical tables.
type File struct {
	URL     string
	Title   string
	Content []byte
}

// Format returns the lower-cased extension of the file, without the dot.
func (f *File) Format() string {
	name := f.URL
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// DownloadContent fetches the file content from its URL.
func (f *File) DownloadContent() error {
	data, err := download(f.URL)
	if err != nil {
		return err
	}
	f.Content = data
	return nil
}

// OpenFile reads a local file.
func OpenFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read '%s': %w", path, err)
	}
	return &File{URL: path, Title: filepath.Base(path), Content: data}, nil
}

// ReadDocument reads a document from a local JSON, YAML, XLS or XLSX file.
func ReadDocument(path string) (*Document, error) {
	f, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	return f.Document()
}

// Document decodes the file content according to its format.
func (f *File) Document() (*Document, error) {
	switch f.Format() {
	case "json", "":
		return ParseJSON(f.Content)
	case "yaml", "yml":
		return ParseYAML(f.Content)
	case "xls", "xlsx":
		return ReadWorkbook(f)
	}
	return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, f.URL)
}

// ParseJSON decodes a JSON document.
func ParseJSON(data []byte) (*Document, error) {
	var tree interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("could not decode JSON document: %w", err)
	}
	return documentFromTree(tree)
}

// ParseYAML decodes a YAML document.
func ParseYAML(data []byte) (*Document, error) {
	var tree interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("could not decode YAML document: %w", err)
	}
	return documentFromTree(tree)
}

// Save writes the document as indented JSON.
func (doc *Document) Save(path string) error {
	js, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, js, 0644); err != nil {
		return fmt.Errorf("could not write '%s': %w", path, err)
	}
	return nil
}

// Dump prints o as indented JSON.
func Dump(o interface{}) error {
	js, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(js))
	return nil
}
