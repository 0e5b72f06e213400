package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// documentFile is the on-disk schema shared by the JSON and YAML forms.
type documentFile struct {
	Title    string     `json:"title" yaml:"title"`
	Elements []*Element `json:"elements" yaml:"elements"`
	Families []*Family  `json:"families,omitempty" yaml:"families,omitempty"`
}

// Load reads a document from path, dispatching on the file extension
// (.json, .yaml, .yml).
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open document: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("model: unsupported document extension %q", filepath.Ext(path))
	}
}

// LoadJSON reads a JSON document.
func LoadJSON(r io.Reader) (*Document, error) {
	var df documentFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&df); err != nil {
		return nil, fmt.Errorf("model: decode json document: %w", err)
	}
	return df.build()
}

// LoadYAML reads a YAML document.
func LoadYAML(r io.Reader) (*Document, error) {
	var df documentFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&df); err != nil {
		return nil, fmt.Errorf("model: decode yaml document: %w", err)
	}
	return df.build()
}

// build assembles a Document, preserving file order as model order.
func (df *documentFile) build() (*Document, error) {
	doc := NewDocument(df.Title)
	for _, f := range df.Families {
		if err := doc.AddFamily(f); err != nil {
			return nil, fmt.Errorf("model: family %q: %w", f.Name, err)
		}
	}
	for i, el := range df.Elements {
		if el == nil {
			return nil, fmt.Errorf("model: element entry %d is empty", i)
		}
		if err := doc.AddElement(el); err != nil {
			return nil, fmt.Errorf("model: element entry %d: %w", i, err)
		}
	}
	return doc, nil
}

// file converts the document back into its on-disk schema.
func (d *Document) file() *documentFile {
	return &documentFile{
		Title:    d.Title,
		Elements: d.Elements(),
		Families: d.families,
	}
}

// Save writes the document to path, dispatching on the file extension.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("model: create document: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = d.EncodeJSON(f)
	case ".yaml", ".yml":
		err = d.EncodeYAML(f)
	default:
		err = fmt.Errorf("model: unsupported document extension %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeJSON writes the document as indented JSON.
func (d *Document) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.file()); err != nil {
		return fmt.Errorf("model: encode json document: %w", err)
	}
	return nil
}

// EncodeYAML writes the document as YAML.
func (d *Document) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.file()); err != nil {
		return fmt.Errorf("model: encode yaml document: %w", err)
	}
	return enc.Close()
}
