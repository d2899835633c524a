package grammar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Document is a TextMate grammar as written on disk.
type Document struct {
	Name               string     `json:"name,omitempty" yaml:"name,omitempty"`
	ScopeName          string     `json:"scopeName" yaml:"scopeName"`
	Comment            string     `json:"comment,omitempty" yaml:"comment,omitempty"`
	FileTypes          []string   `json:"fileTypes,omitempty" yaml:"fileTypes,omitempty"`
	FirstLineMatch     string     `json:"firstLineMatch,omitempty" yaml:"firstLineMatch,omitempty"`
	FoldingStartMarker string     `json:"foldingStartMarker,omitempty" yaml:"foldingStartMarker,omitempty"`
	FoldingStopMarker  string     `json:"foldingStopMarker,omitempty" yaml:"foldingStopMarker,omitempty"`
	KeyEquivalent      string     `json:"keyEquivalent,omitempty" yaml:"keyEquivalent,omitempty"`
	UUID               string     `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Patterns           []RawRule  `json:"patterns" yaml:"patterns"`
	Repository         Repository `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// RawRule is one rule of a Document, before compilation.
type RawRule struct {
	Comment       string      `json:"comment,omitempty" yaml:"comment,omitempty"`
	Include       string      `json:"include,omitempty" yaml:"include,omitempty"`
	Name          string      `json:"name,omitempty" yaml:"name,omitempty"`
	ContentName   string      `json:"contentName,omitempty" yaml:"contentName,omitempty"`
	Match         string      `json:"match,omitempty" yaml:"match,omitempty"`
	Begin         string      `json:"begin,omitempty" yaml:"begin,omitempty"`
	End           string      `json:"end,omitempty" yaml:"end,omitempty"`
	Captures      RawCaptures `json:"captures,omitempty" yaml:"captures,omitempty"`
	BeginCaptures RawCaptures `json:"beginCaptures,omitempty" yaml:"beginCaptures,omitempty"`
	EndCaptures   RawCaptures `json:"endCaptures,omitempty" yaml:"endCaptures,omitempty"`
	Patterns      []RawRule   `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// RawCapture is the value of one capture key.
type RawCapture struct {
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Patterns []RawRule `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// RawCaptures maps group numbers, written as strings, to captures.
type RawCaptures map[string]RawCapture

// RepositoryEntry is one named rule.
type RepositoryEntry struct {
	Key  string
	Rule RawRule
}

// Repository keeps entries in document order. Repeated keys are preserved
// so that compilation can report them.
type Repository []RepositoryEntry

func (r *Repository) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("repository must be an object, got %v", tok)
	}

	var entries Repository
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("repository: unexpected token %v", tok)
		}
		var rule RawRule
		if err := dec.Decode(&rule); err != nil {
			return fmt.Errorf("repository %q: %w", key, err)
		}
		entries = append(entries, RepositoryEntry{Key: key, Rule: rule})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = entries
	return nil
}

func (r Repository) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalJSON(e.Key)
		if err != nil {
			return nil, err
		}
		rule, err := marshalJSON(e.Rule)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(rule)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Repository) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: repository must be a mapping", node.Line)
	}
	entries := make(Repository, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		var rule RawRule
		if err := node.Content[i+1].Decode(&rule); err != nil {
			return fmt.Errorf("repository %q: %w", key, err)
		}
		entries = append(entries, RepositoryEntry{Key: key, Rule: rule})
	}
	*r = entries
	return nil
}

func (r Repository) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range r {
		var value yaml.Node
		if err := value.Encode(e.Rule); err != nil {
			return nil, fmt.Errorf("repository %q: %w", e.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&value,
		)
	}
	return node, nil
}

// Lookup returns the first entry registered under key.
func (r Repository) Lookup(key string) (RawRule, bool) {
	for _, e := range r {
		if e.Key == key {
			return e.Rule, true
		}
	}
	return RawRule{}, false
}

// Format is the serialization of a grammar document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf infers the document format from a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported grammar file %q", path)
}

// Parse decodes a grammar document.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode json grammar: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode yaml grammar: %w", err)
		}
	case FormatTOML:
		// TOML tables have no key order; go through JSON so that field
		// names and capture keys are handled in one place.
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to decode toml grammar: %w", err)
		}
		js, err := json.Marshal(tree)
		if err != nil {
			return nil, err
		}
		return Parse(js, FormatJSON)
	default:
		return nil, fmt.Errorf("unsupported grammar format %q", format)
	}
	if doc.ScopeName == "" {
		return nil, ErrNoScopeName
	}
	return &doc, nil
}

// LoadDocument reads and decodes the grammar document at path.
func LoadDocument(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load reads, decodes and compiles the grammar at path.
func Load(path string, opts ...Option) (*Grammar, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return Compile(doc, opts...)
}

// Encode writes the document in the given format.
func (d *Document) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		js, err := marshalJSON(d)
		if err != nil {
			return err
		}
		var tree map[string]any
		if err := json.Unmarshal(js, &tree); err != nil {
			return err
		}
		return toml.NewEncoder(w).Encode(tree)
	}
	return fmt.Errorf("unsupported grammar format %q", format)
}

// marshalJSON is json.Marshal without HTML escaping; patterns are full of '<' and '&'.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
