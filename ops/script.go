// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ops

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MetadataLabel names the mapping entry that carries script metadata
// instead of an operation.
const MetadataLabel = "metadata"

// Format selects the encoding used when writing scripts and snapshots.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", errors.Errorf("unsupported format %q (want json or yaml)", s)
}

// Entry is one labelled operation of a script.
type Entry struct {
	Label string
	Name  string
	Key   *int
	Op    Operation
}

// Script is an ordered list of operations.
type Script struct {
	Entries  []Entry
	Metadata map[string]interface{}
}

type rawEntry struct {
	Operation string `yaml:"operation"`
	Key       *int   `yaml:"key,omitempty"`
}

// ParseScript reads a script with the default registry.
func ParseScript(r io.Reader) (*Script, error) {
	return Default.ParseScript(r)
}

// LoadScript opens path and parses it with the default registry.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open script")
	}
	defer f.Close()

	s, err := ParseScript(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return s, nil
}

// ParseScript decodes a JSON or YAML script. Two layouts are accepted: a
// mapping of label to {operation, key} read in document order, and a plain
// sequence of {operation, key}.
func (reg *Registry) ParseScript(r io.Reader) (*Script, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyScript
		}
		return nil, errors.Wrap(err, "decode script")
	}
	if len(doc.Content) == 0 {
		return nil, ErrEmptyScript
	}

	root := doc.Content[0]
	s := &Script{}

	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			label, value := root.Content[i].Value, root.Content[i+1]
			if label == MetadataLabel {
				if err := value.Decode(&s.Metadata); err != nil {
					return nil, errors.Wrap(err, "decode metadata")
				}
				continue
			}
			if err := s.add(reg, label, value); err != nil {
				return nil, err
			}
		}
	case yaml.SequenceNode:
		for i, value := range root.Content {
			if err := s.add(reg, strconv.Itoa(i+1), value); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errors.Errorf("script must be a mapping or a sequence, got %s", kindName(root.Kind))
	}

	if len(s.Entries) == 0 {
		return nil, ErrEmptyScript
	}
	return s, nil
}

func (s *Script) add(reg *Registry, label string, value *yaml.Node) error {
	var raw rawEntry
	if err := value.Decode(&raw); err != nil {
		return errors.Wrapf(err, "entry %q (line %d)", label, value.Line)
	}
	op, err := reg.Build(raw.Operation, raw.Key)
	if err != nil {
		return errors.Wrapf(err, "entry %q (line %d)", label, value.Line)
	}
	s.Entries = append(s.Entries, Entry{Label: label, Name: op.Name(), Key: raw.Key, Op: op})
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	case yaml.DocumentNode:
		return "a document"
	}
	return fmt.Sprintf("kind %d", k)
}

// Encode writes the script in the labelled mapping layout, metadata last.
func (s *Script) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		return s.encodeYAML(w)
	case FormatJSON:
		return s.encodeJSON(w)
	}
	return errors.Errorf("unsupported format %q", format)
}

func (s *Script) encodeYAML(w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s.Entries {
		var value yaml.Node
		if err := value.Encode(rawEntry{Operation: e.Name, Key: e.Key}); err != nil {
			return errors.Wrapf(err, "encode entry %q", e.Label)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Label, Style: yaml.DoubleQuotedStyle},
			&value,
		)
	}
	if s.Metadata != nil {
		var meta yaml.Node
		if err := meta.Encode(s.Metadata); err != nil {
			return errors.Wrap(err, "encode metadata")
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: MetadataLabel},
			&meta,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return errors.Wrap(err, "encode script")
	}
	return enc.Close()
}

type jsonEntry struct {
	Operation string `json:"operation"`
	Key       *int   `json:"key,omitempty"`
}

// encodeJSON writes entries one per line so document order is kept; a map
// would come out sorted by label.
func (s *Script) encodeJSON(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("{\n")

	n := len(s.Entries)
	if s.Metadata != nil {
		n++
	}
	i := 0
	writeField := func(label string, v interface{}) error {
		b, err := json.Marshal(v)
		if err != nil {
			return errors.Wrapf(err, "encode entry %q", label)
		}
		quoted, err := json.Marshal(label)
		if err != nil {
			return errors.Wrapf(err, "encode label %q", label)
		}
		i++
		sep := ","
		if i == n {
			sep = ""
		}
		fmt.Fprintf(bw, "  %s: %s%s\n", quoted, b, sep)
		return nil
	}

	for _, e := range s.Entries {
		if err := writeField(e.Label, jsonEntry{Operation: e.Name, Key: e.Key}); err != nil {
			return err
		}
	}
	if s.Metadata != nil {
		if err := writeField(MetadataLabel, s.Metadata); err != nil {
			return err
		}
	}

	bw.WriteString("}\n")
	return bw.Flush()
}
