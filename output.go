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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cybrota/avlkit/avl"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTree = "tree"
)

type outputOptions struct {
	Format string
	Indent int
	Color  bool
	// Nodes writes the breadth-first node list instead of the keyed document.
	Nodes bool
}

func (o outputOptions) validate() error {
	switch o.Format {
	case formatJSON, formatYAML, formatTree:
	default:
		return fmt.Errorf("unknown output format %q (want json, yaml or tree)", o.Format)
	}
	if o.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", o.Indent)
	}
	return nil
}

// writeSnapshot prints s in the selected format. json and yaml write the
// keyed document unless Nodes is set.
func writeSnapshot(w io.Writer, s avl.Snapshot, opts outputOptions) error {
	var payload interface{} = s.Document()
	if opts.Nodes {
		payload = s
	}

	switch opts.Format {
	case formatJSON:
		data, err := json.MarshalIndent(payload, "", strings.Repeat(" ", opts.Indent))
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case formatYAML:
		enc := yaml.NewEncoder(w)
		if opts.Indent > 0 {
			enc.SetIndent(opts.Indent)
		}
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		return enc.Close()

	case formatTree:
		out, err := renderTree(s, opts.Color)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
	return fmt.Errorf("unknown output format %q", opts.Format)
}

// newProgressBar draws on stderr so it never mixes with snapshot output.
// A negative total gives a spinner.
func newProgressBar(total int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}
