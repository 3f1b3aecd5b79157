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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cybrota/avlkit/avl"
	"github.com/cybrota/avlkit/ops"
)

const shellHelp = `Tree operations:
  insert <key>     add a key (duplicates allowed)
  delete <key>     remove one occurrence of a key
  deletemin        remove and print the smallest key
  find <key>       report whether a key is present
Other commands:
  print            draw the tree
  snapshot [fmt]   dump the tree as json or yaml
  size             number of keys and tree height
  check            validate every invariant
  clear            drop all keys
  help             this text
  quit             leave the shell`

// shell is a line-oriented prompt over a live tree.
type shell struct {
	tree   *avl.Tree
	runner *ops.Runner
	out    io.Writer
	opts   outputOptions
	prompt string
	step   int
}

func newShell(out io.Writer, opts outputOptions) *shell {
	return &shell{
		tree: avl.New(),
		// Invariants are only checked on request.
		runner: &ops.Runner{},
		out:    out,
		opts:   opts,
		prompt: "avl> ",
	}
}

// run reads commands until quit, EOF or ctx is done.
func (sh *shell) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errc <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(sh.out, sh.prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(sh.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(sh.out)
				return <-errc
			}
			quit, err := sh.exec(line)
			if err != nil {
				fmt.Fprintf(sh.out, "%serror:%s %v\n", Error, Reset, err)
			}
			if quit {
				return nil
			}
		}
	}
}

// exec runs one command line. quit is set when the shell should stop; a
// returned error is reported to the user and never ends the session.
func (sh *shell) exec(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}

	args, err := ops.SplitLine(line)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(args[0]) {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(sh.out, shellHelp)
	case "print":
		out, err := renderTree(sh.tree.Snapshot(), sh.opts.Color)
		if err != nil {
			return false, err
		}
		fmt.Fprint(sh.out, out)
	case "snapshot":
		opts := sh.opts
		opts.Format = formatJSON
		if len(args) > 1 {
			opts.Format = args[1]
		}
		if err := opts.validate(); err != nil {
			return false, err
		}
		return false, writeSnapshot(sh.out, sh.tree.Snapshot(), opts)
	case "size":
		fmt.Fprintf(sh.out, "size %d, height %d\n", sh.tree.Size(), sh.tree.Height())
	case "check":
		if err := sh.tree.Validate(); err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "%sok%s\n", Green, Reset)
	case "clear":
		sh.tree.Clear()
	default:
		e, err := ops.Default.ParseArgs(args)
		if err != nil {
			return false, err
		}
		sh.step++
		e.Label = fmt.Sprint(sh.step)
		res, err := sh.runner.Step(sh.tree, e)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(sh.out, res)
	}
	return false, nil
}
