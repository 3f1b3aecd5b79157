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
	"context"
	stderrors "errors"
	"fmt"

	"github.com/cybrota/avlkit/avl"
	"github.com/pkg/errors"
)

// Observer is called after every applied entry, err included.
type Observer func(step int, e Entry, res Result, err error)

// Runner applies script entries to a tree
type Runner struct {
	// CheckInvariants validates the tree after every entry.
	CheckInvariants bool
	// StopOnError aborts on recoverable failures such as DeleteMin on an
	// empty tree. Invalid state and invariant failures always abort.
	StopOnError bool
	Observer    Observer
}

// Report summarizes a run.
type Report struct {
	Results    []Result
	Inserted   int
	Deleted    int
	Missed     int // deletes of absent keys
	MinDeleted int
	Found      int
	NotFound   int
	Failed     int
}

func (r *Report) String() string {
	return fmt.Sprintf("%d ops: %d inserted, %d deleted, %d missed, %d min-deleted, %d found, %d not found, %d failed",
		len(r.Results), r.Inserted, r.Deleted, r.Missed, r.MinDeleted, r.Found, r.NotFound, r.Failed)
}

func (r *Report) record(res Result, err error) {
	r.Results = append(r.Results, res)
	if err != nil {
		r.Failed++
		return
	}
	switch res.Op {
	case "Insert":
		r.Inserted++
	case "Delete":
		if res.Found {
			r.Deleted++
		} else {
			r.Missed++
		}
	case "DeleteMin":
		r.MinDeleted++
	case "Find":
		if res.Found {
			r.Found++
		} else {
			r.NotFound++
		}
	}
}

// NewRunner returns a runner that checks invariants and stops on any error.
func NewRunner() *Runner {
	return &Runner{CheckInvariants: true, StopOnError: true}
}

// Run applies every entry of s to t in order. The context is checked between
// entries; tree operations themselves never block.
func (r *Runner) Run(ctx context.Context, t *avl.Tree, s *Script) (*Report, error) {
	report := &Report{Results: make([]Result, 0, len(s.Entries))}

	for i, e := range s.Entries {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrapf(err, "stopped before entry %q", e.Label)
		}

		res, err := r.Step(t, e)
		report.record(res, err)
		if r.Observer != nil {
			r.Observer(i, e, res, err)
		}
		if err == nil {
			continue
		}
		if r.StopOnError || Fatal(err) {
			return report, err
		}
	}
	return report, nil
}

// Step applies a single entry. An invalid-state panic from the tree is
// turned into an error; any other panic is re-raised.
func (r *Runner) Step(t *avl.Tree, e Entry) (res Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			ise, ok := p.(*avl.InvalidStateError)
			if !ok {
				panic(p)
			}
			res = Result{Op: e.Name}
			err = errors.Wrapf(ise, "entry %q", e.Label)
		}
	}()

	res, err = e.Op.Apply(t)
	if err != nil {
		return res, errors.Wrapf(err, "entry %q", e.Label)
	}
	if r.CheckInvariants {
		if verr := t.Validate(); verr != nil {
			return res, errors.Wrapf(verr, "entry %q (%s)", e.Label, res)
		}
	}
	return res, nil
}

// Fatal reports whether err leaves the tree unusable: an internal consistency
// failure or a broken invariant.
func Fatal(err error) bool {
	return stderrors.Is(err, avl.ErrInvalidState) || stderrors.Is(err, avl.ErrInvariant)
}
