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
	"github.com/cybrota/avlkit/avl"
	"github.com/cybrota/avlkit/ops"
	"github.com/patrickmn/go-cache"
)

// stepper walks a script one entry at a time. Frame n is the tree after the
// first n entries; frame 0 is the empty tree. Frames are cached as they are
// produced so going back is a lookup, and a forgotten frame is rebuilt by
// replaying from the start.
type stepper struct {
	script *ops.Script
	runner *ops.Runner
	frames *cache.Cache

	tree *avl.Tree
	pos  int
	// limit is the last reachable frame. A fatal error at entry k leaves
	// the tree unusable, so frames after k are never produced.
	limit int
}

func newStepper(s *ops.Script, r *ops.Runner, frames *cache.Cache) *stepper {
	st := &stepper{
		script: s,
		runner: r,
		frames: frames,
		tree:   avl.New(),
		limit:  len(s.Entries),
	}
	CacheFrame(frames, frame{Step: 0, Snapshot: st.tree.Snapshot()})
	return st
}

// Last is the highest frame that can be shown.
func (st *stepper) Last() int {
	return st.limit
}

// Entry returns the entry that produced frame step, if any.
func (st *stepper) Entry(step int) (ops.Entry, bool) {
	if step <= 0 || step > len(st.script.Entries) {
		return ops.Entry{}, false
	}
	return st.script.Entries[step-1], true
}

// Frame returns frame step, clamped to [0, Last()].
func (st *stepper) Frame(step int) frame {
	if step < 0 {
		step = 0
	}
	if step > st.limit {
		step = st.limit
	}
	if f, ok := GetFrame(st.frames, step); ok {
		return f
	}

	if step <= st.pos {
		st.tree = avl.New()
		st.pos = 0
	}
	var f frame
	for st.pos < step {
		f = st.advance()
		if ops.Fatal(f.Err) {
			break
		}
	}
	if st.pos == 0 {
		f = frame{Step: 0, Snapshot: st.tree.Snapshot()}
		CacheFrame(st.frames, f)
	}
	return f
}

func (st *stepper) advance() frame {
	e := st.script.Entries[st.pos]
	res, err := st.runner.Step(st.tree, e)
	st.pos++

	f := frame{Step: st.pos, Result: res.String(), Err: err}
	if ops.Fatal(err) {
		st.limit = st.pos
	} else {
		f.Snapshot = st.tree.Snapshot()
	}
	CacheFrame(st.frames, f)
	return f
}
