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
	"fmt"

	"github.com/cybrota/avlkit/avl"
)

// Operation is one command applied to a tree
type Operation interface {
	Name() string
	Apply(t *avl.Tree) (Result, error)
}

// Result records what an operation did. Found means the key was present
// (Find), removed (Delete, DeleteMin) or added (Insert).
type Result struct {
	Op     string
	Key    int
	HasKey bool
	Found  bool
}

func (r Result) String() string {
	switch {
	case !r.HasKey:
		return r.Op
	case r.Op == "Find" || r.Op == "Delete":
		outcome := "hit"
		if !r.Found {
			outcome = "miss"
		}
		return fmt.Sprintf("%s %d: %s", r.Op, r.Key, outcome)
	default:
		return fmt.Sprintf("%s %d", r.Op, r.Key)
	}
}

type Insert struct{ Key int }

func (Insert) Name() string { return "Insert" }

func (o Insert) Apply(t *avl.Tree) (Result, error) {
	t.Insert(o.Key)
	return Result{Op: o.Name(), Key: o.Key, HasKey: true, Found: true}, nil
}

type Delete struct{ Key int }

func (Delete) Name() string { return "Delete" }

func (o Delete) Apply(t *avl.Tree) (Result, error) {
	removed := t.Delete(o.Key)
	return Result{Op: o.Name(), Key: o.Key, HasKey: true, Found: removed}, nil
}

type DeleteMin struct{}

func (DeleteMin) Name() string { return "DeleteMin" }

// Apply fails with avl.ErrEmptyTree when there is nothing to remove.
func (o DeleteMin) Apply(t *avl.Tree) (Result, error) {
	key, err := t.DeleteMin()
	if err != nil {
		return Result{Op: o.Name()}, err
	}
	return Result{Op: o.Name(), Key: key, HasKey: true, Found: true}, nil
}

type Find struct{ Key int }

func (Find) Name() string { return "Find" }

func (o Find) Apply(t *avl.Tree) (Result, error) {
	return Result{Op: o.Name(), Key: o.Key, HasKey: true, Found: t.Find(o.Key)}, nil
}
