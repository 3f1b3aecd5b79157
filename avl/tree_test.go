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

package avl

import (
	"errors"
	"reflect"
	"testing"
)

type AVLTestCase struct {
	Name          string
	KeysToInsert  []int
	KeysToDelete  []int
	ExpectedOrder []int // breadth-first keys after all operations
	ExpectedRoot  int
}

func TestAVLTreeOperations(t *testing.T) {
	testCases := []AVLTestCase{
		{
			Name:          "Single root",
			KeysToInsert:  []int{7},
			ExpectedOrder: []int{7},
			ExpectedRoot:  7,
		},
		{
			Name:          "Left-Left rotation",
			KeysToInsert:  []int{3, 2, 1},
			ExpectedOrder: []int{2, 1, 3},
			ExpectedRoot:  2,
		},
		{
			Name:          "Right-Right rotation",
			KeysToInsert:  []int{1, 2, 3},
			ExpectedOrder: []int{2, 1, 3},
			ExpectedRoot:  2,
		},
		{
			Name:          "Left-Right rotation",
			KeysToInsert:  []int{30, 10, 20},
			ExpectedOrder: []int{20, 10, 30},
			ExpectedRoot:  20,
		},
		{
			Name:          "Right-Left rotation",
			KeysToInsert:  []int{10, 30, 20},
			ExpectedOrder: []int{20, 10, 30},
			ExpectedRoot:  20,
		},
		{
			Name:          "Increasing run builds a perfect tree",
			KeysToInsert:  []int{1, 2, 3, 4, 5, 6, 7},
			ExpectedOrder: []int{4, 2, 6, 1, 3, 5, 7},
			ExpectedRoot:  4,
		},
		{
			Name:          "Duplicates are routed right",
			KeysToInsert:  []int{10, 34, 60, 5, 3, 60, 70, 9},
			ExpectedOrder: []int{34, 5, 60, 3, 10, 60, 70, 9},
			ExpectedRoot:  34,
		},
		{
			Name:          "Delete leaf, one-child and two-child nodes",
			KeysToInsert:  []int{10, 34, 60, 5, 3, 60, 70, 9},
			KeysToDelete:  []int{10, 5, 34},
			ExpectedOrder: []int{60, 9, 60, 3, 70},
			ExpectedRoot:  60,
		},
		{
			Name:          "Delete from the right forces a Left-Right rotation",
			KeysToInsert:  []int{5, 2, 8, 3},
			KeysToDelete:  []int{8},
			ExpectedOrder: []int{3, 2, 5},
			ExpectedRoot:  3,
		},
		{
			Name:          "Delete the only node",
			KeysToInsert:  []int{1},
			KeysToDelete:  []int{1},
			ExpectedOrder: []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tree := New()
			for _, key := range tc.KeysToInsert {
				tree.Insert(key)
				if err := tree.Validate(); err != nil {
					t.Fatalf("after Insert(%d): %v", key, err)
				}
			}
			for _, key := range tc.KeysToDelete {
				if !tree.Delete(key) {
					t.Fatalf("Delete(%d) reported key missing", key)
				}
				if err := tree.Validate(); err != nil {
					t.Fatalf("after Delete(%d): %v", key, err)
				}
			}

			snap := tree.Snapshot()
			if got := snap.Keys(); !reflect.DeepEqual(got, tc.ExpectedOrder) {
				t.Errorf("breadth-first order = %v; want %v", got, tc.ExpectedOrder)
			}
			if want := len(tc.KeysToInsert) - len(tc.KeysToDelete); tree.Size() != want {
				t.Errorf("Size() = %d; want %d", tree.Size(), want)
			}
			if len(snap.Nodes) > 0 && snap.Nodes[0].Key != tc.ExpectedRoot {
				t.Errorf("root = %d; want %d", snap.Nodes[0].Key, tc.ExpectedRoot)
			}
		})
	}
}

func TestDeleteByKeyScenario(t *testing.T) {
	tree := New()
	for _, key := range []int{10, 34, 60, 5, 3, 60, 70, 9} {
		tree.Insert(key)
		if err := tree.Validate(); err != nil {
			t.Fatalf("after Insert(%d): %v", key, err)
		}
	}

	remaining := map[int]bool{3: true, 5: true, 9: true, 10: true, 34: true, 60: true, 70: true}
	for _, key := range []int{10, 5, 34} {
		if !tree.Delete(key) {
			t.Fatalf("Delete(%d) = false; want true", key)
		}
		if err := tree.Validate(); err != nil {
			t.Fatalf("after Delete(%d): %v", key, err)
		}
		delete(remaining, key)

		if tree.Find(key) {
			t.Errorf("Find(%d) = true after delete", key)
		}
		for k := range remaining {
			if !tree.Find(k) {
				t.Errorf("Find(%d) = false after deleting %d", k, key)
			}
		}
	}
}

func TestDeleteMinSequence(t *testing.T) {
	tree := New()
	for _, key := range []int{20, 22, 10, 5, 15, 13, 14, 25, 4, 3, 2} {
		tree.Insert(key)
	}

	want := []int{2, 3, 4, 5, 10, 13, 14, 15, 20, 22, 25}
	var got []int
	for range want {
		key, err := tree.DeleteMin()
		if err != nil {
			t.Fatalf("DeleteMin: %v", err)
		}
		if err := tree.Validate(); err != nil {
			t.Fatalf("after DeleteMin() = %d: %v", key, err)
		}
		got = append(got, key)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeleteMin order = %v; want %v", got, want)
	}
	if !tree.Empty() {
		t.Errorf("tree not empty after draining, size %d", tree.Size())
	}
	if h := tree.Height(); h != -1 {
		t.Errorf("Height() = %d; want -1", h)
	}
}

func TestDeleteMinRotations(t *testing.T) {
	tests := []struct {
		name  string
		keys  []int
		min   int
		order []int
	}{
		{"Right-Right after removing the minimum", []int{2, 1, 3, 4}, 1, []int{3, 2, 4}},
		{"Right-Left after removing the minimum", []int{2, 1, 4, 3}, 1, []int{3, 2, 4}},
		{"Tie on the right child takes the single rotation", []int{2, 1, 4, 3, 5}, 1, []int{4, 2, 5, 3}},
		{"Minimum is the root", []int{1, 2}, 1, []int{2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree := New()
			for _, key := range tc.keys {
				tree.Insert(key)
			}
			min, err := tree.DeleteMin()
			if err != nil {
				t.Fatalf("DeleteMin: %v", err)
			}
			if min != tc.min {
				t.Errorf("DeleteMin() = %d; want %d", min, tc.min)
			}
			if err := tree.Validate(); err != nil {
				t.Fatal(err)
			}
			if got := tree.Snapshot().Keys(); !reflect.DeepEqual(got, tc.order) {
				t.Errorf("breadth-first order = %v; want %v", got, tc.order)
			}
		})
	}
}

func TestDeleteMinEmpty(t *testing.T) {
	tree := New()
	if _, err := tree.DeleteMin(); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("DeleteMin on empty tree: got %v; want ErrEmptyTree", err)
	}
}

func TestDeleteAbsentKeyLeavesTreeUnchanged(t *testing.T) {
	tree := New()
	for _, key := range []int{8, 4, 12, 2, 6} {
		tree.Insert(key)
	}
	before := tree.Snapshot()

	if tree.Delete(5) {
		t.Error("Delete(5) = true; want false")
	}
	if after := tree.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("snapshot changed after deleting an absent key:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestEmptyTree(t *testing.T) {
	var tree Tree
	if !tree.Empty() || tree.Size() != 0 {
		t.Errorf("zero Tree: Empty() = %v, Size() = %d", tree.Empty(), tree.Size())
	}
	if tree.Find(1) {
		t.Error("Find on empty tree = true")
	}
	if tree.Delete(1) {
		t.Error("Delete on empty tree = true")
	}
	if err := tree.Validate(); err != nil {
		t.Error(err)
	}
}

func TestClear(t *testing.T) {
	tree := New()
	for i := 0; i < 10; i++ {
		tree.Insert(i)
	}
	tree.Clear()
	if !tree.Empty() || tree.Height() != -1 || tree.Find(3) {
		t.Errorf("tree not empty after Clear: size %d height %d", tree.Size(), tree.Height())
	}
}

func TestReplaceChildPanicsOnStranger(t *testing.T) {
	parent := newNode(5, nil)
	stranger := newNode(9, nil)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("recovered %v; want an error", r)
		}
		var ise *InvalidStateError
		if !errors.As(err, &ise) || !errors.Is(err, ErrInvalidState) {
			t.Errorf("recovered %v; want *InvalidStateError", err)
		}
		if ise.Key != 9 {
			t.Errorf("InvalidStateError.Key = %d; want 9", ise.Key)
		}
	}()
	parent.replaceChild(stranger, nil)
}

func TestValidateCatchesCorruption(t *testing.T) {
	tree := New()
	for _, key := range []int{2, 1, 3} {
		tree.Insert(key)
	}
	tree.root.left.height = 4
	if err := tree.Validate(); !errors.Is(err, ErrInvariant) {
		t.Errorf("Validate() = %v; want ErrInvariant", err)
	}

	tree = New()
	for _, key := range []int{2, 1, 3} {
		tree.Insert(key)
	}
	tree.size = 7
	if err := tree.Validate(); !errors.Is(err, ErrInvariant) {
		t.Errorf("Validate() = %v; want ErrInvariant for size mismatch", err)
	}
}
