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
	"sort"
	"testing"
	"testing/quick"
)

func TestProperties(t *testing.T) {
	tests := []struct {
		scenario string
		function func(*testing.T)
	}{
		{
			scenario: "invariants hold after every insert",
			function: testInsertKeepsInvariants,
		},
		{
			scenario: "invariants and size hold across inserts and deletes",
			function: testDeleteKeepsInvariants,
		},
		{
			scenario: "repeated minimum deletion yields keys in sorted order",
			function: testDeleteMinSorted,
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, test.function)
	}
}

func testInsertKeepsInvariants(t *testing.T) {
	f := func(keys []int16) bool {
		tree := New()
		for _, k := range keys {
			tree.Insert(int(k))
			if err := tree.Validate(); err != nil {
				t.Errorf("after Insert(%d): %v", k, err)
				return false
			}
		}
		for _, k := range keys {
			if !tree.Find(int(k)) {
				t.Errorf("Find(%d) = false for an inserted key", k)
				return false
			}
		}
		return tree.Size() == len(keys)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

// Keys are drawn from int8 so deletes regularly hit duplicates and misses.
func testDeleteKeepsInvariants(t *testing.T) {
	f := func(keys []int8, deletes []int8) bool {
		tree := New()
		counts := make(map[int]int)
		for _, k := range keys {
			tree.Insert(int(k))
			counts[int(k)]++
		}

		size := len(keys)
		for _, k := range deletes {
			key := int(k)
			removed := tree.Delete(key)
			if removed != (counts[key] > 0) {
				t.Errorf("Delete(%d) = %v with %d copies present", key, removed, counts[key])
				return false
			}
			if removed {
				counts[key]--
				size--
			}
			if err := tree.Validate(); err != nil {
				t.Errorf("after Delete(%d): %v", key, err)
				return false
			}
			if tree.Find(key) != (counts[key] > 0) {
				t.Errorf("Find(%d) disagrees with %d remaining copies", key, counts[key])
				return false
			}
		}
		return tree.Size() == size
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func testDeleteMinSorted(t *testing.T) {
	f := func(keys []int16) bool {
		tree := New()
		for _, k := range keys {
			tree.Insert(int(k))
		}

		want := make([]int, len(keys))
		for i, k := range keys {
			want[i] = int(k)
		}
		sort.Ints(want)

		for i := range want {
			got, err := tree.DeleteMin()
			if err != nil {
				t.Errorf("DeleteMin #%d: %v", i, err)
				return false
			}
			if got != want[i] {
				t.Errorf("DeleteMin #%d = %d; want %d", i, got, want[i])
				return false
			}
			if err := tree.Validate(); err != nil {
				t.Errorf("after DeleteMin #%d: %v", i, err)
				return false
			}
		}
		_, err := tree.DeleteMin()
		return err == ErrEmptyTree && tree.Height() == -1
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
