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
	"errors"
	"testing"
	"time"

	"github.com/cybrota/avlkit/avl"
	"github.com/cybrota/avlkit/ops"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheFrameAndGetFrame(t *testing.T) {
	c := NewFrameCache()

	_, ok := GetFrame(c, 3)
	assert.False(t, ok)

	want := frame{Step: 3, Snapshot: treeOf(1, 2).Snapshot(), Result: "Insert 2"}
	CacheFrame(c, want)

	got, ok := GetFrame(c, 3)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFrameExpiration(t *testing.T) {
	c := cache.New(100*time.Millisecond, 50*time.Millisecond)
	c.Set(frameKey(1), frame{Step: 1}, 100*time.Millisecond)

	_, ok := GetFrame(c, 1)
	require.True(t, ok)

	time.Sleep(150 * time.Millisecond)

	_, ok = GetFrame(c, 1)
	assert.False(t, ok, "frame should have expired")
}

func scriptOf(t *testing.T, lines ...string) *ops.Script {
	t.Helper()
	s := &ops.Script{}
	for _, l := range lines {
		e, err := ops.Default.ParseLine(l)
		require.NoError(t, err, l)
		s.Entries = append(s.Entries, e)
	}
	return s
}

func TestStepperWalksForwardAndBack(t *testing.T) {
	c := NewFrameCache()
	st := newStepper(scriptOf(t, "insert 3", "insert 1", "insert 2", "deletemin"), &ops.Runner{CheckInvariants: true}, c)

	assert.Equal(t, 4, st.Last())
	assert.Empty(t, st.Frame(0).Snapshot.Nodes)

	f := st.Frame(3)
	assert.Equal(t, 3, f.Step)
	assert.Equal(t, []int{2, 1, 3}, f.Snapshot.Keys())

	f = st.Frame(4)
	assert.Equal(t, "DeleteMin 1", f.Result)
	assert.Equal(t, []int{2, 3}, f.Snapshot.Keys())

	// every frame on the way was cached
	for step := 0; step <= 4; step++ {
		_, ok := GetFrame(c, step)
		assert.True(t, ok, "frame %d", step)
	}
	assert.Equal(t, []int{3}, st.Frame(1).Snapshot.Keys())
}

func TestStepperReplaysForgottenFrames(t *testing.T) {
	c := NewFrameCache()
	st := newStepper(scriptOf(t, "insert 3", "insert 1", "insert 2"), &ops.Runner{}, c)

	st.Frame(3)
	c.Delete(frameKey(2))

	f := st.Frame(2)
	assert.Equal(t, 2, f.Step)
	assert.Equal(t, []int{3, 1}, f.Snapshot.Keys())
	assert.Equal(t, "Insert 1", f.Result)
}

func TestStepperClamps(t *testing.T) {
	st := newStepper(scriptOf(t, "insert 1"), &ops.Runner{}, NewFrameCache())

	assert.Equal(t, 0, st.Frame(-5).Step)
	assert.Equal(t, 1, st.Frame(99).Step)

	_, ok := st.Entry(0)
	assert.False(t, ok)
	e, ok := st.Entry(1)
	require.True(t, ok)
	assert.Equal(t, "Insert", e.Name)
}

func TestStepperKeepsGoingAfterEmptyDeleteMin(t *testing.T) {
	st := newStepper(scriptOf(t, "deletemin", "insert 4"), &ops.Runner{}, NewFrameCache())

	f := st.Frame(1)
	assert.True(t, errors.Is(f.Err, avl.ErrEmptyTree))
	assert.Equal(t, 2, st.Last())
	assert.Equal(t, []int{4}, st.Frame(2).Snapshot.Keys())
}

type brokenOp struct{}

func (brokenOp) Name() string { return "Broken" }

func (brokenOp) Apply(*avl.Tree) (ops.Result, error) {
	panic(&avl.InvalidStateError{Op: "broken", Key: 1, Reason: "forced"})
}

func TestStepperHaltsOnInvalidState(t *testing.T) {
	s := scriptOf(t, "insert 1", "insert 2")
	s.Entries = append(s.Entries[:1], ops.Entry{Label: "x", Name: "Broken", Op: brokenOp{}}, s.Entries[1])

	st := newStepper(s, &ops.Runner{}, NewFrameCache())
	f := st.Frame(3)

	assert.Equal(t, 2, f.Step)
	assert.True(t, ops.Fatal(f.Err))
	assert.Equal(t, 2, st.Last())
	assert.Equal(t, 2, st.Frame(3).Step)
}
