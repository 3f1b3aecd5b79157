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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cybrota/avlkit/avl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell() (*shell, *bytes.Buffer) {
	var buf bytes.Buffer
	return newShell(&buf, outputOptions{Format: formatJSON, Indent: 2}), &buf
}

func TestShellExec(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"insert 5", "Insert 5\n"},
		{"insert 2", "Insert 2\n"},
		{"find 5", "Find 5: hit\n"},
		{"FIND 9", "Find 9: miss\n"},
		{"delete 9", "Delete 9: miss\n"},
		{"size", "size 2, height 1\n"},
		{"deletemin", "DeleteMin 2\n"},
		{"print", "5 (h=0, bf=0)\n"},
		{"  # a comment", ""},
		{"", ""},
	}

	sh, buf := newTestShell()
	for _, tc := range tests {
		buf.Reset()
		quit, err := sh.exec(tc.line)
		require.NoError(t, err, tc.line)
		assert.False(t, quit)
		assert.Equal(t, tc.want, buf.String(), tc.line)
	}
}

func TestShellErrors(t *testing.T) {
	sh, _ := newTestShell()

	_, err := sh.exec("deletemin")
	assert.True(t, errors.Is(err, avl.ErrEmptyTree))

	for _, line := range []string{"grow 3", "insert", "insert five", "snapshot xml", `insert "3`} {
		_, err := sh.exec(line)
		assert.Error(t, err, line)
	}
}

func TestShellSnapshotAndClear(t *testing.T) {
	sh, buf := newTestShell()
	for _, line := range []string{"insert 2", "insert 1", "insert 3"} {
		_, err := sh.exec(line)
		require.NoError(t, err)
	}

	buf.Reset()
	_, err := sh.exec("snapshot")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"root": 2`)

	buf.Reset()
	_, err = sh.exec("snapshot yaml")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "root: 2")

	_, err = sh.exec("clear")
	require.NoError(t, err)
	assert.True(t, sh.tree.Empty())
}

func TestShellCheck(t *testing.T) {
	DisableColors()
	sh, buf := newTestShell()
	_, err := sh.exec("insert 1")
	require.NoError(t, err)

	buf.Reset()
	_, err = sh.exec("check")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", buf.String())
}

func TestShellRunStopsAtQuit(t *testing.T) {
	sh, buf := newTestShell()
	in := strings.NewReader("insert 1\ninsert 2\nbogus\nsize\nquit\ninsert 3\n")

	require.NoError(t, sh.run(context.Background(), in))
	assert.Equal(t, 2, sh.tree.Size())
	assert.Contains(t, buf.String(), "size 2, height 1")
	assert.Contains(t, buf.String(), "error:")
}

func TestShellRunEndsAtEOF(t *testing.T) {
	sh, _ := newTestShell()
	require.NoError(t, sh.run(context.Background(), strings.NewReader("insert 7")))
	assert.True(t, sh.tree.Find(7))
}

func TestShellQuit(t *testing.T) {
	sh, _ := newTestShell()
	for _, line := range []string{"quit", "exit", "QUIT"} {
		quit, err := sh.exec(line)
		require.NoError(t, err)
		assert.True(t, quit, line)
	}
}
