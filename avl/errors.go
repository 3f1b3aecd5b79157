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
	"fmt"
)

var (
	// ErrEmptyTree is returned by DeleteMin when the tree holds no keys.
	ErrEmptyTree = errors.New("avl: tree is empty")

	// ErrInvalidState marks an internal consistency failure. Operations that
	// hit it panic with an *InvalidStateError wrapping this value.
	ErrInvalidState = errors.New("avl: invalid tree state")

	// ErrInvariant is wrapped by every error returned from Validate.
	ErrInvariant = errors.New("avl: invariant violated")
)

// InvalidStateError describes a broken parent/child link found mid-operation.
type InvalidStateError struct {
	Op     string
	Key    int
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%v: %s on key %d: %s", ErrInvalidState, e.Op, e.Key, e.Reason)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
