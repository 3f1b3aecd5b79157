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
	"fmt"
	"math"
)

// Validate checks ordering, balance, cached heights, parent links and size.
// The first violation found is returned wrapped around ErrInvariant.
func (t *Tree) Validate() error {
	if t.root != nil && t.root.parent != nil {
		return fmt.Errorf("%w: root %d has parent %d", ErrInvariant, t.root.key, t.root.parent.key)
	}

	count, _, err := validateNode(t.root, math.MinInt, math.MaxInt)
	if err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("%w: size is %d but %d nodes are reachable", ErrInvariant, t.size, count)
	}
	return nil
}

// validateNode checks the subtree at n against the bounds lo <= key <= hi and
// returns its node count and real height.
func validateNode(n *node, lo, hi int) (int, int, error) {
	if n == nil {
		return 0, -1, nil
	}
	if n.key < lo || n.key > hi {
		return 0, 0, fmt.Errorf("%w: key %d outside [%d, %d]", ErrInvariant, n.key, lo, hi)
	}
	for _, c := range []*node{n.left, n.right} {
		if c != nil && c.parent != n {
			return 0, 0, fmt.Errorf("%w: child %d of %d has a stale parent link", ErrInvariant, c.key, n.key)
		}
	}

	lc, lh, err := validateNode(n.left, lo, n.key)
	if err != nil {
		return 0, 0, err
	}
	rc, rh, err := validateNode(n.right, n.key, hi)
	if err != nil {
		return 0, 0, err
	}

	h := 1 + max(lh, rh)
	switch {
	case n.isLeaf() && n.height != 0:
		return 0, 0, fmt.Errorf("%w: leaf %d has height %d", ErrInvariant, n.key, n.height)
	case n.height != h:
		return 0, 0, fmt.Errorf("%w: node %d caches height %d, want %d", ErrInvariant, n.key, n.height, h)
	case n.balance != rh-lh:
		return 0, 0, fmt.Errorf("%w: node %d caches balance %d, want %d", ErrInvariant, n.key, n.balance, rh-lh)
	case n.balance < -1 || n.balance > 1:
		return 0, 0, fmt.Errorf("%w: node %d is out of balance (%d)", ErrInvariant, n.key, n.balance)
	}
	return lc + rc + 1, h, nil
}
