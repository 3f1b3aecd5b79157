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

// DeleteMin removes the smallest key and returns it.
func (t *Tree) DeleteMin() (int, error) {
	if t.root == nil {
		return 0, ErrEmptyTree
	}
	return t.deleteMin(t.root), nil
}

// deleteMin removes the leftmost node below sub and rebalances the path back
// up to and including sub (or whatever replaced sub after a rotation).
// Retracing stops at sub's parent; callers above continue from there.
func (t *Tree) deleteMin(sub *node) int {
	stop := sub.parent
	m := leftmost(sub)
	p := m.parent
	key := m.key

	t.splice(m, m.right)

	for n := p; n != stop; n = n.parent {
		n.update()
		n = t.rebalanceAfterMin(n)
	}
	return key
}

// rebalanceAfterMin only shrinks left subtrees on the way up, so a -2 is
// always resolved by the single rotation. The +2 side picks single or double
// by comparing the right child's subtrees; ties take the single rotation.
func (t *Tree) rebalanceAfterMin(n *node) *node {
	switch n.balance {
	case -2:
		return t.fixLeftLeft(n)
	case 2:
		if height(n.right.right) >= height(n.right.left) {
			return t.fixRightRight(n)
		}
		return t.fixRightLeft(n)
	}
	return n
}

// rebalanceAfterDelete handles a removal on either side, so both sides choose
// between single and double rotations.
func (t *Tree) rebalanceAfterDelete(n *node) *node {
	switch n.balance {
	case -2:
		if height(n.left.left) >= height(n.left.right) {
			return t.fixLeftLeft(n)
		}
		return t.fixLeftRight(n)
	case 2:
		if height(n.right.right) >= height(n.right.left) {
			return t.fixRightRight(n)
		}
		return t.fixRightLeft(n)
	}
	return n
}

// Delete removes one node holding key. It reports false when key is absent.
func (t *Tree) Delete(key int) bool {
	n := t.lookup(key)
	if n == nil {
		return false
	}

	var from *node
	if n.left != nil && n.right != nil {
		// the successor is the minimum of the right subtree
		n.key = t.deleteMin(n.right)
		from = n
	} else {
		child := n.left
		if child == nil {
			child = n.right
		}
		from = n.parent
		t.splice(n, child)
	}

	for ; from != nil; from = from.parent {
		from.update()
		from = t.rebalanceAfterDelete(from)
	}
	return true
}

// splice removes n, which has at most one child, putting child in its slot.
func (t *Tree) splice(n, child *node) {
	if child != nil && n.left != child && n.right != child {
		panic(&InvalidStateError{Op: "splice", Key: n.key, Reason: "replacement is not a child"})
	}

	parent := n.parent
	if parent == nil {
		if t.root != n {
			panic(&InvalidStateError{Op: "splice", Key: n.key, Reason: "parentless node is not the root"})
		}
		t.root = child
		if child != nil {
			child.parent = nil
		}
	} else {
		parent.replaceChild(n, child)
	}

	n.detach()
	t.size--
	if t.size < 0 {
		panic(&InvalidStateError{Op: "splice", Key: n.key, Reason: "size dropped below zero"})
	}
}
