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

// Package avl implements a height-balanced binary search tree over int keys.
//
// Every node caches its height and balance factor and keeps a pointer to its
// parent, so mutations descend iteratively and then walk back up the parent
// chain, recomputing each ancestor and rotating wherever the balance factor
// reaches -2 or +2. Equal keys are routed to the right subtree, so inserting
// an existing key adds a second node.
//
// A Tree is not safe for concurrent use; callers serialize access.
package avl

// Tree is an AVL tree. The zero value is an empty tree ready to use.
type Tree struct {
	root *node
	size int
}

func New() *Tree {
	return &Tree{}
}

// Insert adds key as a new leaf and rebalances every ancestor up to the root.
func (t *Tree) Insert(key int) {
	if t.root == nil {
		t.root = newNode(key, nil)
		t.size++
		return
	}

	var parent *node
	for cur := t.root; cur != nil; {
		parent = cur
		if key < cur.key {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}

	n := newNode(key, parent)
	if key < parent.key {
		parent.left = n
	} else {
		parent.right = n
	}
	t.size++

	t.retraceInsert(parent, key)
}

// retraceInsert walks from n to the root. The rotation case is picked by
// comparing the inserted key with the heavy child's key, which tells which
// grandchild the insertion went through.
func (t *Tree) retraceInsert(n *node, key int) {
	for ; n != nil; n = n.parent {
		n.update()
		switch n.balance {
		case -2:
			if key < n.left.key {
				n = t.fixLeftLeft(n)
			} else {
				n = t.fixLeftRight(n)
			}
		case 2:
			if key >= n.right.key {
				n = t.fixRightRight(n)
			} else {
				n = t.fixRightLeft(n)
			}
		}
	}
}

// Find reports whether a node with key is present.
func (t *Tree) Find(key int) bool {
	return t.lookup(key) != nil
}

func (t *Tree) lookup(key int) *node {
	cur := t.root
	for cur != nil {
		if cur.key == key {
			return cur
		}
		if key < cur.key {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return nil
}

func (t *Tree) Size() int {
	return t.size
}

func (t *Tree) Empty() bool {
	return t.size == 0
}

// Height returns the height of the root, or -1 for an empty tree.
func (t *Tree) Height() int {
	return height(t.root)
}

// Clear drops every node.
func (t *Tree) Clear() {
	t.root = nil
	t.size = 0
}
