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

type node struct {
	key     int
	height  int // 0 for a leaf
	balance int // height(right) - height(left)
	left    *node
	right   *node
	parent  *node // navigational only, never owns
}

func newNode(key int, parent *node) *node {
	return &node{key: key, parent: parent}
}

// height of an absent subtree is -1.
func height(n *node) int {
	if n == nil {
		return -1
	}
	return n.height
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// update recomputes the cached height and balance factor from the children.
func (n *node) update() {
	n.height = 1 + max(height(n.left), height(n.right))
	n.balance = height(n.right) - height(n.left)
}

// replaceChild swaps old for u in n's child slots. old must be a child of n.
func (n *node) replaceChild(old, u *node) {
	switch {
	case n.left == old:
		n.left = u
	case n.right == old:
		n.right = u
	default:
		panic(&InvalidStateError{Op: "replaceChild", Key: old.key, Reason: "non-child passed as argument"})
	}
	if u != nil {
		u.parent = n
	}
}

// detach drops every link held by n so a removed node keeps nothing alive.
func (n *node) detach() {
	n.left, n.right, n.parent = nil, nil, nil
}

func leftmost(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}
