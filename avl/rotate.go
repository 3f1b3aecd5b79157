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

// rotateRight promotes n, the left child of p, above p and returns n.
// The caller reattaches n wherever p used to hang.
func rotateRight(n, p *node) *node {
	p.left = n.right
	if n.right != nil {
		n.right.parent = p
	}

	n.right = p
	n.parent = p.parent
	p.parent = n

	// p is the child now, so it is recomputed first
	p.update()
	n.update()
	return n
}

// rotateLeft is the mirror of rotateRight: n is the right child of p.
func rotateLeft(n, p *node) *node {
	p.right = n.left
	if n.left != nil {
		n.left.parent = p
	}

	n.left = p
	n.parent = p.parent
	p.parent = n

	p.update()
	n.update()
	return n
}

// reattach points whatever referenced old (gp's child slot, or the root) at u.
func (t *Tree) reattach(gp, old, u *node) {
	if gp == nil {
		t.root = u
		u.parent = nil
		return
	}
	gp.replaceChild(old, u)
}

func (t *Tree) fixLeftLeft(n *node) *node {
	gp := n.parent
	r := rotateRight(n.left, n)
	t.reattach(gp, n, r)
	return r
}

func (t *Tree) fixLeftRight(n *node) *node {
	l := n.left
	t.reattach(n, l, rotateLeft(l.right, l))
	return t.fixLeftLeft(n)
}

func (t *Tree) fixRightRight(n *node) *node {
	gp := n.parent
	r := rotateLeft(n.right, n)
	t.reattach(gp, n, r)
	return r
}

func (t *Tree) fixRightLeft(n *node) *node {
	r := n.right
	t.reattach(n, r, rotateRight(r.left, r))
	return t.fixRightRight(n)
}
