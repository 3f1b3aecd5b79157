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

import "strconv"

// NodeReport describes one node of a Snapshot. Left, Right and Parent are nil
// when the link is absent; Root is set only on the parentless node.
type NodeReport struct {
	Key           int  `json:"key" yaml:"key"`
	BalanceFactor int  `json:"balance_factor" yaml:"balance_factor"`
	Height        int  `json:"height" yaml:"height"`
	Left          *int `json:"left,omitempty" yaml:"left,omitempty"`
	Right         *int `json:"right,omitempty" yaml:"right,omitempty"`
	Parent        *int `json:"parent,omitempty" yaml:"parent,omitempty"`
	Root          bool `json:"root,omitempty" yaml:"root,omitempty"`
}

// Snapshot is a read-only structural dump of a tree. Nodes are listed in
// breadth-first order, left child before right child.
type Snapshot struct {
	Nodes  []NodeReport `json:"nodes" yaml:"nodes"`
	Height int          `json:"height" yaml:"height"`
	Size   int          `json:"size" yaml:"size"`
}

func keyRef(n *node) *int {
	if n == nil {
		return nil
	}
	k := n.key
	return &k
}

// Snapshot captures the current shape of the tree.
func (t *Tree) Snapshot() Snapshot {
	s := Snapshot{
		Nodes:  make([]NodeReport, 0, t.size),
		Height: height(t.root),
		Size:   t.size,
	}
	if t.root == nil {
		return s
	}

	queue := []*node{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		s.Nodes = append(s.Nodes, NodeReport{
			Key:           n.key,
			BalanceFactor: n.balance,
			Height:        n.height,
			Left:          keyRef(n.left),
			Right:         keyRef(n.right),
			Parent:        keyRef(n.parent),
			Root:          n.parent == nil,
		})

		if n.left != nil {
			queue = append(queue, n.left)
		}
		if n.right != nil {
			queue = append(queue, n.right)
		}
	}
	return s
}

// Document lays the snapshot out as a flat report keyed by the decimal node
// key, with "root", "height" and "size" at the top level. Equal keys share
// one entry; the one visited last wins.
func (s Snapshot) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"height": s.Height,
		"size":   s.Size,
	}
	for _, n := range s.Nodes {
		entry := map[string]interface{}{
			"balance factor": n.BalanceFactor,
			"height":         n.Height,
		}
		if n.Left != nil {
			entry["left"] = *n.Left
		}
		if n.Right != nil {
			entry["right"] = *n.Right
		}
		if n.Parent != nil {
			entry["parent"] = *n.Parent
		} else {
			entry["root"] = true
			doc["root"] = n.Key
		}
		doc[strconv.Itoa(n.Key)] = entry
	}
	return doc
}

// Keys returns the node keys in breadth-first order.
func (s Snapshot) Keys() []int {
	keys := make([]int, len(s.Nodes))
	for i, n := range s.Nodes {
		keys[i] = n.Key
	}
	return keys
}
