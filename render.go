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
	"fmt"
	"strings"

	"github.com/cybrota/avlkit/avl"
)

// shapeNode is a snapshot entry with its child links restored.
type shapeNode struct {
	report      avl.NodeReport
	left, right *shapeNode
}

// rebuildShape links a breadth-first snapshot back into a tree. Children are
// taken from the queue in order rather than looked up by key, so equal keys
// land in the right place.
func rebuildShape(s avl.Snapshot) (*shapeNode, error) {
	if len(s.Nodes) == 0 {
		return nil, nil
	}

	nodes := make([]*shapeNode, len(s.Nodes))
	for i := range s.Nodes {
		nodes[i] = &shapeNode{report: s.Nodes[i]}
	}

	next := 1
	take := func(want int, parent *shapeNode) (*shapeNode, error) {
		if next >= len(nodes) {
			return nil, fmt.Errorf("snapshot ends before child %d of %d", want, parent.report.Key)
		}
		c := nodes[next]
		next++
		if c.report.Key != want {
			return nil, fmt.Errorf("node %d expects child %d, snapshot has %d", parent.report.Key, want, c.report.Key)
		}
		return c, nil
	}

	for i, n := range nodes {
		if i >= next {
			return nil, fmt.Errorf("node %d is not reachable from the root", n.report.Key)
		}
		var err error
		if l := n.report.Left; l != nil {
			if n.left, err = take(*l, n); err != nil {
				return nil, err
			}
		}
		if r := n.report.Right; r != nil {
			if n.right, err = take(*r, n); err != nil {
				return nil, err
			}
		}
	}
	return nodes[0], nil
}

type treePrinter struct {
	b     strings.Builder
	color bool
}

// renderTree draws the snapshot top down, one node per line, left child
// first:
//
//	34 (h=2, bf=-1)
//	├── L 10 (h=1, bf=-1)
//	│   └── L 5 (h=0, bf=0)
//	└── R 60 (h=0, bf=0)
func renderTree(s avl.Snapshot, color bool) (string, error) {
	root, err := rebuildShape(s)
	if err != nil {
		return "", err
	}
	if root == nil {
		return "(empty)\n", nil
	}

	p := &treePrinter{color: color}
	p.write(root, "", "", true, true)
	return p.b.String(), nil
}

func (p *treePrinter) label(r avl.NodeReport) string {
	key := fmt.Sprint(r.Key)
	if p.color {
		key = balanceANSI(r.BalanceFactor) + key + Reset
	}
	return fmt.Sprintf("%s (h=%d, bf=%d)", key, r.Height, r.BalanceFactor)
}

func (p *treePrinter) write(n *shapeNode, prefix, side string, last, root bool) {
	childPrefix := prefix
	if root {
		p.b.WriteString(p.label(n.report) + "\n")
	} else {
		connector, pad := "├── ", "│   "
		if last {
			connector, pad = "└── ", "    "
		}
		p.b.WriteString(prefix + connector + side + " " + p.label(n.report) + "\n")
		childPrefix += pad
	}

	switch {
	case n.left != nil && n.right != nil:
		p.write(n.left, childPrefix, "L", false, false)
		p.write(n.right, childPrefix, "R", true, false)
	case n.left != nil:
		p.write(n.left, childPrefix, "L", true, false)
	case n.right != nil:
		p.write(n.right, childPrefix, "R", true, false)
	}
}
