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
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/cybrota/avlkit/avl"
	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	tb "github.com/nsf/termbox-go"
)

// DisableMouseInput in termbox-go. This should be called after ui.Init()
func DisableMouseInput() {
	tb.SetInputMode(tb.InputEsc)
}

// inspectValue is what a termui tree row shows for one node.
type inspectValue struct {
	report avl.NodeReport
	side   string
}

func (v inspectValue) String() string {
	s := fmt.Sprintf("%d  h=%d bf=%d", v.report.Key, v.report.Height, v.report.BalanceFactor)
	if v.side != "" {
		s = v.side + " " + s
	}
	if v.report.BalanceFactor < -1 || v.report.BalanceFactor > 1 {
		s += "  !"
	}
	return s
}

// buildTreeNodes converts a rebuilt shape into termui tree nodes, fully
// expanded.
func buildTreeNodes(n *shapeNode, side string) *widgets.TreeNode {
	tn := &widgets.TreeNode{
		Value:    inspectValue{report: n.report, side: side},
		Expanded: true,
	}
	if n.left != nil {
		tn.Nodes = append(tn.Nodes, buildTreeNodes(n.left, "L"))
	}
	if n.right != nil {
		tn.Nodes = append(tn.Nodes, buildTreeNodes(n.right, "R"))
	}
	return tn
}

// describeNode fills the details pane using termui style markup.
func describeNode(v inspectValue) string {
	link := func(p *int) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprint(*p)
	}
	color := "green"
	switch v.report.BalanceFactor {
	case 0:
	case -1, 1:
		color = "cyan"
	default:
		color = "red"
	}

	lines := []string{
		fmt.Sprintf("[Key](fg:yellow)            %d", v.report.Key),
		fmt.Sprintf("[Height](fg:yellow)         %d", v.report.Height),
		fmt.Sprintf("[Balance factor](fg:yellow) [%d](fg:%s)", v.report.BalanceFactor, color),
		fmt.Sprintf("[Left](fg:yellow)           %s", link(v.report.Left)),
		fmt.Sprintf("[Right](fg:yellow)          %s", link(v.report.Right)),
	}
	if v.report.Root {
		lines = append(lines, "[Root](fg:yellow)           yes")
	} else {
		lines = append(lines, fmt.Sprintf("[Parent](fg:yellow)         %s", link(v.report.Parent)))
	}
	return strings.Join(lines, "\n")
}

// runInspector shows the final tree of a run as a collapsible termui tree.
func runInspector(s avl.Snapshot, title string) error {
	shape, err := rebuildShape(s)
	if err != nil {
		return err
	}

	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	DisableMouseInput()
	defer ui.Close()

	treeWidget := widgets.NewTree()
	treeWidget.Title = fmt.Sprintf(" %s: %d nodes, height %d ", title, s.Size, s.Height)
	treeWidget.TextStyle = StyleText()
	treeWidget.SelectedRowStyle = StyleSelected()
	treeWidget.BorderStyle = StyleBorder(true)
	treeWidget.WrapText = false
	if shape != nil {
		treeWidget.SetNodes([]*widgets.TreeNode{buildTreeNodes(shape, "")})
	}

	detailPara := widgets.NewParagraph()
	detailPara.Title = " Node "
	detailPara.BorderStyle = StyleBorder(false)
	detailPara.Text = "The tree is empty"

	keyboardPara := widgets.NewParagraph()
	keyboardPara.Title = " Keyboard Shortcuts "
	keyboardPara.BorderStyle = StyleBorder(false)
	keyboardPara.Text = `[<up>/<down>](fg:green) or [k/j](fg:green) -> Move selection
[<enter>](fg:green) or [<space>](fg:green) -> Expand or collapse
[E](fg:green) / [C](fg:green) -> Expand or collapse everything
[g](fg:green) / [G](fg:green) -> Jump to top or bottom
[<ctrl> + z](fg:green) -> Copy node details
[q](fg:green), [<esc>](fg:green) or [<ctrl> + c](fg:green) -> Quit`

	grid := ui.NewGrid()
	termWidth, termHeight := ui.TerminalDimensions()
	grid.SetRect(0, 0, termWidth, termHeight)
	grid.Set(
		ui.NewCol(0.6, treeWidget),
		ui.NewCol(0.4,
			ui.NewRow(0.5, detailPara),
			ui.NewRow(0.5, keyboardPara),
		),
	)

	selected := func() (inspectValue, bool) {
		n := treeWidget.SelectedNode()
		if n == nil {
			return inspectValue{}, false
		}
		v, ok := n.Value.(inspectValue)
		return v, ok
	}
	repaint := func() {
		if v, ok := selected(); ok {
			detailPara.Text = describeNode(v)
			detailPara.BorderStyle = ui.NewStyle(balanceColor(v.report.BalanceFactor))
		}
		ui.Render(grid)
	}
	repaint()

	uiEvents := ui.PollEvents()
	for {
		e := <-uiEvents
		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			return nil
		case "j", "<Down>":
			treeWidget.ScrollDown()
		case "k", "<Up>":
			treeWidget.ScrollUp()
		case "<Enter>", "<Space>":
			treeWidget.ToggleExpand()
		case "E":
			treeWidget.ExpandAll()
		case "C":
			treeWidget.CollapseAll()
		case "g", "<Home>":
			treeWidget.ScrollTop()
		case "G", "<End>":
			treeWidget.ScrollBottom()
		case "<C-z>":
			if v, ok := selected(); ok {
				if err := clipboard.WriteAll(v.String()); err != nil {
					log.Printf("Failed to copy node: %v", err)
				}
			}
		case "<Resize>":
			payload := e.Payload.(ui.Resize)
			grid.SetRect(0, 0, payload.Width, payload.Height)
			ui.Clear()
		}
		repaint()
	}
}
