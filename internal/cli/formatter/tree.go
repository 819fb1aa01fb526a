package formatter

import (
	"strings"

	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	IsTask bool
	// Open[i] is true when the ancestor at level i+1 has later siblings,
	// so a pipe continues through this line.
	Open   []bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// TreeItemsFromEntries converts store render rows into tree items, working
// out which ancestor pipes stay open.
func TreeItemsFromEntries(entries []tree.Entry, detail func(tree.Entry) string) []TreeItem {
	items := make([]TreeItem, 0, len(entries))
	var lastAt []bool // lastAt[d] is IsLast of the most recent entry at depth d
	for _, e := range entries {
		if len(lastAt) <= e.Depth {
			lastAt = append(lastAt, make([]bool, e.Depth+1-len(lastAt))...)
		}
		lastAt[e.Depth] = e.IsLast

		item := TreeItem{
			Title:  e.Label,
			Level:  e.Depth,
			IsLast: e.IsLast,
			IsTask: e.IsTask,
		}
		for d := 1; d < e.Depth; d++ {
			item.Open = append(item.Open, !lastAt[d])
		}
		if detail != nil {
			item.Detail = detail(e)
		}
		items = append(items, item)
	}
	return items
}

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Departments get a ◇ marker and tasks a ○ marker; detail
// badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				if i-1 < len(item.Open) && !item.Open[i-1] {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(treePipe)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		var title string
		if item.IsTask {
			title = StyleBlue.Render("○ ") + StyleFg.Render(item.Title)
		} else {
			title = StyleHeader.Render("◇ " + item.Title)
		}
		content := StyleDim.Render(prefix.String()) + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleDim.Render("[ " + item.Detail + " ]")
		}
		maxContentWidth = max(maxContentWidth, lipgloss.Width(content))
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}
	return b.String()
}
