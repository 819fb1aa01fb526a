package formatter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/tree"
)

// FormatMapList renders the stored maps as a table. The current map is
// marked with "●".
func FormatMapList(maps []*domain.OrgMap, current string) string {
	headers := []string{"", "NAME", "UPDATED", "CREATED"}
	rows := make([][]string, 0, len(maps))
	for _, m := range maps {
		marker := ""
		if m.Name == current {
			marker = StyleGreen.Render("●")
		}
		rows = append(rows, []string{
			marker,
			Bold(m.Name),
			HumanTimestamp(m.UpdatedAt),
			HumanDate(m.CreatedAt),
		})
	}
	return RenderTable(headers, rows)
}

// FormatMapTree renders the whole org chart. An empty map renders a hint.
func FormatMapTree(mapName string, s *tree.Store) string {
	entries := s.Entries()
	if len(entries) == 0 {
		return Dim(fmt.Sprintf("Map %q is empty. Add a department with: opsmap node add NAME", mapName)) + "\n"
	}
	items := TreeItemsFromEntries(entries, taskBadge)
	return RenderTree(items)
}

func taskBadge(e tree.Entry) string {
	if !e.IsTask {
		return ""
	}
	return fmt.Sprintf("%s · %s", e.Record.Frequency, FormatHours(e.Record.EffortHours))
}

// FormatPaths prints one encoded path per line.
func FormatPaths(s *tree.Store) string {
	var b strings.Builder
	for p := range s.Paths() {
		b.WriteString(domain.EncodePath(p))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTaskRecord renders the record of the task at path.
func FormatTaskRecord(path domain.Path, rec domain.TaskRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(path.Name()), Dim(path.String())))
	content := rec.Content
	if content == "" {
		content = Dim("(no description)")
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("CONTENT   "), content))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("FREQUENCY "), FrequencyColor(rec.Frequency).Render(string(rec.Frequency))))
	b.WriteString(fmt.Sprintf("  %s  %s %s\n", Dim("IMPORTANCE"), ImportanceStars(rec.Importance), Dim(fmt.Sprintf("(%d)", rec.Importance))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("EFFORT    "), FormatHours(rec.EffortHours)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("ESTIMATE  "), FormatMinutes(rec.EstimateMin)))
	return RenderBox("Task", b.String())
}

// FormatDepartment renders a department with its rollup and direct children.
func FormatDepartment(path domain.Path, n *tree.Node, r tree.Rollup) string {
	var b strings.Builder
	title := path.Name()
	if path.IsRoot() {
		title = "(root)"
	}
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(title), Dim(path.String())))
	b.WriteString(fmt.Sprintf("  %s  %d\n", Dim("DEPARTMENTS"), r.Departments))
	b.WriteString(fmt.Sprintf("  %s  %d\n", Dim("TASKS      "), r.Tasks))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("EFFORT     "), FormatHours(r.EffortHours)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("ESTIMATE   "), FormatMinutes(r.EstimateMin)))
	if r.Tasks > 0 {
		b.WriteString(fmt.Sprintf("  %s  %.1f\n", Dim("IMPORTANCE "), r.MeanImportance))
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("FREQUENCY  "), formatFrequencyMix(r.ByFrequency)))
	}

	children := n.Children()
	if len(children) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Children"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(children))
		for _, c := range children {
			kind := "department"
			if c.IsTask() {
				kind = "task"
			}
			rows = append(rows, []string{c.Name(), Dim(kind), fmt.Sprintf("%d", c.Len())})
		}
		b.WriteString(RenderTable([]string{"NAME", "KIND", "CHILDREN"}, rows, 2))
	}
	return RenderBox("Department", b.String())
}

func formatFrequencyMix(counts map[domain.Frequency]int) string {
	parts := make([]string, 0, len(counts))
	for _, f := range domain.Frequencies {
		if n := counts[f]; n > 0 {
			parts = append(parts, FrequencyColor(f).Render(fmt.Sprintf("%s %d", f, n)))
		}
	}
	// Unknown frequencies are listed after the known ones.
	var extra []string
	for f, n := range counts {
		if !f.Valid() && n > 0 {
			extra = append(extra, fmt.Sprintf("%s %d", f, n))
		}
	}
	slices.Sort(extra)
	return strings.Join(append(parts, extra...), Dim(" · "))
}
