package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/opsmap/internal/cli/formatter"
	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/alexanderramin/opsmap/internal/service"
	"github.com/alexanderramin/opsmap/internal/tree"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Explore the org chart interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("browse: %w", errNotInteractive)
			}
			m := mapName(cmd, app)
			// Fail before entering the alt screen when the map is missing.
			if _, err := app.Maps.Get(context.Background(), m); err != nil {
				return explainMapError(m, err)
			}
			return app.runProgram(newBrowseModel(app.Tree, m))
		},
	}
}

type browseKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "collapse")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Edit, k.Delete, k.Refresh, k.Quit}
}

// browseLoadedMsg carries a freshly loaded tree.
type browseLoadedMsg struct {
	store *tree.Store
	err   error
}

// browseDeletedMsg reports the outcome of a delete.
type browseDeletedMsg struct {
	id  string
	err error
}

// browseSavedMsg reports the outcome of a task form save.
type browseSavedMsg struct {
	id  string
	err error
}

// browseEdit is the task form open over the tree.
type browseEdit struct {
	path   domain.Path
	form   *huh.Form
	values *taskFormValues
}

// browseModel shows a map as a collapsible tree with a detail pane for the
// selected node. Deletes go through the TreeService and trigger a reload.
type browseModel struct {
	svc     service.TreeService
	mapName string
	keys    browseKeyMap

	store     *tree.Store
	entries   []tree.Entry
	collapsed map[string]bool // encoded path -> collapsed
	cursor    int

	width, height int
	loading       bool
	confirming    bool
	edit          *browseEdit
	status        string
	err           error
}

func newBrowseModel(svc service.TreeService, mapName string) *browseModel {
	return &browseModel{
		svc:       svc,
		mapName:   mapName,
		keys:      defaultBrowseKeys(),
		collapsed: make(map[string]bool),
		loading:   true,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.load()
}

func (m *browseModel) load() tea.Cmd {
	svc, name := m.svc, m.mapName
	return func() tea.Msg {
		store, err := svc.Load(context.Background(), name)
		return browseLoadedMsg{store: store, err: err}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.edit != nil {
			return m.updateEdit(msg)
		}
		return m, nil

	case browseLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.store = msg.store
		m.entries = msg.store.Entries()
		m.clampCursor()
		return m, nil

	case browseDeletedMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return m, nil
		}
		delete(m.collapsed, msg.id)
		m.status = formatter.StyleGreen.Render("Removed " + msg.id)
		m.loading = true
		return m, m.load()

	case browseSavedMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return m, nil
		}
		m.status = formatter.StyleGreen.Render("Saved " + msg.id)
		m.loading = true
		return m, m.load()
	}

	if m.edit != nil {
		return m.updateEdit(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

// updateEdit forwards everything to the open form. Esc closes it unsaved.
func (m *browseModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.edit = nil
		m.status = formatter.Dim("Edit cancelled.")
		return m, nil
	}

	form, cmd := m.edit.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.edit.form = f
	}

	switch m.edit.form.State {
	case huh.StateAborted:
		m.edit = nil
		m.status = formatter.Dim("Edit cancelled.")
		return m, nil
	case huh.StateCompleted:
		edit := m.edit
		m.edit = nil
		rec, err := edit.values.record()
		if err != nil {
			m.status = formatter.StyleRed.Render("Error: " + err.Error())
			return m, nil
		}
		svc, name, id := m.svc, m.mapName, edit.path.String()
		return m, func() tea.Msg {
			err := svc.SaveTask(context.Background(), name, edit.path, rec)
			return browseSavedMsg{id: id, err: err}
		}
	}
	return m, cmd
}

// startEdit opens the task form for the selected task or childless
// department.
func (m *browseModel) startEdit() tea.Cmd {
	sel, ok := m.selected()
	if !ok {
		return nil
	}
	rec, err := currentRecord(m.store, sel.Path)
	if err != nil {
		m.status = formatter.StyleRed.Render("Error: " + err.Error())
		return nil
	}
	values := newTaskFormValues(rec)
	m.edit = &browseEdit{path: sel.Path, form: taskForm(sel.ID, values), values: values}
	m.status = ""
	return m.edit.form.Init()
}

func (m *browseModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.confirming = false
		sel, ok := m.selected()
		if !ok {
			return m, nil
		}
		svc, name, path, id := m.svc, m.mapName, sel.Path, sel.ID
		return m, func() tea.Msg {
			err := svc.Delete(context.Background(), name, path)
			return browseDeletedMsg{id: id, err: err}
		}
	case key.Matches(msg, m.keys.Cancel):
		m.confirming = false
		m.status = ""
	}
	return m, nil
}

func (m *browseModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleEntries()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if sel, ok := m.selected(); ok && !sel.IsTask {
			m.collapsed[sel.ID] = !m.collapsed[sel.ID]
		}
	case key.Matches(msg, m.keys.Edit):
		return m, m.startEdit()
	case key.Matches(msg, m.keys.Delete):
		if sel, ok := m.selected(); ok {
			m.confirming = true
			m.status = formatter.StyleYellowBold.Render(fmt.Sprintf("Delete %q and everything beneath it? (y/n)", sel.ID))
		}
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.status = ""
		return m, m.load()
	}
	return m, nil
}

// visibleEntries skips the descendants of collapsed departments.
func (m *browseModel) visibleEntries() []tree.Entry {
	var visible []tree.Entry
	collapsedDepth := -1
	for _, e := range m.entries {
		if collapsedDepth >= 0 {
			if e.Depth > collapsedDepth {
				continue
			}
			collapsedDepth = -1
		}
		if !e.IsTask && m.collapsed[e.ID] {
			collapsedDepth = e.Depth
		}
		visible = append(visible, e)
	}
	return visible
}

func (m *browseModel) selected() (tree.Entry, bool) {
	visible := m.visibleEntries()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return tree.Entry{}, false
	}
	return visible[m.cursor], true
}

func (m *browseModel) clampCursor() {
	n := len(m.visibleEntries())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

const browseSplitMinWidth = 100

func (m *browseModel) View() string {
	header := formatter.StyleHeader.Render("OPSMAP") + formatter.Dim(" · "+m.mapName)
	if m.loading && m.store == nil {
		return header + "\n\n  " + formatter.Dim("Loading...")
	}
	if m.err != nil {
		return header + "\n\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}
	if m.edit != nil {
		return header + "\n\n" + m.edit.form.View() + "\n" + formatter.Dim("esc: cancel")
	}

	var body string
	visible := m.visibleEntries()
	if len(visible) == 0 {
		body = formatter.Dim("This map is empty.")
	} else {
		treePane := m.renderTree(visible)
		detail := m.renderDetail()
		if m.width >= browseSplitMinWidth {
			left := lipgloss.NewStyle().Width(m.width / 2).Render(treePane)
			body = lipgloss.JoinHorizontal(lipgloss.Top, left, detail)
		} else {
			body = treePane + "\n" + detail
		}
	}

	footer := m.renderHelp()
	if m.status != "" {
		footer = m.status + "\n" + footer
	}
	return header + "\n\n" + body + "\n" + footer
}

func (m *browseModel) renderTree(visible []tree.Entry) string {
	items := formatter.TreeItemsFromEntries(visible, nil)
	var b strings.Builder
	for i, item := range items {
		line := strings.TrimSuffix(formatter.RenderTree([]formatter.TreeItem{item}), "\n")
		e := visible[i]
		if !e.IsTask && m.collapsed[e.ID] {
			if n, ok := m.store.Get(e.Path); ok && n.Len() > 0 {
				line += formatter.Dim(fmt.Sprintf(" (+%d)", n.Len()))
			}
		}
		if i == m.cursor {
			b.WriteString(formatter.StyleGreen.Render("▸ ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (m *browseModel) renderDetail() string {
	sel, ok := m.selected()
	if !ok {
		return ""
	}
	if sel.IsTask {
		return formatter.FormatTaskRecord(sel.Path, sel.Record)
	}
	n, ok := m.store.Get(sel.Path)
	if !ok {
		return ""
	}
	r, err := m.store.Rollup(sel.Path)
	if err != nil {
		return formatter.StyleRed.Render(err.Error())
	}
	return formatter.FormatDepartment(sel.Path, n, r)
}

func (m *browseModel) renderHelp() string {
	bindings := m.keys.ShortHelp()
	if m.confirming {
		bindings = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, formatter.Dim(h.Key+": "+h.Desc))
	}
	return strings.Join(hints, "  ")
}
