package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/upfocus/internal/store"
)

type noteForm int

const (
	noteFormNew noteForm = iota
	noteFormEdit
	noteFormSearch
)

type notesModel struct {
	store  *store.Store
	width  int
	height int

	notes  []store.Note
	cursor int

	// filterIdx is -1 for all categories, else an index into store.Categories.
	filterIdx   int
	search      string
	oldestFirst bool

	formActive bool
	form       *huh.Form
	formType   noteForm
	editingID  string

	// Form field pointers (survive value copies)
	formTitle    *string
	formContent  *string
	formCategory *string
	formTask     *string
	formColor    *string
	formSearch   *string
}

func newNotesModel(s *store.Store) notesModel {
	title, content, cat, task, color, search := "", "", string(store.CategoryStudy), "", store.NoteColors[0], ""
	return notesModel{
		store:        s,
		filterIdx:    -1,
		formTitle:    &title,
		formContent:  &content,
		formCategory: &cat,
		formTask:     &task,
		formColor:    &color,
		formSearch:   &search,
	}
}

func (p *notesModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p notesModel) filter() store.NoteFilter {
	f := store.NoteFilter{Search: p.search, OldestFirst: p.oldestFirst}
	if p.filterIdx >= 0 && p.filterIdx < len(store.Categories) {
		c := store.Categories[p.filterIdx]
		f.Category = &c
	}
	return f
}

func (p notesModel) refresh() tea.Cmd {
	f := p.filter()
	return func() tea.Msg {
		notes, err := p.store.ListNotes(f)
		return notesDataMsg{notes: notes, err: err}
	}
}

func (p notesModel) selected() (store.Note, bool) {
	if p.cursor < 0 || p.cursor >= len(p.notes) {
		return store.Note{}, false
	}
	return p.notes[p.cursor], true
}

func (p notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(notesDataMsg); ok {
		if msg.err != nil {
			return p, func() tea.Msg { return statusMsg{text: fmt.Sprintf("Notes error: %v", msg.err), isError: true} }
		}
		p.notes = msg.notes
		if p.cursor >= len(p.notes) {
			p.cursor = max(0, len(p.notes)-1)
		}
		return p, nil
	}

	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return p.updateList(msg)
	}
	return p, nil
}

func (p notesModel) updateList(msg tea.KeyMsg) (notesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.notes)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.New):
		return p.showNoteForm(noteFormNew, store.Note{Category: store.CategoryStudy, ColorTag: store.NoteColors[0]})
	case key.Matches(msg, keys.Edit):
		if n, ok := p.selected(); ok {
			return p.showNoteForm(noteFormEdit, n)
		}
	case key.Matches(msg, keys.Delete):
		if n, ok := p.selected(); ok {
			return p, p.mutate(func() error { return p.store.DeleteNote(n.ID) }, "Note deleted")
		}
	case key.Matches(msg, keys.Pin):
		if n, ok := p.selected(); ok {
			return p, p.mutate(func() error { return p.store.ToggleNotePin(n.ID) }, "")
		}
	case key.Matches(msg, keys.Color):
		if n, ok := p.selected(); ok {
			next := nextColor(n.ColorTag)
			return p, p.mutate(func() error { return p.store.SetNoteColor(n.ID, next) }, "")
		}
	case key.Matches(msg, keys.Filter):
		p.filterIdx++
		if p.filterIdx >= len(store.Categories) {
			p.filterIdx = -1
		}
		p.cursor = 0
		return p, p.refresh()
	case key.Matches(msg, keys.Sort):
		p.oldestFirst = !p.oldestFirst
		return p, p.refresh()
	case key.Matches(msg, keys.Search):
		return p.showSearchForm()
	case key.Matches(msg, keys.Back):
		if p.search != "" {
			p.search = ""
			return p, p.refresh()
		}
	}
	return p, nil
}

// mutate runs a store write off the event loop, then reloads the list.
func (p notesModel) mutate(fn func() error, done string) tea.Cmd {
	f := p.filter()
	return func() tea.Msg {
		if err := fn(); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		notes, err := p.store.ListNotes(f)
		if err == nil && done != "" {
			return tea.BatchMsg{
				func() tea.Msg { return notesDataMsg{notes: notes} },
				func() tea.Msg { return statusMsg{text: done} },
			}
		}
		return notesDataMsg{notes: notes, err: err}
	}
}

func (p notesModel) showNoteForm(kind noteForm, n store.Note) (notesModel, tea.Cmd) {
	*p.formTitle = n.Title
	*p.formContent = n.Content
	*p.formCategory = string(n.Category)
	*p.formTask = n.LinkedTask
	*p.formColor = n.ColorTag
	p.formType = kind
	p.editingID = n.ID

	colorOptions := make([]huh.Option[string], len(store.NoteColors))
	for i, c := range store.NoteColors {
		colorOptions[i] = huh.NewOption(noteColorStyle(c).Render("●")+" "+c, c)
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Validate(nonEmpty).Value(p.formTitle),
			huh.NewText().Title("Content").Lines(5).Value(p.formContent),
			huh.NewSelect[string]().Title("Category").Options(categoryOptions()...).Value(p.formCategory),
			huh.NewInput().Title("Linked task").Value(p.formTask),
			huh.NewSelect[string]().Title("Colour").Options(colorOptions...).Value(p.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p notesModel) showSearchForm() (notesModel, tea.Cmd) {
	*p.formSearch = p.search
	p.formType = noteFormSearch
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Search notes").Placeholder("title, content or task").Value(p.formSearch),
		),
	).WithShowHelp(true)
	p.formActive = true
	return p, p.form.Init()
}

func (p notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State != huh.StateCompleted {
		return p, cmd
	}

	p.formActive = false
	switch p.formType {
	case noteFormSearch:
		p.search = strings.TrimSpace(*p.formSearch)
		p.cursor = 0
		return p, p.refresh()
	case noteFormNew:
		n := p.formNote()
		return p, p.mutate(func() error {
			_, err := p.store.CreateNote(n)
			return err
		}, "Note created")
	case noteFormEdit:
		n := p.formNote()
		n.ID = p.editingID
		if old, ok := p.selected(); ok && old.ID == n.ID {
			n.Pinned = old.Pinned
		}
		return p, p.mutate(func() error { return p.store.UpdateNote(n) }, "Note saved")
	}
	return p, nil
}

func (p notesModel) formNote() store.Note {
	return store.Note{
		Title:      strings.TrimSpace(*p.formTitle),
		Content:    *p.formContent,
		Category:   store.Category(*p.formCategory),
		LinkedTask: strings.TrimSpace(*p.formTask),
		ColorTag:   *p.formColor,
	}
}

func (p notesModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Note")
		switch p.formType {
		case noteFormEdit:
			title = titleStyle.Render("Edit Note")
		case noteFormSearch:
			title = titleStyle.Render("Search")
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()))
	}

	header := titleStyle.Render("Notes") + "  " + mutedStyle.Render(p.describeFilter())

	if len(p.notes) == 0 {
		hint := "No notes yet. Press n to create one."
		if p.search != "" || p.filterIdx >= 0 {
			hint = "No notes match. esc clears the search, f changes category."
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render(hint)))
	}

	listWidth := max(30, w/2)
	var rows []string
	for i, n := range p.notes {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		pin := " "
		if n.Pinned {
			pin = "📌"
		}
		dot := noteColorStyle(n.ColorTag).Render("●")
		rows = append(rows, fmt.Sprintf("%s%s %s %s %s", cursor, pin, dot, style.Render(truncate(n.Title, listWidth-16)),
			mutedStyle.Render(humanize.Time(n.UpdatedAt))))
	}
	list := lipgloss.NewStyle().Width(listWidth).Render(strings.Join(rows, "\n"))
	detail := lipgloss.NewStyle().Width(max(20, w-listWidth-6)).Render(p.renderDetail())

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail)
	controls := mutedStyle.Render("  n: new  e: edit  d: delete  p: pin  c: colour  /: search  f: category  o: sort")
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", controls))
}

func (p notesModel) renderDetail() string {
	n, ok := p.selected()
	if !ok {
		return ""
	}
	meta := fmt.Sprintf("%s %s", n.Category.Icon(), n.Category)
	if n.LinkedTask != "" {
		meta += "  ·  " + n.LinkedTask
	}
	content := n.Content
	if strings.TrimSpace(content) == "" {
		content = mutedStyle.Render("(empty)")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		noteColorStyle(n.ColorTag).Bold(true).Render(n.Title),
		mutedStyle.Render(meta),
		mutedStyle.Render("created "+n.CreatedAt.Local().Format("Jan 2, 15:04")+" · edited "+humanize.Time(n.UpdatedAt)),
		"",
		content,
	)
}

func (p notesModel) describeFilter() string {
	parts := []string{"all categories"}
	if p.filterIdx >= 0 {
		parts[0] = string(store.Categories[p.filterIdx])
	}
	if p.search != "" {
		parts = append(parts, fmt.Sprintf("matching %q", p.search))
	}
	if p.oldestFirst {
		parts = append(parts, "oldest first")
	} else {
		parts = append(parts, "newest first")
	}
	return strings.Join(parts, " · ")
}

func nextColor(current string) string {
	for i, c := range store.NoteColors {
		if c == current {
			return store.NoteColors[(i+1)%len(store.NoteColors)]
		}
	}
	return store.NoteColors[0]
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return store.ErrEmptyTitle
	}
	return nil
}

func truncate(s string, n int) string {
	if n < 1 {
		n = 1
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
