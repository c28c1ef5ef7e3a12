package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/agenda/internal/database/repository"
	"github.com/jask/agenda/internal/service"
)

const (
	defaultToastDuration = 1500 * time.Millisecond
	defaultTitle         = "Contact Book"
	welcomeText          = "Welcome to your contact book"

	// rows used by everything around the table: title, search box, count, toast, help
	chromeHeight = 10
	minTableRows = 3
)

// App is the contact list view.
type App struct {
	ctx      context.Context
	contacts *service.ContactController
	logger   *slog.Logger
	title    string

	keys       listKeys
	searchKeys searchKeys
	help       help.Model
	table      table.Model
	search     textinput.Model
	form       *contactForm
	toasts     toastQueue

	state   appState
	all     []repository.Contact
	visible []repository.Contact
	loaded  bool
	width   int
	height  int
}

// Options tunes presentation.
type Options struct {
	Title         string
	ToastDuration time.Duration
}

type appState string

const (
	stateIdle      appState = "idle"
	stateFiltering appState = "filtering"
	stateAdding    appState = "adding"
)

func New(ctx context.Context, contacts *service.ContactController, logger *slog.Logger, opts Options) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}

	t := table.New(
		table.WithColumns(columnsFor(0)),
		table.WithFocused(true),
		table.WithHeight(minTableRows*4),
		table.WithKeyMap(tableKeyMap()),
		table.WithStyles(tableStyles()),
	)

	search := newInput("🔍 ", "search contacts...")

	return &App{
		ctx:        ctx,
		contacts:   contacts,
		logger:     logger,
		title:      opts.Title,
		keys:       ListKeyMap(),
		searchKeys: SearchKeyMap(),
		help:       help.New(),
		table:      t,
		search:     search,
		toasts:     newToastQueue(opts.ToastDuration),
		state:      stateIdle,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadContacts(), a.notify(welcomeText, toastInfo))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.resize()
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		switch a.state {
		case stateAdding:
			return a.handleFormKey(m)
		case stateFiltering:
			return a.handleSearchKey(m)
		default:
			return a.handleListKey(m)
		}
	case contactsMsg:
		a.setContacts(m)
	case contactAddedMsg:
		a.setContacts(m.contacts)
		cmds := []tea.Cmd{a.notify("Contact added", toastSuccess)}
		if m.similar != nil {
			cmds = append(cmds, a.notify("Similar to existing contact: "+m.similar.Name, toastWarn))
		}
		return a, tea.Batch(cmds...)
	case contactDeletedMsg:
		a.setContacts(m.contacts)
		return a, a.notify("Contact deleted", toastSuccess)
	case errMsg:
		a.logger.Error("operation failed", "op", m.op, "err", m.err)
		return a, a.notify("Operation failed: "+m.err.Error(), toastError)
	case toastExpiredMsg:
		return a, a.toasts.expire(m.id)
	}
	return a, nil
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Search):
		a.state = stateFiltering
		a.table.Blur()
		a.search.Focus()
		return a, nil
	case key.Matches(m, a.keys.Add):
		a.form = newContactForm()
		a.state = stateAdding
		a.table.Blur()
		return a, nil
	case key.Matches(m, a.keys.Delete):
		return a, a.deleteSelected()
	case key.Matches(m, a.keys.Reload):
		return a, a.loadContacts()
	case key.Matches(m, a.keys.Clear):
		if a.search.Value() != "" {
			a.search.SetValue("")
			a.applyFilter()
		}
		return a, nil
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.resize()
		return a, nil
	}
	var cmd tea.Cmd
	a.table, cmd = a.table.Update(m)
	return a, cmd
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.searchKeys.Accept):
		a.leaveSearch()
		return a, nil
	case key.Matches(m, a.searchKeys.Cancel):
		a.search.SetValue("")
		a.applyFilter()
		a.leaveSearch()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.applyFilter()
	return a, cmd
}

func (a *App) leaveSearch() {
	a.search.Blur()
	a.table.Focus()
	a.state = stateIdle
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		a.state = stateIdle
		return a, nil
	}
	action, cmd := a.form.update(m)
	switch action {
	case formCancelled:
		a.closeForm()
		return a, nil
	case formSubmitted:
		in := a.form.value()
		if err := in.Validate(); err != nil {
			a.form.focusBlank(err)
			return a, a.notify(validationText(err), toastWarn)
		}
		a.closeForm()
		return a, a.createCmd(in)
	}
	return a, cmd
}

func (a *App) closeForm() {
	a.form = nil
	a.state = stateIdle
	a.table.Focus()
}

func (a *App) deleteSelected() tea.Cmd {
	c, ok := a.selected()
	if !ok {
		return a.notify("Select a contact to delete", toastWarn)
	}
	return a.deleteCmd(c.ID)
}

// selected returns the contact under the table cursor, if the filtered view has one.
func (a *App) selected() (repository.Contact, bool) {
	i := a.table.Cursor()
	if i < 0 || i >= len(a.visible) {
		return repository.Contact{}, false
	}
	return a.visible[i], true
}

// setContacts replaces the full snapshot and re-applies the current search.
func (a *App) setContacts(list []repository.Contact) {
	a.all = list
	a.loaded = true
	a.applyFilter()
}

func (a *App) applyFilter() {
	a.visible = FilterContacts(a.all, a.search.Value())
	a.table.SetRows(rowsFor(a.visible))
	switch {
	case len(a.visible) == 0:
		a.table.SetCursor(0)
	case a.table.Cursor() >= len(a.visible):
		a.table.SetCursor(len(a.visible) - 1)
	case a.table.Cursor() < 0:
		a.table.SetCursor(0)
	}
}

func (a *App) notify(text string, kind toastKind) tea.Cmd {
	return a.toasts.push(text, kind)
}

func (a *App) resize() {
	if a.width > 0 {
		a.table.SetColumns(columnsFor(a.width))
		a.table.SetWidth(a.width)
		a.help.Width = a.width
		a.search.Width = max(a.width-8, 10)
	}
	if a.height > 0 {
		extra := 0
		if a.help.ShowAll {
			extra = 3
		}
		a.table.SetHeight(max(a.height-chromeHeight-extra, minTableRows))
	}
}

// columnsFor splits width between the columns; name and email take the slack.
func columnsFor(width int) []table.Column {
	id, name, phone, email := shortIDLen+2, 22, 16, 28
	if slack := width - (id + name + phone + email) - 8; slack > 0 {
		name += slack / 2
		email += slack - slack/2
	}
	return []table.Column{
		{Title: "ID", Width: id},
		{Title: "Name", Width: name},
		{Title: "Phone", Width: phone},
		{Title: "Email", Width: email},
	}
}

// commands

func (a *App) loadContacts() tea.Cmd {
	ctx, ctrl := a.ctx, a.contacts
	return func() tea.Msg {
		list, err := ctrl.FindAll(ctx)
		if err != nil {
			return errMsg{op: "load", err: err}
		}
		return contactsMsg(list)
	}
}

// createCmd stores in and reloads the full list in the same command, so the
// reload always observes the write.
func (a *App) createCmd(in service.NewContact) tea.Cmd {
	ctx, ctrl, logger := a.ctx, a.contacts, a.logger
	return func() tea.Msg {
		saved, err := ctrl.Create(ctx, in)
		if err != nil {
			return errMsg{op: "add", err: err}
		}
		similar, err := ctrl.FindSimilar(ctx, saved.Name, saved.ID)
		if err != nil {
			logger.Debug("similar contact lookup failed", "id", saved.ID, "err", err)
		}
		list, err := ctrl.FindAll(ctx)
		if err != nil {
			return errMsg{op: "reload", err: err}
		}
		return contactAddedMsg{contact: saved, similar: similar, contacts: list}
	}
}

func (a *App) deleteCmd(id string) tea.Cmd {
	ctx, ctrl := a.ctx, a.contacts
	return func() tea.Msg {
		if err := ctrl.Delete(ctx, id); err != nil {
			return errMsg{op: "delete", err: err}
		}
		list, err := ctrl.FindAll(ctx)
		if err != nil {
			return errMsg{op: "reload", err: err}
		}
		return contactDeletedMsg{id: id, contacts: list}
	}
}

// messages
type contactsMsg []repository.Contact

type contactAddedMsg struct {
	contact  repository.Contact
	similar  *repository.Contact
	contacts []repository.Contact
}

type contactDeletedMsg struct {
	id       string
	contacts []repository.Contact
}

type errMsg struct {
	op  string
	err error
}

func validationText(err error) string {
	if errors.Is(err, service.ErrBlankField) {
		field := strings.TrimSuffix(err.Error(), ": "+service.ErrBlankField.Error())
		if field != "" {
			return strings.ToUpper(field[:1]) + field[1:] + " is required"
		}
	}
	return "All fields are required"
}

// view

func (a *App) View() string {
	sections := []string{
		titleStyle.Render("📒 " + a.title),
		searchStyle.Render(a.search.View()),
	}

	switch {
	case !a.loaded:
		sections = append(sections, emptyStyle.Render("Loading contacts..."))
	case len(a.all) == 0:
		sections = append(sections, emptyStyle.Render("No contacts yet. Press a to add one."))
	case len(a.visible) == 0:
		sections = append(sections, emptyStyle.Render(fmt.Sprintf("No matching contacts for %q.", strings.TrimSpace(a.search.Value()))))
	default:
		sections = append(sections, a.table.View())
	}

	sections = append(sections, countStyle.Render(a.countLine()))

	if a.form != nil {
		sections = append(sections, a.form.view())
	}
	if t, ok := a.toasts.current(); ok {
		sections = append(sections, toastStyle(t.kind).Render(t.text))
	}
	sections = append(sections, a.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) countLine() string {
	noun := "contacts"
	if len(a.all) == 1 {
		noun = "contact"
	}
	if strings.TrimSpace(a.search.Value()) == "" {
		return fmt.Sprintf("%d %s", len(a.all), noun)
	}
	return fmt.Sprintf("%d of %d %s", len(a.visible), len(a.all), noun)
}

func (a *App) helpView() string {
	switch a.state {
	case stateAdding:
		if a.form != nil {
			return a.help.View(a.form.keys)
		}
	case stateFiltering:
		return a.help.View(a.searchKeys)
	}
	return a.help.View(a.keys)
}
