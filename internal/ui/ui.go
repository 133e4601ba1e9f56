package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harish2111/freshchat-migrations/internal/migrate"
	"github.com/harish2111/freshchat-migrations/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RosterListView ViewState = iota
	ConfirmView
	MigrateView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *migrate.Engine
	roster       []models.SourceUser
	onComplete   func(*migrate.RunResult) error
	width        int
	height       int
	rosterList   list.Model
	progressChan chan migrate.ProgressUpdate
	doneChan     chan runCompleteMsg
	progress     migrate.ProgressUpdate
	result       *migrate.RunResult
	persistErr   error
	err          error
	help         help.Model
	keys         keyMap
}

type progressUpdateMsg migrate.ProgressUpdate

type runCompleteMsg struct {
	result     *migrate.RunResult
	err        error
	persistErr error
}

// NewModel creates a new TUI model with the provided dependencies. onComplete
// runs once after a successful migration, letting the caller persist registry
// rows and the run ledger.
func NewModel(ctx context.Context, roster []models.SourceUser, engine *migrate.Engine, onComplete func(*migrate.RunResult) error) *Model {
	items := make([]list.Item, len(roster))
	for i, user := range roster {
		items[i] = rosterItem{user: user}
	}

	rosterList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	rosterList.Title = fmt.Sprintf("Roster (%d contacts)", len(roster))

	return &Model{
		ctx:        ctx,
		view:       RosterListView,
		engine:     engine,
		roster:     roster,
		onComplete: onComplete,
		rosterList: rosterList,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rosterList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case RosterListView:
			return m.handleRosterListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = migrate.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case runCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.persistErr = msg.persistErr
		m.view = ResultView
		m.progressChan = nil
		m.doneChan = nil
		return m, nil
	}

	if m.view == RosterListView {
		var cmd tea.Cmd
		m.rosterList, cmd = m.rosterList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case RosterListView:
		return m.renderRosterList()
	case ConfirmView:
		return m.renderConfirm()
	case MigrateView:
		return m.renderMigrate()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleRosterListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if len(m.roster) > 0 {
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.rosterList, cmd = m.rosterList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = RosterListView
		return m, nil
	case "y":
		m.view = MigrateView
		return m, m.startMigration()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = RosterListView
		m.result = nil
		m.persistErr = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

// startMigration launches the engine in a goroutine. The goroutine never
// touches the model: progress arrives through progressChan and the final
// outcome through doneChan, so every field write happens inside Update.
func (m *Model) startMigration() tea.Cmd {
	m.progressChan = make(chan migrate.ProgressUpdate, 50)
	m.doneChan = make(chan runCompleteMsg, 1)
	progress := m.progressChan
	done := m.doneChan
	engine, roster, onComplete := m.engine, m.roster, m.onComplete

	go func() {
		result, err := engine.Run(m.ctx, roster, progress)
		var persistErr error
		if err == nil && onComplete != nil {
			persistErr = onComplete(result)
		}
		done <- runCompleteMsg{result: result, err: err, persistErr: persistErr}
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.doneChan
	return func() tea.Msg {
		if progress == nil {
			return nil
		}

		update, ok := <-progress
		if !ok {
			return <-done
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderRosterList() string {
	migrateKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "migrate all"),
	)
	helpKeys := []key.Binding{migrateKey, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.rosterList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Migrate %d contacts to the destination tenant?", len(m.roster)))
	info := "\nEvery contact is resolved or created on the destination,\nthen its conversations are copied over.\n"

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderMigrate() string {
	title := styles.title.Render("Migrating Contacts")

	var phase string
	switch m.progress.Phase {
	case migrate.ResolveUser:
		phase = fmt.Sprintf("Resolving contacts (%d/%d)", m.progress.Step, m.progress.Total)
	case migrate.CreateContact:
		phase = "Creating contact..."
	case migrate.FetchConversations:
		phase = "Fetching conversations..."
	case migrate.MigrateConversation, migrate.ConversationDone:
		phase = fmt.Sprintf("Copying conversations (%d/%d)", m.progress.Step, m.progress.Total)
	case migrate.UserDone:
		phase = fmt.Sprintf("Contacts processed (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Migration failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render("✓ Migration Complete!")
	info := fmt.Sprintf(
		"\nContacts: %d/%d migrated\nConversations copied: %d",
		m.result.UsersMigrated,
		m.result.UsersTotal,
		m.result.ConversationsMigrated,
	)

	var failed string
	if m.result.UsersFailed > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Failed to migrate %d contacts:", m.result.UsersFailed)))
		for _, failure := range m.result.Failures {
			failed += fmt.Sprintf("\n  • %s: %v", failure.Alias, failure.Err)
		}
	}

	var persisted string
	if m.persistErr != nil {
		persisted = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Registry write failed: %v", m.persistErr)))
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s%s\n\n%s", title, info, failed, persisted, helpView)
}
