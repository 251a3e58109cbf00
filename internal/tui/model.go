package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/liliang-cn/docchat/internal/catalog"
	"github.com/liliang-cn/docchat/internal/credential"
	"github.com/liliang-cn/docchat/internal/dispatch"
	"github.com/liliang-cn/docchat/internal/domain"
	"github.com/liliang-cn/docchat/internal/session"
	"github.com/liliang-cn/docchat/internal/status"
)

type focus int

const (
	focusCatalog focus = iota
	focusInput
)

type overlay int

const (
	overlayNone overlay = iota
	overlayCredential
	overlayUpload
	overlayDeleteConfirm
	overlayQuitConfirm
)

// Deps wires the orchestration core into the view. The model never
// mutates transcript or catalog state directly; everything goes through
// the core's own operations.
type Deps struct {
	Catalog    *catalog.Catalog
	Session    *session.Session
	Dispatcher *dispatch.Dispatcher
	Credential *credential.Store
	Surface    *status.Surface
	Logger     *zap.Logger
}

// Model is the bubbletea model for the client.
type Model struct {
	deps Deps
	th   theme

	width  int
	height int

	focus   focus
	overlay overlay

	catalogIndex int

	input      string
	credInput  string
	uploadPath string
	deleteName string

	// uploadNotice holds a validation hint shown inside the upload
	// overlay (bad path, filtered extension). Not an Alert: nothing was
	// attempted remotely yet.
	uploadNotice string

	refreshing bool
	uploading  bool
}

// New creates the model.
func New(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return Model{
		deps:  deps,
		th:    defaultTheme(),
		focus: focusCatalog,
	}
}

// Init kicks off the startup catalog fetch.
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

// Update routes messages through overlay handling first, then the
// focused pane.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case catalogRefreshedMsg:
		m.refreshing = false
		m.clampCatalogIndex()
		return m, nil

	case uploadFinishedMsg:
		m.uploading = false
		if msg.err == nil {
			m.clampCatalogIndex()
		}
		return m, nil

	case deleteFinishedMsg:
		m.clampCatalogIndex()
		return m, nil

	case queryFinishedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.overlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	switch msg.Type {
	case tea.KeyTab:
		if m.focus == focusCatalog {
			m.focus = focusInput
		} else {
			m.focus = focusCatalog
		}
		return m, nil

	case tea.KeyEscape:
		if _, ok := m.deps.Surface.Current(); ok {
			m.deps.Surface.Dismiss()
			return m, nil
		}
		m.overlay = overlayQuitConfirm
		return m, nil
	}

	if m.focus == focusCatalog {
		return m.handleCatalogKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	docs := m.deps.Catalog.Documents()

	switch msg.Type {
	case tea.KeyUp:
		if m.catalogIndex > 0 {
			m.catalogIndex--
		}
		return m, nil

	case tea.KeyDown:
		if m.catalogIndex < len(docs)-1 {
			m.catalogIndex++
		}
		return m, nil

	case tea.KeyEnter:
		if m.catalogIndex < len(docs) {
			m.deps.Session.Select(docs[m.catalogIndex].Name)
			if _, ok := m.deps.Session.Active(); ok {
				m.focus = focusInput
			}
		}
		return m, nil

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "r":
			m.refreshing = true
			return m, m.refreshCmd()
		case "u":
			m.overlay = overlayUpload
			m.uploadPath = ""
			m.uploadNotice = ""
			return m, nil
		case "d":
			if m.catalogIndex < len(docs) {
				m.deleteName = docs[m.catalogIndex].Name
				m.overlay = overlayDeleteConfirm
			}
			return m, nil
		}
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil

	case tea.KeySpace:
		m.input += " "
		return m, nil

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyEnter:
		return m.submitQuery()
	}

	return m, nil
}

// submitQuery runs the dispatcher's admission path synchronously, so the
// optimistic user message is on screen before the network call starts.
func (m Model) submitQuery() (tea.Model, tea.Cmd) {
	pending, err := m.deps.Dispatcher.Begin(m.input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCredentialRequired):
			// Solicit entry instead of sending anything.
			m.credInput = ""
			m.overlay = overlayCredential
		case errors.Is(err, domain.ErrQueryInFlight),
			errors.Is(err, domain.ErrEmptyQuery),
			errors.Is(err, domain.ErrNoActiveDocument):
			// Rejected submissions are silent no-ops.
		}
		return m, nil
	}

	m.input = ""
	return m, m.queryCmd(pending)
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		m.overlay = overlayNone
		return m, nil
	}

	switch m.overlay {
	case overlayCredential:
		switch msg.Type {
		case tea.KeyRunes:
			m.credInput += string(msg.Runes)
		case tea.KeyBackspace:
			if runes := []rune(m.credInput); len(runes) > 0 {
				m.credInput = string(runes[:len(runes)-1])
			}
		case tea.KeyEnter:
			if strings.TrimSpace(m.credInput) != "" {
				if err := m.deps.Credential.Save(m.credInput); err != nil {
					m.deps.Logger.Warn("failed to save credential", zap.Error(err))
				}
			}
			m.credInput = ""
			m.overlay = overlayNone
		}
		return m, nil

	case overlayUpload:
		switch msg.Type {
		case tea.KeyRunes:
			m.uploadPath += string(msg.Runes)
			m.uploadNotice = ""
		case tea.KeySpace:
			m.uploadPath += " "
		case tea.KeyBackspace:
			if runes := []rune(m.uploadPath); len(runes) > 0 {
				m.uploadPath = string(runes[:len(runes)-1])
			}
		case tea.KeyEnter:
			return m.beginUpload()
		}
		return m, nil

	case overlayDeleteConfirm:
		if msg.Type == tea.KeyEnter || (msg.Type == tea.KeyRunes && string(msg.Runes) == "y") {
			name := m.deleteName
			m.overlay = overlayNone
			m.deleteName = ""
			return m, m.deleteCmd(name)
		}
		if msg.Type == tea.KeyRunes && string(msg.Runes) == "n" {
			m.overlay = overlayNone
			m.deleteName = ""
		}
		return m, nil

	case overlayQuitConfirm:
		if msg.Type == tea.KeyEnter || (msg.Type == tea.KeyRunes && string(msg.Runes) == "y") {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyRunes && string(msg.Runes) == "n" {
			m.overlay = overlayNone
		}
		return m, nil
	}

	return m, nil
}

func (m Model) beginUpload() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.uploadPath)
	if path == "" {
		return m, nil
	}

	if !catalog.IsAllowed(path) {
		m.uploadNotice = "unsupported file type (allowed: pdf txt md docx xlsx csv png jpg webp)"
		return m, nil
	}
	if _, err := os.Stat(path); err != nil {
		m.uploadNotice = "file not found: " + path
		return m, nil
	}

	if !m.deps.Credential.Present() {
		// Solicit the credential first; the user can retry the upload
		// once it is saved.
		m.credInput = ""
		m.overlay = overlayCredential
		return m, nil
	}

	m.overlay = overlayNone
	m.uploadPath = ""
	m.uploading = true
	return m, m.uploadCmd(path)
}

func (m *Model) clampCatalogIndex() {
	docs := m.deps.Catalog.Documents()
	if m.catalogIndex >= len(docs) {
		m.catalogIndex = len(docs) - 1
	}
	if m.catalogIndex < 0 {
		m.catalogIndex = 0
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.deps.Catalog.Refresh(context.Background())
		return catalogRefreshedMsg{err: err}
	}
}

func (m Model) uploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			m.deps.Surface.Raise(domain.Alert{Source: domain.AlertUpload, Message: err.Error()})
			return uploadFinishedMsg{filename: path, err: err}
		}
		defer f.Close()

		name := filepath.Base(path)
		err = m.deps.Catalog.Upload(context.Background(), name, f)
		return uploadFinishedMsg{filename: name, err: err}
	}
}

func (m Model) deleteCmd(name string) tea.Cmd {
	return func() tea.Msg {
		err := m.deps.Catalog.Delete(context.Background(), name)
		return deleteFinishedMsg{name: name, err: err}
	}
}

func (m Model) queryCmd(pending *dispatch.Pending) tea.Cmd {
	return func() tea.Msg {
		result := m.deps.Dispatcher.Resolve(context.Background(), pending)
		return queryFinishedMsg{result: result}
	}
}
