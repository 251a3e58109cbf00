package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/liliang-cn/docchat/internal/domain"
)

// View renders the two-pane layout: catalog on the left, transcript and
// input on the right, status line at the bottom. Overlays replace the
// whole frame with a centered box.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	if m.overlay != overlayNone {
		return m.viewOverlay()
	}

	header := m.th.Header.Render(" docchat ") +
		m.th.Muted.Render(" — chat with your documents")

	sidebarWidth := 30
	if m.width < 80 {
		sidebarWidth = m.width / 3
	}
	bodyHeight := m.height - 4

	sidebar := m.viewCatalog(sidebarWidth, bodyHeight)
	main := m.viewConversation(m.width-sidebarWidth-4, bodyHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.viewStatusLine())
}

func (m Model) viewCatalog(width, height int) string {
	var b strings.Builder

	b.WriteString(m.th.Accent.Render("Documents"))
	b.WriteString("\n\n")

	docs := m.deps.Catalog.Documents()
	active, hasActive := m.deps.Session.Active()

	if m.refreshing {
		b.WriteString(m.th.Muted.Render("refreshing..."))
		b.WriteString("\n")
	} else if len(docs) == 0 {
		b.WriteString(m.th.Muted.Render("no documents yet"))
		b.WriteString("\n")
		b.WriteString(m.th.Muted.Render("press u to upload"))
		b.WriteString("\n")
	}

	for i, doc := range docs {
		cursor := "  "
		if i == m.catalogIndex && m.focus == focusCatalog {
			cursor = m.th.Accent.Render("> ")
		}
		name := doc.Name
		if hasActive && doc.Name == active {
			name = m.th.Selected.Render(name + " *")
		}
		b.WriteString(cursor + name + "\n")
	}

	if m.uploading {
		b.WriteString("\n")
		b.WriteString(m.th.Muted.Render("uploading..."))
	}

	style := m.th.Panel
	if m.focus == focusCatalog {
		style = m.th.PanelFocus
	}
	return style.Width(width).Height(height).Render(b.String())
}

func (m Model) viewConversation(width, height int) string {
	var b strings.Builder

	active, hasActive := m.deps.Session.Active()
	if !hasActive {
		b.WriteString(m.th.Muted.Render("Select a document to start chatting."))
	} else {
		b.WriteString(m.th.Accent.Render(active))
		b.WriteString("\n\n")

		transcript := m.deps.Session.Transcript()
		lines := height - 6
		start := 0
		if len(transcript) > 0 {
			rendered := 0
			for i := len(transcript) - 1; i >= 0; i-- {
				rendered += strings.Count(transcript[i].Content, "\n") + 2
				if rendered > lines {
					start = i + 1
					break
				}
			}
		}

		for _, msg := range transcript[start:] {
			b.WriteString(m.renderMessage(msg, width-4))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	prompt := "> "
	if m.deps.Dispatcher.InFlight() {
		prompt = m.th.Muted.Render("thinking... ")
	}
	b.WriteString(prompt + m.th.Input.Render(m.input))
	if m.focus == focusInput {
		b.WriteString(m.th.Accent.Render("_"))
	}

	style := m.th.Panel
	if m.focus == focusInput {
		style = m.th.PanelFocus
	}
	return style.Width(width).Height(height).Render(b.String())
}

func (m Model) renderMessage(msg domain.Message, width int) string {
	label := m.th.Assistant.Render("assistant")
	if msg.Role == domain.RoleUser {
		label = m.th.User.Render("you")
	}
	content := lipgloss.NewStyle().Width(width).Render(msg.Content)
	return label + "\n" + content
}

func (m Model) viewStatusLine() string {
	if alert, ok := m.deps.Surface.Current(); ok {
		return m.th.Danger.Render(fmt.Sprintf(" %s error: %s ", alert.Source, alert.Message)) +
			m.th.Muted.Render(" (esc to dismiss)")
	}

	hints := "tab: switch pane · enter: select/send · u: upload · d: delete · r: refresh · esc: quit"
	if !m.deps.Credential.Present() {
		hints = "no credential saved — upload and query will prompt for one · " + hints
	}
	return m.th.Muted.Render(" " + hints)
}

func (m Model) viewOverlay() string {
	var box string

	switch m.overlay {
	case overlayCredential:
		masked := strings.Repeat("*", len([]rune(m.credInput)))
		box = m.th.OverlayBox.Render(
			m.th.Header.Render("Backend credential") + "\n\n" +
				"Paste your API key. It is stored locally and sent\n" +
				"only to the backend's upload and query endpoints.\n\n" +
				"> " + masked + "\n\n" +
				m.th.Muted.Render("enter: save · esc: cancel"))

	case overlayUpload:
		notice := ""
		if m.uploadNotice != "" {
			notice = "\n" + m.th.Alert.Render(m.uploadNotice)
		}
		box = m.th.OverlayBox.Render(
			m.th.Header.Render("Upload document") + "\n\n" +
				"Path to file:\n" +
				"> " + m.th.Input.Render(m.uploadPath) + notice + "\n\n" +
				m.th.Muted.Render("enter: upload · esc: cancel"))

	case overlayDeleteConfirm:
		box = m.th.OverlayBox.Render(
			m.th.Header.Render("Delete document") + "\n\n" +
				"Delete " + m.th.Danger.Render(m.deleteName) + " and its vectors?\n\n" +
				m.th.Muted.Render("y/enter: delete · n/esc: keep"))

	case overlayQuitConfirm:
		box = m.th.OverlayBox.Render(
			m.th.Header.Render("Quit docchat?") + "\n\n" +
				m.th.Muted.Render("y/enter: quit · n/esc: stay"))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
