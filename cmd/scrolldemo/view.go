package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nrfta/infinite-paging-go"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	rowStyle      = lipgloss.NewStyle().PaddingLeft(1)
	skeletonStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("240"))
	footerStyle   = lipgloss.NewStyle().PaddingLeft(1).Italic(true).Foreground(lipgloss.Color("244"))
	errorStyle    = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("9"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const endOfDataText = "No more results"

// View renders the TUI
func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("/ search • g top • l load more • r reload • q quit"))
	return b.String()
}

func (m model) header() string {
	if m.input.Focused() {
		return m.input.View()
	}

	query := m.ctrl.Query()
	if query == "" {
		query = defaultTitle
	}
	return titleStyle.Render(fmt.Sprintf("Infinite scroll: %s", query))
}

func (m model) statusBar() string {
	parts := []string{
		fmt.Sprintf("%d items", len(m.state.Items)),
		fmt.Sprintf("page %d", m.state.PageIndex),
		fmt.Sprintf("size %d", m.state.PageSize),
		fmt.Sprintf("epoch %d", m.state.Epoch),
		m.state.Status.String(),
	}
	if !m.opts.HideScrollbar {
		parts = append(parts, fmt.Sprintf("%3.f%%", m.vp.ScrollPercent()*100))
	}
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}
	return statusStyle.Render(strings.Join(parts, " • "))
}

// renderContent lays out the accumulated rows followed by the loading
// placeholders, the end-of-data marker or the retry prompt.
func renderContent(state paging.State[string], width int) string {
	lines := make([]string, 0, len(state.Items)+state.SkeletonCount+1)
	for _, item := range state.Items {
		lines = append(lines, rowStyle.Render(item))
	}

	switch {
	case state.ShowLoading():
		bar := strings.Repeat("░", skeletonWidth(width))
		for i := 0; i < state.SkeletonCount; i++ {
			lines = append(lines, skeletonStyle.Render(bar))
		}

	case state.ShowEndOfData():
		lines = append(lines, footerStyle.Render(endOfDataText))

	case state.ShowError():
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Failed to load: %v (press l to retry)", state.Err)))
	}

	return strings.Join(lines, "\n")
}

func skeletonWidth(width int) int {
	if width <= 0 {
		return 24
	}
	if w := width / 3; w > 0 {
		return w
	}
	return 1
}
