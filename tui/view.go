package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"aura/lifecycle"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateLogin, StateBooking, StatePayment, StateReview:
		content = m.form.View()
	case StateReservations:
		content = m.viewReservations()
	}

	var status []string
	if m.loading {
		status = append(status, m.spin.View()+" loading…")
	}
	if m.errText != "" {
		status = append(status, errStyle.Render(m.errText))
	}
	if m.notice != "" {
		status = append(status, hintStyle.Render(m.notice))
	}

	sections := []string{content}
	if len(status) > 0 {
		sections = append(sections, strings.Join(status, "  "))
	}
	if m.state == StateReservations {
		sections = append(sections, m.help.View(m.keys))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewReservations() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.listTitle()))
	b.WriteString("\n\n")

	if len(m.reservations) == 0 && !m.loading {
		b.WriteString(hintStyle.Render("nothing here yet"))
		return b.String()
	}

	for i, res := range m.reservations {
		line := fmt.Sprintf("#%-4d %-24s %s %s  %s",
			res.ID,
			truncate(res.Service.Name, 24),
			res.ServiceDate,
			statusStyle.Render(string(res.Status)),
			priceStyle.Render(fmt.Sprintf("S/ %.2f", m.prices[res.ID])),
		)
		if i == m.cursor {
			line = selectedRowStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if actions := m.actions(); len(actions) > 0 {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("available: " + joinActions(actions)))
	}
	return b.String()
}

func joinActions(actions []lifecycle.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
