package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/tasks"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// View renders the tab bar, the current tab and its help line.
func (m *Model) View() string {
	var body string
	switch m.ctrl.Tab {
	case tasks.DashboardTab:
		body = m.renderDashboard()
	case tasks.LogLiftTab:
		body = m.renderLogForm()
	case tasks.UploadVideoTab:
		body = m.renderUpload()
	case tasks.HistoryTab:
		body = m.renderHistory()
	}

	helpView := m.help.ShortHelpView(m.keys.helpFor(m.ctrl.Tab))
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", styles.title.Render("Lift Logger"), m.renderTabs(), body, helpView)
}

func (m *Model) renderTabs() string {
	tabs := make([]string, len(tasks.Tabs))
	for i, t := range tasks.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.ctrl.Tab {
			tabs[i] = styles.activeTab.Render(label)
		} else {
			tabs[i] = styles.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderFlow renders a flow's message in the color matching its status.
func renderFlow(f tasks.Flow) string {
	if f.Message == "" {
		return ""
	}
	switch f.Status {
	case tasks.Succeeded:
		return styles.ok.Render("✓ " + f.Message)
	case tasks.Failed:
		return styles.err.Render("✗ " + f.Message)
	default:
		return f.Message
	}
}

func (m *Model) renderDashboard() string {
	if m.ctrl.History.Loading() && m.ctrl.Lifts.Count() == 0 {
		return fmt.Sprintf("%s Loading lifts...", m.spin.View())
	}

	s := m.ctrl.Summary()
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("Total Lifts", humanize.Comma(int64(s.Count))),
		renderCard("This Month", humanize.Comma(int64(s.ThisMonth))),
		renderCard("Max Weight", humanize.Ftoa(s.MaxWeight)+" kg"),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")

	if len(s.Best) > 0 {
		b.WriteString(styles.focused.Render("Personal Bests"))
		b.WriteString("\n")
		for _, best := range s.Best {
			b.WriteString(fmt.Sprintf("  %s %s kg x %d (%s)\n", styles.label.Render(best.LiftType.Label()), best.WeightString(), best.Reps, best.Date))
		}
		b.WriteString("\n")
	}

	if latest, ok := m.ctrl.Lifts.Latest(); ok {
		when := latest.Date
		if day, err := latest.Day(); err == nil {
			when = fmt.Sprintf("%s (%s)", latest.Date, relativeDay(day, m.ctrl.Now()))
		}
		b.WriteString(styles.help.Render(fmt.Sprintf("Last lift: %s on %s", latest.LiftType.Label(), when)))
	} else {
		b.WriteString(styles.help.Render("No lifts logged yet. Head to Log Lift to add your first one."))
	}

	if m.ctrl.History.Loading() {
		b.WriteString("\n" + m.spin.View() + " Refreshing...")
	}
	return b.String()
}

func renderCard(label, value string) string {
	return styles.card.Render(fmt.Sprintf("%s\n%s", styles.help.Render(label), styles.stat.Render(value)))
}

func (m *Model) renderLogForm() string {
	var b strings.Builder

	liftType := models.LiftType(m.ctrl.Form.LiftType).Label()
	selector := fmt.Sprintf("‹ %s ›", liftType)
	if m.focus == focusLiftType {
		selector = styles.focused.Render(selector)
	}

	rows := []struct {
		label string
		focus int
		value string
	}{
		{"Lift", focusLiftType, selector},
		{"Weight", focusWeight, m.weight.View() + " kg"},
		{"Reps", focusReps, m.reps.View()},
		{"Date", focusDate, m.date.View()},
	}
	for _, r := range rows {
		cursor := "  "
		if r.focus == m.focus {
			cursor = styles.focused.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, styles.label.Render(r.label), r.value))
	}
	b.WriteString("\n")

	if m.ctrl.Log.Loading() {
		b.WriteString(m.spin.View() + " Logging...")
	} else {
		b.WriteString(styles.focused.Render("[ Log Lift ]"))
	}

	if msg := renderFlow(m.ctrl.Log); msg != "" {
		b.WriteString("\n\n" + msg)
	}
	return b.String()
}

func (m *Model) renderUpload() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", styles.label.Render("Video"), m.file.View()))
	b.WriteString(styles.help.Render("  Accepted: MP4, AVI, MOV, WMV, WEBM"))
	b.WriteString("\n\n")

	if sel := m.ctrl.Selection; sel != nil {
		b.WriteString(fmt.Sprintf("Selected: %s (%s, %s)\n", styles.ok.Render(sel.Name), humanize.Bytes(uint64(max(sel.Size, 0))), sel.MIMEType))
	} else {
		b.WriteString(styles.help.Render("No file selected"))
		b.WriteString("\n")
	}

	check := "[ ]"
	if m.ctrl.EnableAI {
		check = "[x]"
	}
	b.WriteString(fmt.Sprintf("%s Enable AI analysis\n\n", check))

	if m.ctrl.Upload.Loading() {
		b.WriteString(m.spin.View() + " Uploading...")
	} else {
		b.WriteString(styles.focused.Render("[ Upload ]"))
	}

	if msg := renderFlow(m.ctrl.Upload); msg != "" {
		b.WriteString("\n\n" + msg)
	}
	return b.String()
}

func (m *Model) renderHistory() string {
	if m.ctrl.Lifts.Count() == 0 {
		if m.ctrl.History.Loading() {
			return fmt.Sprintf("%s Loading lifts...", m.spin.View())
		}
		return styles.help.Render("No lifts logged yet.")
	}

	footer := styles.help.Render(english.Plural(m.ctrl.Lifts.Count(), "lift", ""))
	if m.ctrl.History.Loading() {
		footer = m.spin.View() + " Refreshing..."
	}
	return fmt.Sprintf("%s\n%s", m.table.View(), footer)
}

// relativeDay describes day relative to now at day granularity.
func relativeDay(day, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	diff := int(today.Sub(day).Hours() / 24)
	switch {
	case diff == 0:
		return "today"
	case diff == 1:
		return "yesterday"
	case diff > 1 && diff < 7:
		return fmt.Sprintf("%d days ago", diff)
	default:
		return humanize.RelTime(day, today, "ago", "from now")
	}
}
