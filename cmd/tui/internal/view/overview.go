package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/bucket/internal/wallet"
)

// maxHistoryDays caps the days listed under the totals.
const maxHistoryDays = 7

// OverviewModel shows balance, buffer and period totals for one budget
// month at a time.
type OverviewModel struct {
	CommonModel
	walletService *wallet.Service
	sessions      Sessions

	period   wallet.Range
	startDay int
	overview *wallet.Overview
	loading  bool
	err      error
}

func NewOverviewModel(svc *wallet.Service, sessions Sessions, startDay int) OverviewModel {
	return OverviewModel{
		walletService: svc,
		sessions:      sessions,
		startDay:      startDay,
		period:        wallet.CurrentMonth(time.Now(), startDay),
		loading:       true,
	}
}

func (m OverviewModel) Title() string { return "Overview" }

func (m OverviewModel) ShortHelp() string {
	return "Esc: back | ←/→: previous/next month | r: refresh"
}

func (m OverviewModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		m.loading = false
		m.err = msg.err
		m.overview = msg.overview

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.period = wallet.CurrentMonth(m.period.Start.Add(-time.Nanosecond), m.startDay)
		case "right", "l":
			m.period = wallet.CurrentMonth(m.period.End.Add(time.Nanosecond), m.startDay)
		case "r":
		default:
			return m, nil
		}

		m.loading = true

		return m, m.loadCmd()
	}

	return m, nil
}

func (m OverviewModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return style.Render("Loading overview...")
	}

	if m.err != nil {
		return style.Render(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)))
	}

	o := m.overview

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("%s to %s", FormatDate(o.Period.Start), FormatDate(o.Period.End))))

	fmt.Fprintf(&b, "Balance:  %s %s\n", FormatOptional(o.Balance.Total), o.BaseCurrency)
	if len(o.Balance.Unavailable) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(
			fmt.Sprintf("  %d accounts have no exchange rate", len(o.Balance.Unavailable))) + "\n")
	}

	fmt.Fprintf(&b, "Buffer:   %s (diff %s)\n", o.Buffer.StringFixed(2), FormatOptional(o.BufferDiff))
	fmt.Fprintf(&b, "Income:   %s\n", FormatOptional(o.Totals.Income))
	fmt.Fprintf(&b, "Expenses: %s\n\n", FormatOptional(o.Totals.Expense))

	b.WriteString(lipgloss.NewStyle().Underline(true).Render("Accounts") + "\n")

	for _, ab := range o.Accounts {
		excluded := ""
		if !ab.Account.IncludeInBalance {
			excluded = lipgloss.NewStyle().Faint(true).Render(" (excluded)")
		}

		fmt.Fprintf(&b, "  %-20s %12s %s%s\n", ab.Account.Name, ab.Balance.StringFixed(2), ab.Currency, excluded)
	}

	if len(o.History) > 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Underline(true).Render("Recent days") + "\n")
	}

	for i, d := range o.History {
		if i == maxHistoryDays {
			break
		}

		fmt.Fprintf(&b, "  %s  +%s  -%s  (%d)\n",
			FormatDate(d.Date), FormatOptional(d.Income), FormatOptional(d.Expense), len(d.Transactions))
	}

	return style.Render(b.String())
}

type overviewMsg struct {
	overview *wallet.Overview
	err      error
}

func (m OverviewModel) loadCmd() tea.Cmd {
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sess, err := m.sessions.Snapshot(ctx)
		if err != nil {
			return overviewMsg{err: err}
		}

		o, err := m.walletService.Overview(ctx, sess, period)

		return overviewMsg{overview: o, err: err}
	}
}
