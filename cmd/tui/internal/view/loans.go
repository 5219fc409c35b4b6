package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/bucket/internal/loan"
)

type loansState int

const (
	loansStateBrowse loansState = iota
	loansStateRecord
)

type LoansModel struct {
	CommonModel
	loanService *loan.Service
	sessions    Sessions

	state   loansState
	table   table.Model
	details []*loan.Details
	form    *huh.Form
	loading bool
	status  string
	err     error

	formAmount string
	formNote   string
	formMirror bool
}

func NewLoansModel(svc *loan.Service, sessions Sessions) LoansModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 20},
			{Title: "Type", Width: 8},
			{Title: "Amount", Width: 12},
			{Title: "Paid", Width: 12},
			{Title: "Remaining", Width: 12},
			{Title: "Records", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return LoansModel{loanService: svc, sessions: sessions, table: t, loading: true}
}

func (m LoansModel) Title() string { return "Loans" }

func (m LoansModel) ShortHelp() string {
	if m.state == loansStateRecord {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | p: add record | r: refresh"
}

func (m LoansModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LoansModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLoansMsg:
		m.loading = false
		m.err = msg.err
		m.details = msg.details
		m.refreshTable()

		return m, nil

	case recordSavedMsg:
		m.state = loansStateBrowse
		m.form = nil
		m.table.Focus()

		m.status = "Record added."
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		return m, m.loadCmd()
	}

	if m.state == loansStateRecord {
		return m.updateRecord(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			return m.startRecord()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LoansModel) startRecord() (tea.Model, tea.Cmd) {
	if idx := m.table.Cursor(); idx < 0 || idx >= len(m.details) {
		return m, nil
	}

	m.formAmount = ""
	m.formNote = ""
	m.formMirror = true

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil || !d.IsPositive() {
						return fmt.Errorf("enter a positive amount")
					}
					return nil
				}),

			huh.NewInput().
				Key("note").
				Title("Note").
				Value(&m.formNote),

			huh.NewConfirm().
				Key("mirror").
				Title("Record a transaction for it?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formMirror),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = loansStateRecord
	m.table.Blur()

	return m, m.form.Init()
}

func (m LoansModel) updateRecord(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = loansStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveRecordCmd()
}

func (m LoansModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return style.Render("Loading loans...")
	}

	if m.err != nil {
		return style.Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.details) == 0 {
		return style.Render("No loans yet.\n\n(Esc to go back)")
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == loansStateRecord && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("New record for %s\n\n%s", m.details[m.table.Cursor()].Loan.Name, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return style.Render(content)
}

func (m *LoansModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.details))
	for _, d := range m.details {
		rows = append(rows, table.Row{
			d.Loan.Name,
			string(d.Loan.Type),
			d.Loan.Amount.StringFixed(2),
			d.AmountPaid.StringFixed(2),
			d.Remaining.StringFixed(2),
			fmt.Sprint(len(d.Records)),
		})
	}

	m.table.SetRows(rows)
}

type loadLoansMsg struct {
	details []*loan.Details
	err     error
}

func (m LoansModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		loans, err := m.loanService.List(ctx)
		if err != nil {
			return loadLoansMsg{err: err}
		}

		details := make([]*loan.Details, 0, len(loans))
		for _, l := range loans {
			d, err := m.loanService.Get(ctx, l.ID)
			if err != nil {
				return loadLoansMsg{err: err}
			}

			details = append(details, d)
		}

		return loadLoansMsg{details: details}
	}
}

type recordSavedMsg struct {
	err error
}

func (m LoansModel) saveRecordCmd() tea.Cmd {
	l := m.details[m.table.Cursor()].Loan
	amountStr := strings.TrimSpace(m.formAmount)
	note := m.formNote
	mirror := m.formMirror

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return recordSavedMsg{err: err}
		}

		sess, err := m.sessions.Snapshot(ctx)
		if err != nil {
			return recordSavedMsg{err: err}
		}

		_, err = m.loanService.CreateRecord(ctx, sess, l.ID, loan.RecordParams{
			Amount:            amount,
			AccountID:         l.AccountID,
			Note:              note,
			CreateTransaction: mirror,
		})

		return recordSavedMsg{err: err}
	}
}
