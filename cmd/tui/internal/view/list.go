package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/account"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
)

var typeFilters = []*transaction.Type{
	nil,
	new(transaction.TypeIncome),
	new(transaction.TypeExpense),
	new(transaction.TypeTransfer),
}

type ListModel struct {
	CommonModel
	txService      *transaction.Service
	accountService *account.Service
	sessions       Sessions

	state    listState
	table    table.Model
	txs      []*transaction.Transaction
	accounts []*account.Account
	form     *huh.Form

	typeFilterIdx    int
	accountFilterIdx int

	filter  transaction.ListFilter
	loading bool
	err     error
	status  string

	formTitle string
	formDesc  string
}

func NewListModel(txSvc *transaction.Service, accSvc *account.Service, sessions Sessions) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 9},
		{Title: "Amount", Width: 12},
		{Title: "Account", Width: 16},
		{Title: "Title", Width: 32},
		{Title: "Loan", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		txService:      txSvc,
		accountService: accSvc,
		sessions:       sessions,
		table:          t,
		loading:        true,
	}
}

func (m ListModel) Title() string { return "Transactions List" }

func (m ListModel) ShortHelp() string {
	if m.state == listStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | x: delete | t: type filter | a: account filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.txs = msg.txs
		m.accounts = msg.accounts
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "e":
			return m.enterEditMode()
		case "x":
			return m, m.deleteCmd()
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % len(typeFilters)
			m.applyFilter()

			return m, m.loadTxsCmd()
		case "a":
			m.accountFilterIdx = (m.accountFilterIdx + 1) % (len(m.accounts) + 1)
			m.applyFilter()

			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	tx := m.txs[idx]
	m.formTitle = tx.Title
	m.formDesc = tx.Description

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&m.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),

			huh.NewText().
				Key("description").
				Title("Description").
				Value(&m.formDesc),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	typeLabel := "All"
	if t := typeFilters[m.typeFilterIdx]; t != nil {
		typeLabel = string(*t)
	}

	accountLabel := "All"
	if m.accountFilterIdx > 0 && m.accountFilterIdx <= len(m.accounts) {
		accountLabel = m.accounts[m.accountFilterIdx-1].Name
	}

	header := fmt.Sprintf(
		"Filter: [t] Type: %s | [a] Account: %s",
		activeStyle(typeLabel),
		activeStyle(accountLabel),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == listStateEdit && m.form != nil {
		note := ""
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.txs) && m.txs[idx].LoanID != nil {
			note = "Linked to a loan: changes flow back to it.\n\n"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Edit Transaction\n\n" + note + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ListModel) applyFilter() {
	m.filter.Type = typeFilters[m.typeFilterIdx]
	m.filter.AccountID = nil

	if m.accountFilterIdx > 0 && m.accountFilterIdx <= len(m.accounts) {
		m.filter.AccountID = new(m.accounts[m.accountFilterIdx-1].ID)
	}
}

func (m *ListModel) refreshTable() {
	names := make(map[uuid.UUID]string, len(m.accounts))
	for _, a := range m.accounts {
		names[a.ID] = a.Name
	}

	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		accountName := names[tx.AccountID]
		if tx.ToAccountID != nil {
			accountName += " → " + names[*tx.ToAccountID]
		}

		loanMark := ""
		if tx.LoanID != nil {
			loanMark = "yes"
		}

		rows = append(rows, table.Row{
			FormatDate(tx.DateTime),
			string(tx.Type),
			FormatAmount(tx.Type, tx.Amount),
			accountName,
			tx.Title,
			loanMark,
		})
	}

	m.table.SetRows(rows)
}

type loadListMsg struct {
	txs      []*transaction.Transaction
	accounts []*account.Account
	err      error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accountService.List(ctx)
		if err != nil {
			return loadListMsg{err: err}
		}

		txs, err := m.txService.List(ctx, filter)

		return loadListMsg{txs: txs, accounts: accounts, err: err}
	}
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	tx := m.txs[idx]
	title := strings.TrimSpace(m.formTitle)
	desc := m.formDesc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sess, err := m.sessions.Snapshot(ctx)
		if err != nil {
			return listSaveMsg{err: err}
		}

		tx.Title = title
		tx.Description = desc

		if err := m.txService.Update(ctx, sess, tx); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Saved."}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	id := m.txs[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txService.Delete(ctx, id); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Deleted."}
	}
}
