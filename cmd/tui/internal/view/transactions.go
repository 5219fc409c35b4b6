package view

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bucket/internal/category"
	"github.com/MrJamesThe3rd/bucket/internal/matching"
	"github.com/MrJamesThe3rd/bucket/internal/transaction"
)

type txState int

const (
	txStateTimeframe txState = iota
	txStateList
	txStateEditing
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx       *transaction.Transaction
	category string
}

func (i txItem) Title() string {
	kind := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.tx.Type))

	return fmt.Sprintf("%s  %s  %s  %s", FormatDate(i.tx.DateTime), FormatAmount(i.tx.Type, i.tx.Amount), kind, i.tx.Title)
}

func (i txItem) Description() string {
	if i.category == "" {
		return "Uncategorized"
	}

	return "Category: " + i.category
}

func (i txItem) FilterValue() string {
	return i.tx.Title
}

// TransactionsModel walks the transactions of a timeframe and assigns
// categories, optionally remembering the title for future suggestions.
type TransactionsModel struct {
	CommonModel
	txService       *transaction.Service
	categoryService *category.Service
	matchingService *matching.Service
	sessions        Sessions

	state           txState
	timeframePicker TimeframePicker
	list            list.Model
	form            *huh.Form
	txs             []*transaction.Transaction
	categories      []*category.Category
	selectedTx      *transaction.Transaction

	startDate time.Time
	endDate   time.Time
	allTime   bool
	loading   bool
	status    string

	formTitle    string
	formCategory string
	formLearn    bool
}

func NewTransactionsModel(txSvc *transaction.Service, catSvc *category.Service, matchSvc *matching.Service, sessions Sessions, startDay int) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return TransactionsModel{
		txService:       txSvc,
		categoryService: catSvc,
		matchingService: matchSvc,
		sessions:        sessions,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek, startDay),
		list:            l,
	}
}

func (m TransactionsModel) Title() string { return "Categorize Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateTimeframe:
		return "Esc: back | Enter: select"
	case txStateList:
		return "Esc: back | Enter: edit | /: filter"
	case txStateEditing:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.startDate = msg.Start
		m.endDate = msg.End
		m.allTime = msg.All
		m.loading = true
		m.state = txStateList

		return m, m.loadTxsCmd()

	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.categories = msg.categories
		m.refreshListItems()

		if len(msg.txs) == 0 {
			m.status = "No transactions found."
		}

		return m, nil

	case saveTxResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			m.state = txStateList

			return m, nil
		}

		m.status = "Saved."
		m.state = txStateList

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateList:
		return m.updateList(msg)
	case txStateEditing:
		return m.updateEditing(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			if m.list.FilterState() == list.Filtering {
				break // let the list handle it (close filter)
			}

			return m, Back
		case tea.KeyEnter:
			if m.list.FilterState() == list.Filtering {
				break // let the list handle it (confirm filter)
			}

			return m.startEditing()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startEditing() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(txItem)
	if !ok {
		return m, nil
	}

	m.selectedTx = selected.tx
	m.formTitle = selected.tx.Title
	m.formCategory = ""
	m.formLearn = false

	if selected.tx.CategoryID != nil {
		m.formCategory = selected.tx.CategoryID.String()
	} else {
		ctx, cancel := DbCtx()
		defer cancel()

		if suggestion, _ := m.matchingService.Suggest(ctx, selected.tx.Title); suggestion != nil {
			m.formCategory = suggestion.String()
		}
	}

	options := []huh.Option[string]{huh.NewOption("Uncategorized", "")}
	for _, c := range m.categories {
		options = append(options, huh.NewOption(c.Name, c.ID.String()))
	}

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

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.formCategory),

			huh.NewConfirm().
				Key("learn").
				Title("Use this category for similar titles?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formLearn),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateEditing

	return m, m.form.Init()
}

func (m TransactionsModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateList
			m.form = nil

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

	return m, m.saveTxCmd()
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case txStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
		}

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(statusLine + m.list.View())

	case txStateEditing:
		if m.form == nil {
			return ""
		}

		info := m.txInfoView()

		return lipgloss.NewStyle().Padding(1).Render(
			info + "\n" + m.form.View(),
		)
	}

	return ""
}

func (m TransactionsModel) txInfoView() string {
	if m.selectedTx == nil {
		return ""
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(fmt.Sprintf(
			"Date: %s  |  Type: %s  |  Amount: %s\nDescription: %s",
			FormatDate(m.selectedTx.DateTime),
			m.selectedTx.Type,
			FormatAmount(m.selectedTx.Type, m.selectedTx.Amount),
			m.selectedTx.Description,
		))
}

func (m *TransactionsModel) refreshListItems() {
	names := make(map[uuid.UUID]string, len(m.categories))
	for _, c := range m.categories {
		names[c.ID] = c.Name
	}

	items := make([]list.Item, len(m.txs))
	for i, tx := range m.txs {
		item := txItem{tx: tx}
		if tx.CategoryID != nil {
			item.category = names[*tx.CategoryID]
		}

		items[i] = item
	}

	m.list.SetItems(items)
}

type loadTxsMsg struct {
	txs        []*transaction.Transaction
	categories []*category.Category
	err        error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := transaction.ListFilter{}

		if !m.allTime {
			start, end := m.startDate, m.endDate
			filter.StartDate = &start
			filter.EndDate = &end
		}

		categories, err := m.categoryService.List(ctx)
		if err != nil {
			return loadTxsMsg{err: err}
		}

		txs, err := m.txService.List(ctx, filter)

		return loadTxsMsg{txs: txs, categories: categories, err: err}
	}
}

type saveTxResultMsg struct {
	err error
}

func (m TransactionsModel) saveTxCmd() tea.Cmd {
	tx := m.selectedTx
	title := strings.TrimSpace(m.formTitle)
	categoryStr := m.formCategory
	learn := m.formLearn
	matchSvc := m.matchingService
	txSvc := m.txService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sess, err := m.sessions.Snapshot(ctx)
		if err != nil {
			return saveTxResultMsg{err: err}
		}

		tx.Title = title
		tx.CategoryID = nil

		if categoryStr != "" {
			id, err := uuid.Parse(categoryStr)
			if err != nil {
				return saveTxResultMsg{err: err}
			}

			tx.CategoryID = &id

			if learn {
				if err := matchSvc.Learn(ctx, title, id); err != nil {
					slog.Warn("failed to learn category mapping", "title", title, "error", err)
				}
			}
		}

		if err := txSvc.Update(ctx, sess, tx); err != nil {
			return saveTxResultMsg{err: err}
		}

		return saveTxResultMsg{}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	title := i.Title()
	desc := i.Description()

	if isSelected {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
}
