package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/bucket/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/bucket/internal/app"
	"github.com/MrJamesThe3rd/bucket/internal/config"
)

type model struct {
	app      *app.App
	startDay int

	currentView View

	overviewView     view.OverviewModel
	importView       view.ImportModel
	transactionsView view.TransactionsModel
	listView         view.ListModel
	loansView        view.LoansModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewOverview     View = 1
	ViewImport       View = 2
	ViewTransactions View = 3
	ViewList         View = 4
	ViewLoans        View = 5
	ViewExport       View = 6
)

func initialModel(a *app.App) model {
	ctx, cancel := view.DbCtx()
	defer cancel()

	sess, err := a.Session(ctx)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	return model{
		app:         a,
		startDay:    sess.StartDayOfMonth,
		currentView: ViewMenu,
		importView:  view.NewImportModel(a.Importer, a.Settings),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	a := m.app

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewOverview
				m.overviewView = view.NewOverviewModel(a.Wallet, a.Settings, m.startDay)

				return m, m.overviewView.Init()
			case "2":
				m.currentView = ViewImport
				return m, m.importView.Init()
			case "3":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(a.Transactions, a.Categories, a.Matching, a.Settings, m.startDay)

				return m, m.transactionsView.Init()
			case "4":
				m.currentView = ViewList
				m.listView = view.NewListModel(a.Transactions, a.Accounts, a.Settings)

				return m, m.listView.Init()
			case "5":
				m.currentView = ViewLoans
				m.loansView = view.NewLoansModel(a.Loans, a.Settings)

				return m, m.loansView.Init()
			case "6":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(a.Export, a.Settings, m.startDay)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewOverview:
		var newModel tea.Model
		newModel, cmd = m.overviewView.Update(msg)
		m.overviewView = newModel.(view.OverviewModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewLoans:
		var newModel tea.Model
		newModel, cmd = m.loansView.Update(msg)
		m.loansView = newModel.(view.LoansModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Bucket TUI\n\n" +
				"1. Overview\n" +
				"2. Import Transactions\n" +
				"3. Categorize Transactions\n" +
				"4. List All Transactions\n" +
				"5. Loans\n" +
				"6. Export Transactions\n\n" +
				"q. Quit",
		)
	case ViewOverview:
		return m.overviewView.View()
	case ViewImport:
		return m.importView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewList:
		return m.listView.View()
	case ViewLoans:
		return m.loansView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(initialModel(a))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
