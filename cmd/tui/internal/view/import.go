package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/bucket/internal/encoding"
	"github.com/MrJamesThe3rd/bucket/internal/importer"
)

const importTimeout = 2 * time.Minute

// maxFailedShown caps the failed rows listed on the result screen.
const maxFailedShown = 10

type importState int

const (
	importStateProfileSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type profileOption struct {
	profile importer.Profile
	label   string
}

type ImportModel struct {
	CommonModel
	importService *importer.Service
	sessions      Sessions

	state          importState
	filePicker     filepicker.Model
	profileOptions []profileOption
	profileCursor  int
	selected       importer.Profile

	result *importer.Result
	status string
	err    error
}

func NewImportModel(impSvc *importer.Service, sessions Sessions) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		sessions:      sessions,
		filePicker:    fp,
		profileOptions: []profileOption{
			{profile: importer.ProfileIvy, label: "Ivy Wallet backup CSV"},
			{profile: importer.ProfileGeneric, label: "Bank statement CSV"},
		},
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateProfileSelect {
			return m.updateProfileSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.result = msg.result
		m.status = fmt.Sprintf("Imported %d of %d rows.", msg.result.TransactionsImported, msg.result.RowsFound)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateProfileSelect
		return m, nil
	case importStateResult:
		m.state = importStateProfileSelect
		m.err = nil
		m.result = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateProfileSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.profileCursor > 0 {
			m.profileCursor--
		}
	case tea.KeyDown:
		if m.profileCursor < len(m.profileOptions)-1 {
			m.profileCursor++
		}
	case tea.KeyEnter:
		m.selected = m.profileOptions[m.profileCursor].profile
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateProfileSelect:
		return m.viewProfileSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", m.selected, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewProfileSelect() string {
	s := "Select Format:\n\n"

	for i, opt := range m.profileOptions {
		cursor := " "
		if i == m.profileCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, opt.label)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status))
	fmt.Fprintf(&b, "\n\nAccounts created:   %d\nCategories created: %d\n",
		m.result.AccountsImported, m.result.CategoriesImported)

	if n := len(m.result.FailedRows); n > 0 {
		fmt.Fprintf(&b, "\n%s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(
			fmt.Sprintf("%d rows failed:", n)))

		for i, f := range m.result.FailedRows {
			if i == maxFailedShown {
				fmt.Fprintf(&b, "  ... and %d more\n", n-maxFailedShown)
				break
			}

			fmt.Fprintf(&b, "  line %d: %s\n", f.Line, f.Reason)
		}
	}

	b.WriteString("\n(Esc to go back)")

	return style.Render(b.String())
}

type importResultMsg struct {
	result *importer.Result
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	profile := m.selected

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		sess, err := m.sessions.Snapshot(ctx)
		if err != nil {
			return importResultMsg{err: err}
		}

		res, err := m.importService.Import(ctx, sess, f, importer.Options{
			Profile: profile,
			Charset: encoding.CharsetAuto,
		})
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: res}
	}
}
