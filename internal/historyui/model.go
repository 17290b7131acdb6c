// Package historyui provides the Bubble Tea browser for stored analysis runs.
package historyui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/voynich/internal/model"
	"github.com/verte-zerg/voynich/internal/report"
)

const (
	tabRuns = iota
	tabDetails
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	langStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	bestStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14"))
)

// Source is the subset of the store the browser reads from.
type Source interface {
	ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error)
	ListResults(ctx context.Context, runID int64) ([]model.StoredResult, error)
	ListDiagnostics(ctx context.Context, runID int64) ([]model.Diagnostic, error)
}

// Model implements the Bubble Tea history UI.
type Model struct {
	src   Source
	limit int

	runs     []model.RunSummary
	selected int64
	errMsg   string

	tabs      []string
	activeTab int
	runTable  table.Model
	details   viewport.Model

	width  int
	height int
}

// NewModel constructs a history browser showing at most limit runs.
func NewModel(src Source, limit int) *Model {
	m := &Model{
		src:     src,
		limit:   limit,
		tabs:    []string{"Runs", "Details"},
		details: viewport.New(0, 0),
	}
	m.runTable = table.New(
		table.WithColumns(runColumns()),
		table.WithFocused(true),
		table.WithHeight(1),
	)
	m.runTable.SetStyles(runTableStyles())
	m.refreshRuns()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "r":
			m.refreshRuns()
			return m, nil
		case "enter":
			if m.activeTab == tabRuns {
				m.openSelected()
			}
			return m, nil
		}
		if m.activeTab == tabRuns {
			var cmd tea.Cmd
			m.runTable, cmd = m.runTable.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	var body string
	if m.activeTab == tabRuns {
		if len(m.runs) == 0 {
			body = mutedStyle.Render("No stored runs yet. Run `voynich` to record one.")
		} else {
			body = m.runTable.View()
		}
	} else {
		body = m.details.View()
	}
	parts := []string{m.renderTabs(), body, m.renderFooter()}
	return strings.Join(parts, "\n")
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("←/→ tabs • ↑/↓ move • enter open • r reload • q quit")
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg) + "\n" + help
	}
	return help
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X"))
	footerHeight := 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight := m.layoutHeights()
	m.details.Width = m.width
	m.details.Height = bodyHeight
	m.runTable.SetWidth(m.width)
	m.runTable.SetHeight(bodyHeight)
}

func (m *Model) moveTab(delta int) {
	next := m.activeTab + delta
	if next < 0 {
		next = len(m.tabs) - 1
	}
	if next >= len(m.tabs) {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabRuns {
		m.runTable.Focus()
	} else {
		m.runTable.Blur()
	}
}

func (m *Model) refreshRuns() {
	runs, err := m.src.ListRuns(context.Background(), m.limit)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load runs: %v", err)
		return
	}
	m.errMsg = ""
	m.runs = runs
	m.runTable.SetRows(runRows(runs))
}

func (m *Model) openSelected() {
	cursor := m.runTable.Cursor()
	if cursor < 0 || cursor >= len(m.runs) {
		return
	}
	run := m.runs[cursor]
	ctx := context.Background()
	results, err := m.src.ListResults(ctx, run.RunID)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load results: %v", err)
		return
	}
	diags, err := m.src.ListDiagnostics(ctx, run.RunID)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load diagnostics: %v", err)
		return
	}
	m.errMsg = ""
	m.selected = run.RunID
	m.details.SetContent(renderDetails(run, results, diags))
	m.details.GotoTop()
	m.activeTab = tabDetails
	m.runTable.Blur()
}

func runColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Started", Width: 19},
		{Title: "Langs", Width: 5},
		{Title: "Best", Width: 26},
		{Title: "Valid", Width: 5},
		{Title: "Diag", Width: 4},
		{Title: "Ciphertext", Width: 40},
	}
}

func runRows(runs []model.RunSummary) []table.Row {
	rows := make([]table.Row, 0, len(runs))
	for _, r := range runs {
		best := "-"
		if r.BestCount > 0 {
			best = fmt.Sprintf("%s/%s", r.BestLang, r.BestTech)
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(r.RunID, 10),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(r.Languages),
			best,
			strconv.Itoa(r.BestCount),
			strconv.Itoa(r.Diagnostics),
			r.Ciphertext,
		})
	}
	return rows
}

func runTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true)
	return styles
}

func renderDetails(run model.RunSummary, results []model.StoredResult, diags []model.Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %d  %s\n", run.RunID, run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Ciphertext: %s\n", run.Ciphertext)

	lang := ""
	for _, r := range results {
		if r.Language != lang {
			lang = r.Language
			b.WriteString("\n" + langStyle.Render(lang) + "\n")
		}
		line := fmt.Sprintf("  %-40s %3d  %s", report.TechniqueTitle(r.Technique), r.Count, r.Text)
		if r.Count > 0 && r.Count == run.BestCount {
			line = bestStyle.Render(line)
		}
		b.WriteString(line + "\n")
		if params := paramString(r.Params); params != "" {
			b.WriteString(mutedStyle.Render("      "+params) + "\n")
		}
		if len(r.Matched) > 0 {
			b.WriteString(mutedStyle.Render("      matched: "+strings.Join(r.Matched, ", ")) + "\n")
		}
	}
	if len(diags) > 0 {
		b.WriteString("\n" + warningStyle.Render("Diagnostics") + "\n")
		for _, d := range diags {
			target := ""
			if d.Language != "" {
				target = " [" + d.Language + "]"
			}
			fmt.Fprintf(&b, "  %s%s %s\n", d.Kind, target, d.Message)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func paramString(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, k := range []string{"shift", "keyword", "key"} {
		if v, ok := params[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, " ")
}
