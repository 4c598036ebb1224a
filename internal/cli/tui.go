package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/archscope/archscope/pkg/report"
)

// Browser tabs, in display order.
const (
	tabOverview = iota
	tabServices
	tabViolations
	tabWarnings
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Services", "Violations", "Warnings"}

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// reportModel is the bubbletea model for browsing an analysis report.
type reportModel struct {
	report *report.Report
	tab    int
	offset int // scroll offset within the active tab
	height int
}

// newReportModel creates a browser over the given report.
func newReportModel(r *report.Report) reportModel {
	return reportModel{report: r, height: 15}
}

func (m reportModel) Init() tea.Cmd {
	return nil
}

func (m reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.tab > 0 {
				m.tab--
				m.offset = 0
			}
		case "right", "l", "tab":
			if m.tab < tabCount-1 {
				m.tab++
				m.offset = 0
			}
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < m.maxOffset() {
				m.offset++
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// maxOffset bounds scrolling by the row count of the active tab.
func (m reportModel) maxOffset() int {
	rows := 0
	switch m.tab {
	case tabServices:
		rows = len(m.report.Services)
	case tabViolations:
		rows = len(m.report.Violations)
	case tabWarnings:
		rows = len(m.report.Warnings)
	}
	if rows <= m.height {
		return 0
	}
	return rows - m.height
}

func (m reportModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Architecture Report"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.report.GeneratedAt.Format("2006-01-02 15:04:05")))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ switch tab  ↑/↓ scroll  q quit"))
	b.WriteString("\n\n")

	for i, name := range tabNames {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		if i == m.tab {
			b.WriteString(tabActiveStyle.Render(name))
		} else {
			b.WriteString(tabInactiveStyle.Render(name))
		}
	}
	b.WriteString("\n\n")

	switch m.tab {
	case tabServices:
		b.WriteString(m.viewServices())
	case tabViolations:
		b.WriteString(m.viewViolations())
	case tabWarnings:
		b.WriteString(m.viewWarnings())
	default:
		b.WriteString(m.viewOverview())
	}

	return b.String()
}

func (m reportModel) viewOverview() string {
	r := m.report
	lines := []string{
		fmt.Sprintf("Services      %d", r.Metrics.Nodes),
		fmt.Sprintf("Edges         %d", r.Metrics.Edges),
		fmt.Sprintf("Density       %.4f", r.Metrics.Density),
		fmt.Sprintf("Diameter      %d", r.Metrics.Diameter),
		fmt.Sprintf("Avg degree    %.2f", r.Metrics.AverageDegree),
		fmt.Sprintf("Violations    %d", len(r.Violations)),
		fmt.Sprintf("Warnings      %d", len(r.Warnings)),
	}
	if len(r.Advanced.CutVertices) > 0 {
		lines = append(lines, "Cut vertices  "+strings.Join(r.Advanced.CutVertices, ", "))
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(StyleValue.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m reportModel) viewServices() string {
	end := m.offset + m.height
	if end > len(m.report.Services) {
		end = len(m.report.Services)
	}

	degrees := make(map[string][2]int, len(m.report.Metrics.Degrees))
	for _, d := range m.report.Metrics.Degrees {
		degrees[d.Service] = [2]int{d.In, d.Out}
	}

	rows := [][]string{}
	for _, svc := range m.report.Services[m.offset:end] {
		deg := degrees[svc.Name]
		centrality := m.report.Advanced.Centrality[svc.Name]
		rows = append(rows, []string{
			svc.Name,
			svc.Role,
			fmt.Sprintf("%d", deg[0]),
			fmt.Sprintf("%d", deg[1]),
			fmt.Sprintf("%.3f", centrality),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("Service", "Role", "In", "Out", "Centrality").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	footer := StyleDim.Render(fmt.Sprintf("  [%d-%d/%d]", m.offset+1, end, len(m.report.Services)))
	return t.Render() + "\n" + footer
}

func (m reportModel) viewViolations() string {
	if len(m.report.Violations) == 0 {
		return StyleSuccess.Render("No invariant violations")
	}
	var b strings.Builder
	for _, v := range m.report.Violations[m.offset:] {
		b.WriteString(StyleError.Render(v.Rule))
		b.WriteString("  ")
		b.WriteString(StyleValue.Render(v.Description))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("  " + strings.Join(v.Services, " → ")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m reportModel) viewWarnings() string {
	if len(m.report.Warnings) == 0 {
		return StyleSuccess.Render("No warnings")
	}
	var b strings.Builder
	for _, w := range m.report.Warnings[m.offset:] {
		b.WriteString(StyleWarning.Render(w.Kind))
		b.WriteString("  ")
		b.WriteString(StyleValue.Render(w.Description))
		b.WriteString("\n")
	}
	return b.String()
}
