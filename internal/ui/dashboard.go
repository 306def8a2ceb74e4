package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/BrandSum/internal/analyzer"
	"github.com/yildizm/BrandSum/internal/emoji"
	"github.com/yildizm/BrandSum/internal/ui/components"
)

// chrome is the number of lines taken by the header, tabs and footer
const chrome = 6

// DashboardModel is the tabbed report browser
type DashboardModel struct {
	width  int
	height int
	load   LoadFunc

	snapshot *Snapshot
	err      error
	loading  bool
	ready    bool
	quitting bool

	// Navigation state
	tab          Tab
	selected     int
	offset       int
	sortIndex    int
	showHelp     bool
	showTimeline bool

	spinner *components.Spinner
	styles  *Styles
}

// NewDashboardModel creates a dashboard that loads its data with load
func NewDashboardModel(load LoadFunc) *DashboardModel {
	spinner := components.NewSpinner()
	spinner.SetLabel("Aggregating brand detections...")

	return &DashboardModel{
		load:    load,
		loading: true,
		spinner: spinner,
		styles:  GetStyles(),
	}
}

// Init starts the first load
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		CreateReportCommand(m.load),
		tick(),
	)
}

// Update handles messages and navigation
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case reportCompleteMsg:
		return m.handleReportComplete(msg)
	case reportErrorMsg:
		return m.handleReportError(msg)
	}

	return m, nil
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if !m.ready {
		return "Initializing BrandSum..."
	}

	if m.quitting {
		goodbye := m.styles.High.Render("Thanks for using BrandSum!")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, goodbye)
	}

	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Box.Render(m.spinner.Render()))
	}

	if m.err != nil {
		msg := lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Low.Render(emoji.GetEmoji("error")+" Failed to build report"),
			"",
			m.err.Error(),
			"",
			m.styles.Muted.Render("r to retry, q to quit"),
		)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.styles.Box.Render(msg))
	}

	body := m.bodyLines()
	if m.showHelp {
		body = m.helpLines()
	}

	visible := m.visibleLines()
	start := min(m.offset, max(len(body)-visible, 0))
	end := min(start+visible, len(body))

	sections := []string{
		m.renderHeader(),
		m.renderTabs(),
		"",
		strings.Join(body[start:end], "\n"),
		"",
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m *DashboardModel) visibleLines() int {
	return max(m.height-chrome, 3)
}

func (m *DashboardModel) renderHeader() string {
	title := m.styles.Title.Render(emoji.GetEmoji("brand") + " BrandSum")
	report := m.snapshot.Report
	info := m.styles.Muted.Render(fmt.Sprintf("%d video(s), %d brand(s), generated %s",
		report.Dashboard.TotalVideos, report.Dashboard.TotalBrands, report.GeneratedAt.Format("15:04:05")))
	return title + " " + info
}

func (m *DashboardModel) renderTabs() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *DashboardModel) renderFooter() string {
	hint := "tab/1-4 switch • ↑↓ move • s sort • r reload • h help • q quit"
	if m.tab == TabPerformance {
		hint = "tab/1-4 switch • ↑↓ select • enter timeline • esc back • r reload • q quit"
	}
	return m.styles.Footer.Render(hint)
}

func (m *DashboardModel) bodyLines() []string {
	var content string
	switch m.tab {
	case TabBrands:
		content = m.renderBrands()
	case TabConfidence:
		content = m.renderConfidence()
	case TabPerformance:
		if m.showTimeline {
			content = m.renderTimeline()
		} else {
			content = m.renderPerformance()
		}
	default:
		content = m.renderOverview()
	}
	return strings.Split(content, "\n")
}

func (m *DashboardModel) renderOverview() string {
	report := m.snapshot.Report

	cards := components.CreateReportStats(report)
	cards.SetCardSize(max(min((m.width-8)/4, 24), 16), 3)

	lines := []string{cards.Render(), ""}
	lines = append(lines, m.styles.Header.Render(fmt.Sprintf("Top brands by %s", report.RankedBy)))

	if len(report.Rankings) == 0 {
		lines = append(lines, m.styles.Muted.Render("  No brands detected"))
	}
	for i, r := range report.Rankings {
		if i == 5 {
			break
		}
		p := r.Item
		lines = append(lines, fmt.Sprintf("  %d. %-20s %5d appearances  %s",
			r.Rank, p.Name, p.TotalAppearances, m.styles.Tier(p.AverageConfidence).Render(fmt.Sprintf("%.1f%%", p.AverageConfidence))))
	}

	if report.MalformedCount > 0 {
		lines = append(lines, "", m.styles.Medium.Render(fmt.Sprintf("%s %d malformed record(s) excluded from brand totals",
			emoji.GetEmoji("warning"), report.MalformedCount)))
	}
	return strings.Join(lines, "\n")
}

// sortKey is the brand ranking key the Brands tab uses
func (m *DashboardModel) sortKey() string {
	keys := analyzer.BrandRankKeys()
	return keys[m.sortIndex%len(keys)]
}

func (m *DashboardModel) rankedBrands() []analyzer.Ranked[analyzer.BrandProfile] {
	ranked, err := analyzer.RankBrands(m.snapshot.Report.Brands.Profiles, m.sortKey())
	if err != nil {
		return nil
	}
	return ranked
}

func (m *DashboardModel) renderBrands() string {
	ranked := m.rankedBrands()
	lines := []string{m.styles.Header.Render(fmt.Sprintf("%d brand(s), sorted by %s", len(ranked), m.sortKey()))}

	if len(ranked) == 0 {
		return strings.Join(append(lines, m.styles.Muted.Render("  No brands detected")), "\n")
	}

	lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("  %-4s %-20s %11s %9s %6s %8s  %s",
		"#", "Brand", "Appearances", "Exposure", "Videos", "Conf.", "Consistency")))
	for i, r := range ranked {
		p := r.Item
		line := fmt.Sprintf("  %-4d %-20s %11d %8.1fs %6d %7.1f%%  %s",
			r.Rank, p.Name, p.TotalAppearances, p.TotalExposureSeconds, p.VideoCount, p.AverageConfidence, p.Consistency)
		if i == m.selected {
			line = m.styles.Selected.Render(line)
		}
		lines = append(lines, line)
	}

	if m.selected < len(ranked) {
		p := ranked[m.selected].Item
		lines = append(lines, "",
			m.styles.Header.Render(p.Name),
			fmt.Sprintf("  Confidence %.1f%% to %.1f%%, std dev %.1f", p.MinConfidence, p.MaxConfidence, p.StdDev),
			fmt.Sprintf("  Tiers: %s high, %s medium, %s low",
				m.styles.High.Render(fmt.Sprint(p.Tiers.High)),
				m.styles.Medium.Render(fmt.Sprint(p.Tiers.Medium)),
				m.styles.Low.Render(fmt.Sprint(p.Tiers.Low))),
		)
	}
	return strings.Join(lines, "\n")
}

func (m *DashboardModel) renderConfidence() string {
	c := m.snapshot.Report.Confidence
	theme := m.styles.Theme

	lines := []string{m.styles.Header.Render(fmt.Sprintf("%d sample(s), average %.1f%%", c.Overall.Total, c.Overall.Average))}
	if c.Overall.Total == 0 {
		return strings.Join(append(lines, m.styles.Muted.Render("  No confidence samples")), "\n")
	}

	lines = append(lines,
		components.NewProgressBar(30).SetLabel("High (>=80%)").SetColor(theme.Success).SetProgress(c.Overall.High, c.Overall.Total).Render(),
		components.NewProgressBar(30).SetLabel("Medium (60-80%)").SetColor(theme.Warning).SetProgress(c.Overall.Medium, c.Overall.Total).Render(),
		components.NewProgressBar(30).SetLabel("Low (<60%)").SetColor(theme.Error).SetProgress(c.Overall.Low, c.Overall.Total).Render(),
		"",
		m.styles.Header.Render("Distribution"),
	)

	for _, bucket := range c.Histogram {
		lines = append(lines, components.NewProgressBar(30).
			SetLabel(bucket.Label).
			SetColor(theme.Primary).
			SetProgress(bucket.Count, c.Overall.Total).
			Render())
	}

	quality := components.NewSummaryBox("Quality", 0)
	quality.AddKeyValue("Excellent", fmt.Sprint(c.Quality.Excellent))
	quality.AddKeyValue("Good", fmt.Sprint(c.Quality.Good))
	quality.AddKeyValue("Fair", fmt.Sprint(c.Quality.Fair))
	quality.AddKeyValue("Poor", fmt.Sprint(c.Quality.Poor))

	lines = append(lines, "", quality.Render())
	return strings.Join(lines, "\n")
}

func (m *DashboardModel) renderPerformance() string {
	s := m.snapshot.Report.Stats
	lines := []string{m.styles.Header.Render(fmt.Sprintf("Average %.2fx real time, %.1f fps, %d frames",
		s.AverageProcessingSpeed, s.AverageFPS, s.TotalFramesProcessed))}

	if len(s.PerVideoPerformance) == 0 {
		return strings.Join(append(lines, m.styles.Muted.Render("  No videos")), "\n")
	}

	for i, v := range s.PerVideoPerformance {
		var line string
		if v.Malformed {
			line = fmt.Sprintf("  %3d. %-30s malformed", v.Index, videoName(v))
		} else {
			line = fmt.Sprintf("  %3d. %-30s %7.1fs in %6.1fs  %5.2fx  %-15s %d brand(s)",
				v.Index, videoName(v), v.VideoSeconds, v.AnalysisSeconds, v.ProcessingSpeed, v.EfficiencyTier, v.BrandCount)
		}
		if i == m.selected {
			line = m.styles.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *DashboardModel) renderTimeline() string {
	s := m.snapshot.Report.Stats
	if m.snapshot.Timeline == nil || m.selected >= len(s.PerVideoPerformance) {
		return m.styles.Muted.Render("Timeline not available")
	}

	v := s.PerVideoPerformance[m.selected]
	record := m.snapshot.Records[v.Index-1]
	chart := components.NewTimelineChart(emoji.GetEmoji("timeline")+" "+videoName(v), m.snapshot.Timeline(record), max(m.width-4, 40))
	return chart.Render()
}

func videoName(v analyzer.VideoPerformance) string {
	name := v.Title
	if name == "" {
		name = v.RecordID
	}
	if name == "" {
		name = fmt.Sprintf("video %d", v.Index)
	}
	if r := []rune(name); len(r) > 30 {
		name = string(r[:29]) + "…"
	}
	return name
}

func (m *DashboardModel) helpLines() []string {
	return []string{
		m.styles.Header.Render(emoji.GetEmoji("help") + " Help"),
		"",
		"  tab, →, l        next tab",
		"  shift+tab, ←     previous tab",
		"  1-4              jump to tab",
		"  ↑/k, ↓/j         move selection",
		"  s                cycle brand sort key",
		"  enter            open the selected video's timeline",
		"  esc              close help or timeline",
		"  r                reload records",
		"  q, ctrl+c        quit",
	}
}

// itemCount is the number of selectable rows on the current tab
func (m *DashboardModel) itemCount() int {
	if m.snapshot == nil {
		return 0
	}
	switch m.tab {
	case TabBrands:
		return len(m.snapshot.Report.Brands.Profiles)
	case TabPerformance:
		if m.showTimeline {
			return 0
		}
		return len(m.snapshot.Report.Stats.PerVideoPerformance)
	default:
		return 0
	}
}

// Handler functions for Update method

// handleWindowResize handles window resize events
func (m *DashboardModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	return m, nil
}

// handleKeyPress handles keyboard input
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "r":
		return m.handleReload()
	}

	if m.loading || m.snapshot == nil {
		return m, nil
	}

	switch key {
	case "esc":
		m.showHelp = false
		m.showTimeline = false
		m.offset = 0
	case "h", "?":
		m.showHelp = !m.showHelp
		m.offset = 0
	case "tab", "right", "l":
		m.switchTab((m.tab + 1) % Tab(len(tabNames)))
	case "shift+tab", "left":
		m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	case "1", "2", "3", "4":
		m.switchTab(Tab(key[0] - '1'))
	case "up", "k":
		m.handleMove(-1)
	case "down", "j":
		m.handleMove(1)
	case "s":
		if m.tab == TabBrands {
			m.sortIndex = (m.sortIndex + 1) % len(analyzer.BrandRankKeys())
			m.selected, m.offset = 0, 0
		}
	case "enter":
		if m.tab == TabPerformance && !m.showTimeline && m.itemCount() > 0 {
			m.showTimeline = true
			m.offset = 0
		}
	}
	return m, nil
}

func (m *DashboardModel) switchTab(tab Tab) {
	m.tab = tab
	m.selected = 0
	m.offset = 0
	m.showHelp = false
	m.showTimeline = false
}

// handleMove moves the selection, or scrolls when the tab has no rows to select
func (m *DashboardModel) handleMove(delta int) {
	if n := m.itemCount(); n > 0 && !m.showHelp {
		m.selected = min(max(m.selected+delta, 0), n-1)
		// keep the selection (plus its header row) on screen
		row := m.selected + 2
		visible := m.visibleLines()
		if row < m.offset {
			m.offset = row
		} else if row >= m.offset+visible {
			m.offset = row - visible + 1
		}
		return
	}
	m.offset = max(m.offset+delta, 0)
}

// handleReload starts a fresh load
func (m *DashboardModel) handleReload() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	m.err = nil
	return m, tea.Batch(CreateReportCommand(m.load), tick())
}

// handleTick animates the spinner while loading
func (m *DashboardModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.loading {
		return m, nil
	}
	m.spinner.Tick()
	return m, tick()
}

// handleReportComplete handles load completion
func (m *DashboardModel) handleReportComplete(msg reportCompleteMsg) (tea.Model, tea.Cmd) {
	m.snapshot = msg.snapshot
	m.loading = false
	m.err = nil
	if n := m.itemCount(); m.selected >= n {
		m.selected = max(n-1, 0)
	}
	return m, nil
}

// handleReportError handles load errors
func (m *DashboardModel) handleReportError(msg reportErrorMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.err = msg.err
	return m, nil
}

// DashboardRun runs the dashboard full screen until the user quits
func DashboardRun(load LoadFunc) error {
	model := NewDashboardModel(load)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
