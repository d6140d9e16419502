// Package tui provides the Bubble Tea germination workbench.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/germstat/internal/dataset"
	"github.com/verte-zerg/germstat/internal/model"
	"github.com/verte-zerg/germstat/internal/stats"
)

const (
	tabData = iota
	tabOverview
	tabCharts
	tabSummary
)

const plotHeight = 10

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
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea germination UI.
type Model struct {
	cfg        model.TrialConfig
	rows       []dataset.Row
	obs        []model.Observation
	res        stats.Result
	exportPath string

	errMsg    string
	statusMsg string

	tabs       []string
	activeTab  int
	viewports  []viewport.Model
	dataTable  table.Model
	dataLayout tableLayout

	width  int
	height int

	settingsMode   bool
	settingsInputs []textinput.Model
	settingsIndex  int
	settingsError  string

	editMode   bool
	editInputs []textinput.Model
	editIndex  int
	editError  string
	editRow    int
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
	colCount int
}

// NewModel constructs the germination UI model over the given raw rows.
func NewModel(rows []dataset.Row, cfg model.TrialConfig, exportPath string) *Model {
	m := &Model{
		cfg:        cfg,
		rows:       rows,
		exportPath: exportPath,
		tabs:       []string{"Data", "Overview", "Charts", "Summary"},
	}
	m.initSettingsInputs()
	m.initEditInputs()
	m.initDataTable()
	m.initViewports()
	m.recompute()
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
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.activeTab == tabData {
			m.dataTable.Focus()
		} else {
			m.dataTable.Blur()
		}
		if m.settingsMode {
			return m.updateSettings(msg)
		}
		if m.editMode {
			return m.updateEdit(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startSettings()
		case "x":
			m.exportTable()
			return m, nil
		case "enter":
			if m.activeTab == tabData && len(m.rows) > 0 {
				return m.startEdit(m.dataTable.Cursor())
			}
			return m, nil
		case "a":
			if m.activeTab == tabData {
				return m.startEdit(-1)
			}
			return m, nil
		case "d":
			if m.activeTab == tabData {
				m.deleteRow()
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabData {
				m.dataTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabData {
				m.dataTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabData {
				var cmd tea.Cmd
				m.dataTable, cmd = m.dataTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.editMode {
		return fitLines(m.renderEditModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initSettingsInputs() {
	m.settingsInputs = []textinput.Model{
		newFormInput("Total seeds (N): "),
		newFormInput("Unweighted reference (y/n): "),
		newFormInput("Export path: "),
	}
	m.setInputsFromConfig()
}

func (m *Model) initEditInputs() {
	m.editInputs = []textinput.Model{
		newFormInput("Day: "),
		newFormInput("Count: "),
	}
}

func (m *Model) initDataTable() {
	m.dataTable = buildDataTable(nil, 0, 1)
}

func newFormInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if len(m.settingsInputs) == 0 {
		return
	}
	m.settingsInputs[0].SetValue(strconv.Itoa(m.cfg.TotalSeeds))
	if m.cfg.Unweighted {
		m.settingsInputs[1].SetValue("y")
	} else {
		m.settingsInputs[1].SetValue("n")
	}
	m.settingsInputs[2].SetValue(m.exportPath)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.settingsMode && m.errMsg != "" {
		footerHeight++
	}
	if !m.settingsMode && m.errMsg == "" && m.statusMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setDataTableSize(m.width, vpHeight)
	for i := range m.settingsInputs {
		promptWidth := lipgloss.Width(m.settingsInputs[i].Prompt)
		m.settingsInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
	for i := range m.editInputs {
		promptWidth := lipgloss.Width(m.editInputs[i].Prompt)
		m.editInputs[i].Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabData {
		m.dataTable.Focus()
	} else {
		m.dataTable.Blur()
	}
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

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	trial := padLines(m.renderTrialSummary(), m.width)
	return tabs + "\n" + trial
}

func (m *Model) renderTrialSummary() string {
	unweighted := "off"
	if m.cfg.Unweighted {
		unweighted = "on"
	}
	summary := fmt.Sprintf("Trial: N=%d  unweighted=%s  rows=%d  valid=%d  export=%s",
		m.cfg.TotalSeeds, unweighted, len(m.rows), len(m.obs), m.exportPath)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Settings: /  Export: x  Quit: q"
	if m.activeTab == tabData {
		help = "Nav: left/right  Rows: up/down  Edit: enter  Add: a  Delete: d  Settings: /  Export: x  Quit: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderSettingsHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
}

func (m *Model) renderFooter() string {
	if m.settingsMode {
		return m.renderSettingsHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	if m.statusMsg != "" {
		return m.renderHelp() + "\n" + statusStyle.Render(m.statusMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderSettingsForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.settingsInputs {
		lines = append(lines, input.View())
	}
	if m.settingsError != "" {
		lines = append(lines, errorStyle.Render(m.settingsError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.settingsMode {
		return fitLines(m.renderSettingsForm(), m.width, height)
	}
	if m.activeTab == tabData {
		if len(m.rows) == 0 {
			return fitLines("No rows. Press a to add one.", m.width, height)
		}
		view := tableMutedStyle.Render(m.dataTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderEditModal() string {
	title := cardValueStyle.Render("Add Row")
	if m.editRow >= 0 {
		title = cardValueStyle.Render(fmt.Sprintf("Edit Row %d", m.editRow+1))
	}
	body := []string{
		title,
		m.editInputs[0].View(),
		m.editInputs[1].View(),
		headerStyle.Render("Tab switches fields. Values are parsed as numbers."),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.editError != "" {
		body = append(body, errorStyle.Render(m.editError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// recompute normalizes the working rows and refreshes every derived view.
// It is the single recomputation path: any data or settings change funnels
// through here.
func (m *Model) recompute() {
	m.obs = dataset.Normalize(m.rows)
	if model.TotalCount(m.obs) == 0 {
		m.res = stats.Result{}
	} else {
		m.res = stats.Compute(m.obs, m.cfg)
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	applyDataTable(m, m.rows, width, bodyHeight, true)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.cfg, m.obs, m.res, width))
	m.viewports[tabCharts].SetContent(renderCharts(m.cfg, m.obs, m.res, width))
	m.viewports[tabSummary].SetContent(wrapLines(renderSummaryText(m.cfg, m.res), width))
}

func (m *Model) startSettings() (tea.Model, tea.Cmd) {
	m.settingsMode = true
	m.settingsError = ""
	m.setInputsFromConfig()
	return m, m.setSettingsIndex(0)
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.settingsMode = false
		m.settingsError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applySettings(); err != nil {
			m.settingsError = err.Error()
			return m, nil
		}
		m.settingsMode = false
		m.settingsError = ""
		m.statusMsg = ""
		m.errMsg = ""
		m.recompute()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setSettingsIndex(m.settingsIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setSettingsIndex(m.settingsIndex - 1)
	}
	var cmd tea.Cmd
	m.settingsInputs[m.settingsIndex], cmd = m.settingsInputs[m.settingsIndex].Update(msg)
	return m, cmd
}

func (m *Model) setSettingsIndex(idx int) tea.Cmd {
	count := len(m.settingsInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.settingsIndex = idx
	var cmd tea.Cmd
	for i := range m.settingsInputs {
		if i == m.settingsIndex {
			cmd = m.settingsInputs[i].Focus()
		} else {
			m.settingsInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applySettings() error {
	seedsInput := strings.TrimSpace(m.settingsInputs[0].Value())
	if seedsInput == "" {
		return fmt.Errorf("total seeds is required")
	}
	seeds, err := strconv.Atoi(seedsInput)
	if err != nil || seeds < 1 {
		return fmt.Errorf("invalid total seeds (use integer >= 1)")
	}

	unweighted, err := parseYesNo(m.settingsInputs[1].Value())
	if err != nil {
		return err
	}

	exportPath := strings.TrimSpace(m.settingsInputs[2].Value())
	if exportPath == "" {
		return fmt.Errorf("export path is required")
	}

	m.cfg.TotalSeeds = seeds
	m.cfg.Unweighted = unweighted
	m.exportPath = exportPath
	return nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid unweighted value (use y or n)")
}

func (m *Model) startEdit(rowIdx int) (tea.Model, tea.Cmd) {
	m.editMode = true
	m.editError = ""
	m.editRow = -1
	m.editInputs[0].SetValue("")
	m.editInputs[1].SetValue("")
	if rowIdx >= 0 && rowIdx < len(m.rows) {
		m.editRow = rowIdx
		m.editInputs[0].SetValue(m.rows[rowIdx].Day)
		m.editInputs[1].SetValue(m.rows[rowIdx].Count)
	}
	return m, m.setEditIndex(0)
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editMode = false
		m.editError = ""
		return m, nil
	case tea.KeyEnter:
		appended := m.editRow < 0
		if err := m.applyEdit(); err != nil {
			m.editError = err.Error()
			return m, nil
		}
		m.editMode = false
		m.editError = ""
		m.statusMsg = ""
		m.errMsg = ""
		m.recompute()
		if appended && len(m.rows) > 0 {
			m.dataTable.SetCursor(len(m.rows) - 1)
		}
		return m, nil
	case tea.KeyTab:
		return m, m.setEditIndex(m.editIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setEditIndex(m.editIndex - 1)
	}
	var cmd tea.Cmd
	m.editInputs[m.editIndex], cmd = m.editInputs[m.editIndex].Update(msg)
	return m, cmd
}

func (m *Model) setEditIndex(idx int) tea.Cmd {
	count := len(m.editInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.editIndex = idx
	var cmd tea.Cmd
	for i := range m.editInputs {
		if i == m.editIndex {
			cmd = m.editInputs[i].Focus()
		} else {
			m.editInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyEdit() error {
	day := strings.TrimSpace(m.editInputs[0].Value())
	count := strings.TrimSpace(m.editInputs[1].Value())
	if _, ok := dataset.ParseNumber(day); !ok {
		return fmt.Errorf("day must be a number")
	}
	if _, ok := dataset.ParseNumber(count); !ok {
		return fmt.Errorf("count must be a number")
	}
	row := dataset.Row{Day: day, Count: count}
	if m.editRow >= 0 && m.editRow < len(m.rows) {
		m.rows[m.editRow] = row
		return nil
	}
	m.rows = append(m.rows, row)
	return nil
}

func (m *Model) deleteRow() {
	if len(m.rows) == 0 {
		return
	}
	idx := m.dataTable.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return
	}
	m.rows = append(m.rows[:idx], m.rows[idx+1:]...)
	m.statusMsg = fmt.Sprintf("Removed row %d", idx+1)
	m.errMsg = ""
	m.recompute()
	m.updateLayout()
}

func (m *Model) exportTable() {
	if model.TotalCount(m.obs) == 0 {
		m.errMsg = "no valid observations to export"
		m.statusMsg = ""
		m.updateLayout()
		return
	}
	f, err := os.Create(m.exportPath)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to create export file: %v", err)
		m.statusMsg = ""
		m.updateLayout()
		return
	}
	defer f.Close()
	if err := dataset.ExportTable(f, m.obs, m.res.CumulativeCounts, m.res.CumulativePct); err != nil {
		m.errMsg = fmt.Sprintf("failed to export table: %v", err)
		m.statusMsg = ""
		m.updateLayout()
		return
	}
	m.errMsg = ""
	m.statusMsg = fmt.Sprintf("Exported %d rows to %s", len(m.obs), m.exportPath)
	m.updateLayout()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
