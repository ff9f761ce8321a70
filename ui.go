package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hyp3rd/ewrap"
)

const histHeight = 5

var accent = lipgloss.Color("#874BFD")

// Model — состояние интерактивного просмотра отчёта.
type Model struct {
	report  *Report
	unit    string
	visible []*CategoryStats
	cursor  int
	filter  string

	width  int
	height int

	filterMode bool
	textInput  textinput.Model
	viewport   viewport.Model
	status     string
}

func newModel(report *Report, unit string) Model {
	ti := textinput.New()
	ti.Placeholder = "фильтр категорий"
	ti.CharLimit = 128

	m := Model{
		report:    report,
		unit:      unit,
		textInput: ti,
		viewport:  viewport.New(0, 0),
	}
	m.applyFilter("")
	return m
}

// runUI запускает интерактивный просмотр. Если лог пришёл со стандартного ввода,
// клавиатура читается из терминала.
func runUI(report *Report, unit string, inputFromTTY bool) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if inputFromTTY {
		opts = append(opts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(newModel(report, unit), opts...).Run(); err != nil {
		return ewrap.Wrap(err, "tui")
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

// applyFilter оставляет категории, в имени которых есть подстрока filter (без учёта регистра).
func (m *Model) applyFilter(filter string) {
	m.filter = filter
	m.visible = nil
	needle := strings.ToLower(filter)
	for _, c := range m.report.Categories {
		if needle == "" || strings.Contains(strings.ToLower(c.Name), needle) {
			m.visible = append(m.visible, c)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
	m.viewport.SetContent(strings.Join(textLines(&Report{Categories: m.visible}, m.unit), "\n"))
}

func (m Model) selected() *CategoryStats {
	if len(m.visible) == 0 {
		return nil
	}
	return m.visible[m.cursor]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.filterMode {
			switch msg.String() {
			case "enter":
				m.filterMode = false
				m.textInput.Blur()
				m.applyFilter(strings.TrimSpace(m.textInput.Value()))
				m.resize()
				return m, nil
			case "esc":
				m.filterMode = false
				m.textInput.Blur()
				m.textInput.SetValue(m.filter)
				return m, nil
			}
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case "/":
			m.filterMode = true
			m.status = ""
			return m, m.textInput.Focus()
		case "y":
			text := strings.Join(textLines(&Report{Categories: m.visible}, m.unit), "\n")
			if err := clipboard.WriteAll(text); err != nil {
				m.status = "не удалось скопировать: " + err.Error()
			} else {
				m.status = "отчёт скопирован в буфер обмена"
			}
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// resize отдаёт вьюпорту место, оставшееся после таблицы, гистограммы и строки ввода.
func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	used := 1 + // заголовок
		len(m.visible) + 1 + 2 + // таблица с рамкой
		histHeight + 1 + 2 + // гистограмма с подписями и рамкой
		3 + // строка ввода
		2 + // рамка вьюпорта
		1 // статус
	m.viewport.Width = m.width - 2
	m.viewport.Height = max(m.height-used, 3)
}

// View отвечает за отрисовку интерфейса
func (m Model) View() string {
	if m.width == 0 {
		return "Загрузка..."
	}

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)

	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("строк: %d, совпало: %d, категорий: %d", m.report.Lines, m.report.Matched, len(m.report.Categories)))

	tableBox := borderStyle.Width(m.width - borderStyle.GetHorizontalFrameSize() + 2).Render(m.renderTable())
	histogramBox := borderStyle.Width(m.width - borderStyle.GetHorizontalFrameSize() + 2).Render(m.renderHistogram())

	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(accent).
		Padding(0, 1)

	var labelText string
	if m.filterMode {
		labelText = lipgloss.NewStyle().Bold(true).Render("flt")
	} else {
		labelText = lipgloss.NewStyle().Bold(true).Render("cmd")
	}

	input := m.textInput.View()
	if !m.filterMode {
		input = "/ фильтр  ↑/↓ выбор  y копировать  q выход"
		if m.filter != "" {
			input = "[" + m.filter + "]  " + input
		}
	}
	commandInput := inputStyle.Width(m.width - inputStyle.GetHorizontalFrameSize() + 2).Render(labelText + " > " + input)

	reportStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent)
	reportOutput := reportStyle.Width(m.width - reportStyle.GetHorizontalFrameSize()).Render(m.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		tableBox,
		histogramBox,
		commandInput,
		reportOutput,
		m.status,
	)
}

// renderTable рисует таблицу категорий, выбранная строка выделена.
func (m Model) renderTable() string {
	if len(m.visible) == 0 {
		return "Нет категорий"
	}

	nameWidth := utf8.RuneCountInString("Категория")
	for _, c := range m.visible {
		nameWidth = max(nameWidth, utf8.RuneCountInString(c.Name))
	}

	row := func(name, count, avg, maxV, minV, std string) string {
		return fmt.Sprintf("%-*s %8s %14s %12s %12s %14s", nameWidth, name, count, avg, maxV, minV, std)
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(row("Категория", "Кол-во", "Среднее", "Макс", "Мин", "Ст.откл")))
	selected := lipgloss.NewStyle().Reverse(true)
	for i, c := range m.visible {
		line := row(c.Name,
			strconv.Itoa(c.Count),
			strconv.FormatFloat(c.Average(), 'f', 2, 64),
			strconv.FormatInt(c.Max, 10),
			strconv.FormatInt(c.Min, 10),
			strconv.FormatFloat(c.StdDev(), 'f', 2, 64))
		sb.WriteString("\n")
		if i == m.cursor {
			sb.WriteString(selected.Render(line))
		} else {
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// Визуализация распределения длительностей выбранной категории
func (m Model) renderHistogram() string {
	c := m.selected()
	if c == nil {
		return "Нет данных для гистограммы"
	}

	histWidth := m.width - 4 // 2 символа на каждую сторону рамки
	if histWidth < 2 {
		return "Недостаточно места для гистограммы"
	}

	span := c.Max - c.Min
	if span == 0 {
		span = 1
	}

	binCounts := make([]int, histWidth)
	for _, v := range c.Values {
		binIdx := int(float64(v-c.Min) / float64(span) * float64(histWidth))
		if binIdx >= histWidth {
			binIdx = histWidth - 1
		}
		binCounts[binIdx]++
	}

	maxCount := 0
	for _, n := range binCounts {
		if n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	var sb strings.Builder

	for i := 0; i < histHeight; i++ {
		for _, count := range binCounts {
			barHeight := (count * histHeight) / maxCount
			if count > 0 && barHeight == 0 {
				barHeight = 1
			}
			if histHeight-i-1 < barHeight {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	startLabel := strconv.FormatInt(c.Min, 10)
	midLabel := strconv.FormatInt(c.Min+(c.Max-c.Min)/2, 10)
	endLabel := strconv.FormatInt(c.Max, 10)

	labelRow := make([]rune, histWidth)
	for i := range labelRow {
		labelRow[i] = ' '
	}
	copy(labelRow, []rune(startLabel))
	midPos := histWidth/2 - len(midLabel)/2
	if midPos > len(startLabel) && midPos+len(midLabel) < histWidth-len(endLabel) {
		copy(labelRow[midPos:], []rune(midLabel))
	}
	endPos := histWidth - len(endLabel)
	if endPos > len(startLabel) {
		copy(labelRow[endPos:], []rune(endLabel))
	}
	sb.WriteString(string(labelRow))

	return sb.String()
}
