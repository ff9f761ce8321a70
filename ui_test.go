package main

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizedModel(t *testing.T) Model {
	t.Helper()
	m := newModel(exampleReport(t), DefaultUnit)
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := newModel(exampleReport(t), DefaultUnit)
	assert.Equal(t, "Загрузка...", m.View())
}

func TestModel_View(t *testing.T) {
	view := sizedModel(t).View()

	assert.Contains(t, view, "World tick")
	assert.Contains(t, view, "Adding Foo")
	assert.Contains(t, view, "строк: 3, совпало: 3, категорий: 2")
	assert.Contains(t, view, "█")
}

func TestModel_CursorMovement(t *testing.T) {
	m := sizedModel(t)
	require.Equal(t, "World tick", m.selected().Name)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "Adding Foo", m.selected().Name)

	// за последнюю строку не уходим
	m = update(t, m, runes("j"))
	assert.Equal(t, "Adding Foo", m.selected().Name)

	m = update(t, m, runes("k"))
	assert.Equal(t, "World tick", m.selected().Name)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "World tick", m.selected().Name)
}

func TestModel_Filter(t *testing.T) {
	m := sizedModel(t)

	m = update(t, m, runes("/"))
	require.True(t, m.filterMode)

	m = update(t, m, runes("add"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.filterMode)
	assert.Equal(t, "add", m.filter)
	require.Len(t, m.visible, 1)
	assert.Equal(t, "Adding Foo", m.selected().Name)
	assert.NotContains(t, m.viewport.View(), "World tick")
}

func TestModel_FilterCancel(t *testing.T) {
	m := sizedModel(t)

	m = update(t, m, runes("/"))
	m = update(t, m, runes("nothing"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.filterMode)
	assert.Empty(t, m.filter)
	assert.Len(t, m.visible, 2)
}

func TestModel_FilterNoMatch(t *testing.T) {
	m := sizedModel(t)

	m = update(t, m, runes("/"))
	m = update(t, m, runes("zzz"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.visible)
	assert.Nil(t, m.selected())
	view := m.View()
	assert.Contains(t, view, "Нет категорий")
	assert.Contains(t, view, "Нет данных для гистограммы")
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := sizedModel(t).Update(key)
		require.NotNil(t, cmd, key.String())
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, key.String())
	}
}

func TestModel_HistogramSingleValue(t *testing.T) {
	m := sizedModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	hist := m.renderHistogram()
	lines := strings.Split(hist, "\n")
	require.Len(t, lines, histHeight+1)
	// единственное значение попадает в первый столбец на всю высоту
	for _, line := range lines[:histHeight] {
		assert.True(t, strings.HasPrefix(line, "█"), line)
	}
	assert.True(t, strings.HasPrefix(lines[histHeight], "200"))
}

func TestModel_HistogramBins(t *testing.T) {
	m := sizedModel(t)

	hist := m.renderHistogram()
	lines := strings.Split(hist, "\n")
	bottom := []rune(lines[histHeight-1])

	// 100 — первый столбец, 300 — последний
	assert.Equal(t, '█', bottom[0])
	assert.Equal(t, '█', bottom[len(bottom)-1])
	assert.Equal(t, 2, strings.Count(lines[histHeight-1], "█"))
	assert.True(t, strings.HasPrefix(lines[histHeight], "100"))
	assert.True(t, strings.HasSuffix(lines[histHeight], "300"))
}

func TestModel_TableAlignsNonASCIINames(t *testing.T) {
	report, err := AnalyzeReader(context.Background(), strings.NewReader(
		"0:00:00.1 [info] World tick took: 1\n"+
			"0:00:00.2 [info] Adding Игрок took: 2\n"))
	require.NoError(t, err)

	m := update(t, newModel(report, DefaultUnit), tea.WindowSizeMsg{Width: 120, Height: 40})
	rows := strings.Split(m.renderTable(), "\n")
	require.Len(t, rows, 3)

	// имя 12 символов + колонки фиксированной ширины
	assert.Equal(t, 12+1+8+1+14+1+12+1+12+1+14, utf8.RuneCountInString(rows[2]))
	assert.True(t, strings.HasPrefix(rows[2], "Adding Игрок "))
}
