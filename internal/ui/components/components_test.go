package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanaz/internal/stats"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestTextInputLatinOnly(t *testing.T) {
	ti := NewTextInput("", true, 10)
	for _, r := range "ka" {
		ti, _ = ti.Update(keyPress(r))
	}
	ti, _ = ti.Update(keyPress('か'))
	ti, _ = ti.Update(keyPress('1'))

	if ti.Value() != "ka" {
		t.Errorf("Value() = %q, want %q", ti.Value(), "ka")
	}
}

func TestTextInputReset(t *testing.T) {
	ti := NewTextInput("", false, 10)
	ti.SetValue("shi")
	ti.Submit(true)
	ti.Reset()

	if ti.Value() != "" {
		t.Errorf("Value() after reset = %q", ti.Value())
	}
	if strings.Contains(ti.View(), "✓") {
		t.Error("submitted mark should be cleared")
	}
}

func TestMenuNumberShortcut(t *testing.T) {
	chosen := -1
	item := func(i int) MenuItem {
		return MenuItem{Label: "item", Action: func() tea.Cmd {
			chosen = i
			return nil
		}}
	}
	m := NewMenu([]MenuItem{item(0), item(1), {Label: "off", Disabled: true}})

	m, _ = m.Update(keyPress('2'))
	if chosen != 1 || m.Selected != 1 {
		t.Errorf("chosen = %d selected = %d, want 1", chosen, m.Selected)
	}

	chosen = -1
	m, _ = m.Update(keyPress('3'))
	if chosen != -1 || m.Selected != 1 {
		t.Error("disabled item must not be chosen")
	}
}

func TestMenuNavigationSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b", Disabled: true}, {Label: "c"}})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
}

func TestProgressBarPercent(t *testing.T) {
	view := NewProgressBar("gojuuon", 0.666, true, 40).View()
	if !strings.Contains(view, "67%") {
		t.Errorf("view %q missing rounded percent", view)
	}
}

func TestCardTableWindow(t *testing.T) {
	rows := []stats.CardRow{
		{Kana: "あ", Roumaji: "a", Type: "gojuuon", Weight: 2},
		{Kana: "い", Roumaji: "i", Type: "gojuuon", Weight: 1},
		{Kana: "う", Roumaji: "u", Type: "gojuuon", Weight: 0.5},
	}

	view := CardTable(rows, 1, 1)
	if !strings.Contains(view, "い") {
		t.Errorf("window should contain row 2: %q", view)
	}
	if strings.Contains(view, "あ") || strings.Contains(view, "う") {
		t.Errorf("window should hold only row 2: %q", view)
	}

	all := CardTable(rows, 0, 0)
	for _, k := range []string{"あ", "い", "う", "Weight"} {
		if !strings.Contains(all, k) {
			t.Errorf("full table missing %q", k)
		}
	}
}

func TestSessionLinesEmpty(t *testing.T) {
	if !strings.Contains(SessionLines(nil), "No sessions") {
		t.Error("expected empty-state text")
	}
}
