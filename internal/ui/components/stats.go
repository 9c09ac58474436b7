package components

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/kanaz/internal/stats"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/ui/theme"
)

// CardTable renders rows[offset:offset+limit] as a bordered table. A
// limit <= 0 renders every row from offset.
func CardTable(rows []stats.CardRow, offset, limit int) string {
	offset = min(max(offset, 0), len(rows))
	end := len(rows)
	if limit > 0 {
		end = min(offset+limit, len(rows))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("#", "Kana", "Roumaji", "Type", "Weight", "Practiced", "Mistakes").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Inherit(theme.TableHeader)
			}
			if col == 4 && offset+row < len(rows) && rows[offset+row].Weight > 1 {
				return s.Foreground(theme.Error)
			}
			return s.Foreground(theme.Text)
		})

	for i, r := range rows[offset:end] {
		t.Row(
			strconv.Itoa(offset+i+1),
			r.Kana,
			r.Roumaji,
			string(r.Type),
			fmt.Sprintf("%.2f", r.Weight),
			strconv.Itoa(r.Practiced),
			strconv.Itoa(r.Mistakes),
		)
	}
	return t.Render()
}

// TypeAccuracyBars renders one accuracy bar per card type.
func TypeAccuracyBars(rows []stats.TypeRow, width int) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := fmt.Sprintf("%s (%d)", r.Type, r.Attempts)
		bar := NewProgressBar(label, r.Accuracy(), true, width)
		bar.LabelWidth = 16
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

// SessionLines renders recent sessions, one per line.
func SessionLines(sessions []store.SessionSummaryRecord) string {
	if len(sessions) == 0 {
		return theme.Hint.Render("No sessions yet.")
	}
	lines := make([]string, 0, len(sessions))
	for _, s := range sessions {
		var acc float64
		if s.Rounds > 0 {
			acc = float64(s.Corrects) / float64(s.Rounds) * 100
		}
		lines = append(lines, theme.Body.Render(fmt.Sprintf(
			"%s  tier %d  %3d rounds  %3.0f%%  best streak %d  %d:%02d",
			s.Timestamp.Local().Format("Jan 02 15:04"),
			s.Tier, s.Rounds, acc, s.BestStreak,
			s.DurationSecs/60, s.DurationSecs%60,
		)))
	}
	return strings.Join(lines, "\n")
}
