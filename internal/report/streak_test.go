package report

import (
	"slices"
	"testing"
	"time"

	"github.com/streakly/streakly/internal/model"
)

var day0 = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

// entriesFor builds entries on day offsets from day0 with the given completion.
func entriesFor(offsets []int, completed []bool) []*model.HabitEntry {
	entries := make([]*model.HabitEntry, len(offsets))
	for i, off := range offsets {
		entries[i] = &model.HabitEntry{
			Date:      day0.AddDate(0, 0, off),
			Completed: completed[i],
		}
	}
	return entries
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name      string
		offsets   []int
		completed []bool
		want      []int
		highest   int
	}{
		{
			name: "empty",
			want: nil,
		},
		{
			name:      "all completed without gaps",
			offsets:   []int{0, 1, 2, 3, 4},
			completed: []bool{true, true, true, true, true},
			want:      []int{5},
			highest:   5,
		},
		{
			name:      "missing day splits runs",
			offsets:   []int{0, 1, 3, 4},
			completed: []bool{true, true, true, true},
			want:      []int{2, 2},
			highest:   2,
		},
		{
			name:      "uncompleted day splits runs",
			offsets:   []int{0, 1, 2, 3, 4, 5},
			completed: []bool{true, false, true, true, true, false},
			want:      []int{1, 3},
			highest:   3,
		},
		{
			name:      "nothing completed",
			offsets:   []int{0, 1, 2},
			completed: []bool{false, false, false},
			want:      nil,
		},
		{
			name:      "gap after uncompleted day",
			offsets:   []int{0, 1, 5, 6, 7},
			completed: []bool{true, false, true, true, false},
			want:      []int{1, 2},
			highest:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Streaks(entriesFor(tt.offsets, tt.completed))
			if !slices.Equal(got, tt.want) {
				t.Fatalf("expected streaks %v, got %v", tt.want, got)
			}
			if h := HighestStreak(got); h != tt.highest {
				t.Fatalf("expected highest streak %d, got %d", tt.highest, h)
			}
		})
	}
}

func TestStreaksIgnoresTimeOfDay(t *testing.T) {
	entries := []*model.HabitEntry{
		{Date: day0.Add(23 * time.Hour), Completed: true},
		{Date: day0.AddDate(0, 0, 1).Add(time.Hour), Completed: true},
	}

	got := Streaks(entries)
	if !slices.Equal(got, []int{2}) {
		t.Fatalf("expected [2], got %v", got)
	}
}
