package report

import (
	"strings"
	"testing"
)

func milestoneKeys(ms []Milestone) []string {
	keys := make([]string, len(ms))
	for i, m := range ms {
		keys[i] = m.Key
	}
	return keys
}

func hasMilestone(ms []Milestone, key string) bool {
	for _, m := range ms {
		if m.Key == key {
			return true
		}
	}
	return false
}

func TestComposeZeroState(t *testing.T) {
	r := Compose(nil, 0)

	if r.Tier != TierEmpty {
		t.Fatalf("expected tier %q, got %q", TierEmpty, r.Tier)
	}
	if len(r.Milestones) != 0 {
		t.Fatalf("expected no milestones, got %v", milestoneKeys(r.Milestones))
	}
	if r.OverallCompletionRate != 0 {
		t.Fatalf("expected overall rate 0, got %v", r.OverallCompletionRate)
	}
	if r.Summary == "" {
		t.Fatal("expected a zero-state summary")
	}
}

func TestComposeTiers(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      SummaryTier
	}{
		{"exactly 75 is top", 15, 20, TierTop},
		{"just under 75 is mid", 149, 200, TierMid},
		{"exactly 50 is mid", 10, 20, TierMid},
		{"below 50 is encouragement", 9, 20, TierEncouragement},
		{"no possible days is encouragement", 0, 0, TierEncouragement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compose([]HabitStats{{CompletedDays: tt.completed, TotalDays: tt.total}}, 0)
			if r.Tier != tt.want {
				t.Fatalf("expected tier %q, got %q", tt.want, r.Tier)
			}
		})
	}
}

func TestComposeThresholdUsesExactRate(t *testing.T) {
	// 74.96% displays as 75.0 but stays in the mid tier.
	r := Compose([]HabitStats{{CompletedDays: 7496, TotalDays: 10000}}, 0)

	if r.OverallCompletionRate != 75.0 {
		t.Fatalf("expected displayed rate 75.0, got %v", r.OverallCompletionRate)
	}
	if r.Tier != TierMid {
		t.Fatalf("expected tier %q, got %q", TierMid, r.Tier)
	}
}

func TestComposeTotals(t *testing.T) {
	ongoing := []HabitStats{
		{Name: "a", CompletedDays: 5, TotalDays: 31},
		{Name: "b", CompletedDays: 10, TotalDays: 31},
	}

	r := Compose(ongoing, 3)

	if r.TotalHabits != 5 || r.OngoingHabits != 2 || r.CompletedHabits != 3 {
		t.Fatalf("unexpected counts total=%d ongoing=%d completed=%d", r.TotalHabits, r.OngoingHabits, r.CompletedHabits)
	}
	if r.TotalCompletedDays != 15 || r.TotalPossibleDays != 62 {
		t.Fatalf("expected 15/62 days, got %d/%d", r.TotalCompletedDays, r.TotalPossibleDays)
	}
	if r.OverallCompletionRate != 24.2 {
		t.Fatalf("expected overall rate 24.2, got %v", r.OverallCompletionRate)
	}
	if !strings.Contains(r.Summary, "3 of 5") {
		t.Fatalf("expected summary to mention counts, got %q", r.Summary)
	}
}

func TestComposeMilestones(t *testing.T) {
	t.Run("perfect habit earns every rate badge", func(t *testing.T) {
		r := Compose([]HabitStats{{CompletedDays: 3, TotalDays: 3, CompletionRate: 100, HighestStreak: 3}}, 0)
		for _, key := range []string{"rate_100", "rate_90", "rate_75", "rate_50"} {
			if !hasMilestone(r.Milestones, key) {
				t.Fatalf("expected milestone %q, got %v", key, milestoneKeys(r.Milestones))
			}
		}
		if hasMilestone(r.Milestones, "first_steps") {
			t.Fatal("did not expect fallback milestone")
		}
	})

	t.Run("day and streak badges", func(t *testing.T) {
		r := Compose([]HabitStats{
			{CompletedDays: 20, TotalDays: 31, CompletionRate: 64.5, HighestStreak: 8},
			{CompletedDays: 12, TotalDays: 31, CompletionRate: 38.7, HighestStreak: 2},
		}, 1)

		want := []string{"days_10", "days_30", "streak_7", "finisher", "rate_50"}
		got := milestoneKeys(r.Milestones)
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("expected milestones %v, got %v", want, got)
		}
	})

	t.Run("rate compared after rounding", func(t *testing.T) {
		r := Compose([]HabitStats{{CompletedDays: 1, TotalDays: 2, CompletionRate: Round1(49.96)}}, 0)
		if !hasMilestone(r.Milestones, "rate_50") {
			t.Fatalf("expected rate_50, got %v", milestoneKeys(r.Milestones))
		}
	})

	t.Run("fallback when nothing matched", func(t *testing.T) {
		r := Compose([]HabitStats{{CompletedDays: 1, TotalDays: 31, CompletionRate: 3.2, HighestStreak: 1}}, 0)
		got := milestoneKeys(r.Milestones)
		if len(got) != 1 || got[0] != "first_steps" {
			t.Fatalf("expected only first_steps, got %v", got)
		}
	})

	t.Run("completed habits only still get badges", func(t *testing.T) {
		r := Compose(nil, 2)
		if !hasMilestone(r.Milestones, "finisher") {
			t.Fatalf("expected finisher, got %v", milestoneKeys(r.Milestones))
		}
		if !strings.Contains(r.Milestones[0].Message, "2 habits") {
			t.Fatalf("expected plural message, got %q", r.Milestones[0].Message)
		}
	})
}
