package report

import (
	"fmt"
	"slices"
)

type SummaryTier string

const (
	TierEmpty         SummaryTier = "empty"
	TierTop           SummaryTier = "top"
	TierMid           SummaryTier = "mid"
	TierEncouragement SummaryTier = "encouragement"
)

const (
	topTierRate = 75.0
	midTierRate = 50.0
)

// Milestone is a badge earned by crossing a fixed threshold.
type Milestone struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Report struct {
	Habits                []HabitStats `json:"habits"`
	TotalHabits           int          `json:"total_habits"`
	OngoingHabits         int          `json:"ongoing_habits"`
	CompletedHabits       int          `json:"completed_habits"`
	TotalCompletedDays    int          `json:"total_completed_days"`
	TotalPossibleDays     int          `json:"total_possible_days"`
	OverallCompletionRate float64      `json:"overall_completion_rate"`
	Tier                  SummaryTier  `json:"tier"`
	Summary               string       `json:"summary"`
	Milestones            []Milestone  `json:"milestones"`
}

// Compose builds a user's report from the stats of their ongoing habits and the
// number of habits they have marked completed. Deleted habits must already be
// excluded by the caller.
func Compose(ongoing []HabitStats, completedHabits int) Report {
	r := Report{
		Habits:          ongoing,
		TotalHabits:     len(ongoing) + completedHabits,
		OngoingHabits:   len(ongoing),
		CompletedHabits: completedHabits,
	}
	if r.Habits == nil {
		r.Habits = []HabitStats{}
	}

	for _, h := range ongoing {
		r.TotalCompletedDays += h.CompletedDays
		r.TotalPossibleDays += h.TotalDays
	}

	rate := CompletionRate(r.TotalCompletedDays, r.TotalPossibleDays)
	r.OverallCompletionRate = Round1(rate)
	r.Tier = tierFor(r.TotalHabits, rate)
	r.Summary = summary(r)
	r.Milestones = milestones(r)

	return r
}

func tierFor(totalHabits int, rate float64) SummaryTier {
	switch {
	case totalHabits == 0:
		return TierEmpty
	case rate >= topTierRate:
		return TierTop
	case rate >= midTierRate:
		return TierMid
	default:
		return TierEncouragement
	}
}

func summary(r Report) string {
	switch r.Tier {
	case TierEmpty:
		return "You are not tracking any habits yet. Pick one small thing to do every day for the next 30 days and start your first streak today."
	case TierTop:
		return fmt.Sprintf("Outstanding! %d of %d habits completed with %.1f%% consistency. %d habits are still running and you have checked off %d of %d days. Keep the momentum going!",
			r.CompletedHabits, r.TotalHabits, r.OverallCompletionRate, r.OngoingHabits, r.TotalCompletedDays, r.TotalPossibleDays)
	case TierMid:
		return fmt.Sprintf("Solid progress: %d of %d habits completed at %.1f%% consistency. %d habits are in progress with %d of %d days done. Showing up is half the battle, now turn those check marks into streaks.",
			r.CompletedHabits, r.TotalHabits, r.OverallCompletionRate, r.OngoingHabits, r.TotalCompletedDays, r.TotalPossibleDays)
	default:
		return fmt.Sprintf("You're on your way: %d of %d habits completed at %.1f%% consistency. You have %d ongoing habits and %d of %d days tracked so far. Small daily wins compound, so check off one more today.",
			r.CompletedHabits, r.TotalHabits, r.OverallCompletionRate, r.OngoingHabits, r.TotalCompletedDays, r.TotalPossibleDays)
	}
}

// rateBadges are checked independently: a habit at 100% earns all four.
var rateBadges = []struct {
	threshold float64
	milestone Milestone
}{
	{100, Milestone{Key: "rate_100", Title: "Perfect Habit Master", Message: "100% completion on a habit. Flawless work!"}},
	{90, Milestone{Key: "rate_90", Title: "Near-Perfect Achiever", Message: "90% or more on a habit. Almost flawless, keep shining!"}},
	{75, Milestone{Key: "rate_75", Title: "Three-Quarter Titan", Message: "75% or more on a habit. Strong and steady!"}},
	{50, Milestone{Key: "rate_50", Title: "Halfway Hero", Message: "50% or more on a habit. Half the battle is won, keep pushing!"}},
}

func milestones(r Report) []Milestone {
	earned := []Milestone{}
	if r.TotalHabits == 0 {
		return earned
	}

	if r.TotalCompletedDays >= 10 {
		earned = append(earned, Milestone{Key: "days_10", Title: "10 Days Consistent", Message: "You have checked off 10 days. Small steps lead to big wins!"})
	}
	if r.TotalCompletedDays >= 30 {
		earned = append(earned, Milestone{Key: "days_30", Title: "30-Day Champion", Message: "30 days of progress. You are building habits like a pro!"})
	}
	if slices.ContainsFunc(r.Habits, func(h HabitStats) bool { return h.HighestStreak >= 7 }) {
		earned = append(earned, Milestone{Key: "streak_7", Title: "Week-Long Warrior", Message: "A 7-day streak. That is serious dedication!"})
	}
	if r.CompletedHabits >= 1 {
		earned = append(earned, Milestone{Key: "finisher", Title: "Habit Finisher", Message: finisherMessage(r.CompletedHabits)})
	}
	for _, badge := range rateBadges {
		if slices.ContainsFunc(r.Habits, func(h HabitStats) bool { return h.CompletionRate >= badge.threshold }) {
			earned = append(earned, badge.milestone)
		}
	}

	if len(earned) == 0 {
		earned = append(earned, Milestone{Key: "first_steps", Title: "First Steps", Message: "Every journey starts somewhere. Keep checking those boxes!"})
	}

	return earned
}

func finisherMessage(n int) string {
	if n == 1 {
		return "You have completed 1 habit. Celebrate your victory!"
	}
	return fmt.Sprintf("You have completed %d habits. Celebrate your victories!", n)
}
