package streak

import (
	"testing"
	"time"
)

func ptr(t time.Time) *time.Time { return &t }

func TestNextActivityStreak(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		prev      int
		last      *time.Time
		frequency Frequency
		want      int
	}{
		{"first_completion", 0, nil, FrequencyDaily, 1},
		{"first_completion_ignores_prev", 7, nil, FrequencyWeekly, 1},
		{"daily_within_window", 3, ptr(now.Add(-47 * time.Hour)), FrequencyDaily, 4},
		{"daily_exactly_48h", 3, ptr(now.Add(-48 * time.Hour)), FrequencyDaily, 4},
		{"daily_past_window", 3, ptr(now.Add(-48*time.Hour - time.Second)), FrequencyDaily, 1},
		{"weekly_within_window", 2, ptr(now.Add(-13 * 24 * time.Hour)), FrequencyWeekly, 3},
		{"weekly_exactly_336h", 2, ptr(now.Add(-336 * time.Hour)), FrequencyWeekly, 3},
		{"weekly_past_window", 2, ptr(now.Add(-15 * 24 * time.Hour)), FrequencyWeekly, 1},
		{"custom_always_increments", 5, ptr(now.Add(-90 * 24 * time.Hour)), FrequencyCustom, 6},
		{"unknown_frequency_increments", 1, ptr(now.Add(-365 * 24 * time.Hour)), Frequency("monthly"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextActivityStreak(tt.prev, tt.last, now, tt.frequency)
			if got != tt.want {
				t.Errorf("NextActivityStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCounterAdvance(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }

	t.Run("no_prior_initialises_to_one", func(t *testing.T) {
		got := Counter{}.Advance(day(1, 9))
		if got.Count != 1 {
			t.Errorf("count = %d, want 1", got.Count)
		}
		if got.LastAt == nil || !got.LastAt.Equal(day(1, 9)) {
			t.Errorf("LastAt = %v, want %v", got.LastAt, day(1, 9))
		}
	})

	t.Run("same_day_unchanged", func(t *testing.T) {
		c := Counter{Count: 4, LastAt: ptr(day(5, 1))}
		got := c.Advance(day(5, 23))
		if got.Count != 4 {
			t.Errorf("count = %d, want 4", got.Count)
		}
		if !got.LastAt.Equal(day(5, 23)) {
			t.Errorf("LastAt = %v, want %v", got.LastAt, day(5, 23))
		}
	})

	t.Run("consecutive_days_increment", func(t *testing.T) {
		c := Counter{Count: 4, LastAt: ptr(day(5, 23))}
		got := c.Advance(day(6, 0))
		if got.Count != 5 {
			t.Errorf("count = %d, want 5", got.Count)
		}
	})

	t.Run("gap_resets", func(t *testing.T) {
		c := Counter{Count: 9, LastAt: ptr(day(5, 12))}
		got := c.Advance(day(7, 12))
		if got.Count != 1 {
			t.Errorf("count = %d, want 1", got.Count)
		}
		if !got.LastAt.Equal(day(7, 12)) {
			t.Errorf("LastAt = %v, want %v", got.LastAt, day(7, 12))
		}
	})

	t.Run("backdated_event_ignored", func(t *testing.T) {
		c := Counter{Count: 3, LastAt: ptr(day(10, 12))}
		got := c.Advance(day(8, 12))
		if got.Count != 3 {
			t.Errorf("count = %d, want 3", got.Count)
		}
		if !got.LastAt.Equal(day(10, 12)) {
			t.Errorf("LastAt moved backwards to %v", got.LastAt)
		}
	})

	t.Run("repeated_same_day_events_never_change_count", func(t *testing.T) {
		c := Counter{}.Advance(day(1, 8))
		for h := 9; h < 24; h++ {
			c = c.Advance(day(1, h))
		}
		if c.Count != 1 {
			t.Errorf("count = %d, want 1", c.Count)
		}
	})

	t.Run("streak_over_a_week", func(t *testing.T) {
		c := Counter{}
		for d := 1; d <= 7; d++ {
			c = c.Advance(day(d, 20))
		}
		if c.Count != 7 {
			t.Errorf("count = %d, want 7", c.Count)
		}
	})
}

func TestDaysBetween(t *testing.T) {
	loc := time.FixedZone("UTC+6", 6*60*60)

	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"same_instant", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 0},
		{"late_to_early_next_day", time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC), 1},
		{"month_boundary", time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), 1},
		{"leap_day", time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 2},
		{"negative", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), -2},
		// 20:00 UTC on Jan 1 is 02:00 on Jan 2 in UTC+6.
		{"normalised_in_target_location", time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 9, 0, 0, 0, loc), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}
