package engine

import (
	"context"
	"fmt"
	"time"
)

const (
	dailySummaryHourUTC   = 20
	weeklyReminderHourUTC = 18
	weeklyReminderWeekday = time.Friday
)

// RunScheduler ticks hourly until ctx is done. Each tick emits summaries for
// every community with a coordination channel. A tick missed across a restart
// is simply skipped, never made up.
func (e *Engine) RunScheduler(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.HourlyTick(time.Now())
		}
	}
}

// HourlyTick emits the daily summary and/or weekly reminder when the current
// UTC hour matches. Counters are read without resetting them; the lazy daily
// rollover happens on the next counted event.
func (e *Engine) HourlyTick(now time.Time) {
	cfg := e.Config()
	utc := now.UTC()

	daily := cfg.DailySummary && utc.Hour() == dailySummaryHourUTC
	weekly := cfg.WeeklySummary && utc.Weekday() == weeklyReminderWeekday && utc.Hour() == weeklyReminderHourUTC
	if !daily && !weekly {
		return
	}

	for _, guildID := range e.platform.Communities() {
		if daily {
			c := e.Stats.Counters(guildID)
			e.platform.SendCoordination(guildID, fmt.Sprintf(
				"📊 **Daily Coordination Summary**\n"+
					"- Approx. messages today: **%d**\n"+
					"- New members today: **%d**\n\n"+
					"Please ensure progression reports for all active groups are updated.\n"+
					"If you haven't uploaded your report, kindly do so today.\n",
				c.Messages, c.NewMembers))
		}
		if weekly {
			e.platform.SendCoordination(guildID,
				"🗓 **Weekly CEIL Coordination Reminder**\n"+
					"- Check progression for N1-N8.\n"+
					"- Identify weak groups (attendance, grammar, reading).\n"+
					"- Prepare issues to raise in the next coordination meeting.\n"+
					"- Update reports and Drive folders accordingly.\n")
		}
	}
}
