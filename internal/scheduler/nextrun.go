package scheduler

import (
	"fmt"
	"time"

	"assettrack-backend/internal/models"
)

// NextRun computes the next run instant for a report schedule. ScheduledTime
// ("HH:MM") is interpreted in loc, a fixed UTC-offset zone; the result is
// returned in UTC for storage. Weekday numbering runs Monday=0 through
// Sunday=6. An unrecognized frequency falls back to daily.
func NextRun(s models.ReportSchedule, now time.Time, loc *time.Location) time.Time {
	nowLocal := now.In(loc)

	var hours, minutes int
	if _, err := fmt.Sscanf(s.ScheduledTime, "%d:%d", &hours, &minutes); err != nil {
		hours, minutes = 2, 0
	}
	at := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, hours, minutes, 0, 0, loc)
	}
	next := at(nowLocal.Year(), nowLocal.Month(), nowLocal.Day())

	switch s.Frequency {
	case models.FrequencyWeekly:
		target := weekdayMonBased(nowLocal.Weekday())
		if s.FrequencyDay != nil {
			target = *s.FrequencyDay
		}
		days := ((target-weekdayMonBased(nowLocal.Weekday()))%7 + 7) % 7
		if days == 0 && !next.After(nowLocal) {
			days = 7
		}
		next = next.AddDate(0, 0, days)

	case models.FrequencyMonthly:
		targetDay := nowLocal.Day()
		if s.FrequencyDay != nil {
			targetDay = *s.FrequencyDay
		}
		year, month := nowLocal.Year(), nowLocal.Month()
		if targetDay > daysInMonth(year, month) {
			// day does not exist this month, roll to the next one
			year, month = nextMonth(year, month)
			next = at(year, month, clampDay(targetDay, year, month))
			break
		}
		next = at(year, month, targetDay)
		passed := targetDay < nowLocal.Day() ||
			(targetDay == nowLocal.Day() && !next.After(nowLocal))
		if passed {
			year, month = nextMonth(year, month)
			next = at(year, month, clampDay(targetDay, year, month))
		}

	case models.FrequencyYearly:
		targetMonth := nowLocal.Month()
		if s.FrequencyMonth != nil {
			targetMonth = time.Month(*s.FrequencyMonth)
		}
		targetDay := nowLocal.Day()
		if s.FrequencyDay != nil {
			targetDay = *s.FrequencyDay
		}
		year := nowLocal.Year()
		next = at(year, targetMonth, clampDay(targetDay, year, targetMonth))
		passed := targetMonth < nowLocal.Month() ||
			(targetMonth == nowLocal.Month() && targetDay < nowLocal.Day()) ||
			(targetMonth == nowLocal.Month() && targetDay == nowLocal.Day() && !next.After(nowLocal))
		if passed {
			year++
			next = at(year, targetMonth, clampDay(targetDay, year, targetMonth))
		}

	default: // daily
		if !next.After(nowLocal) {
			next = next.AddDate(0, 0, 1)
		}
	}

	return next.UTC()
}

// weekdayMonBased maps Go's Sunday=0 weekday to Monday=0.
func weekdayMonBased(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(day, year int, month time.Month) int {
	if max := daysInMonth(year, month); day > max {
		return max
	}
	if day < 1 {
		return 1
	}
	return day
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
