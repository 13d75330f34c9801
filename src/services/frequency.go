package services

import (
	"time"

	"asset-ops/src/apperrors"
	"asset-ops/src/models"
)

// ValidateFrequency checks a schedule's frequency configuration. The
// value/unit pair is only meaningful for custom schedules and is ignored
// otherwise.
func ValidateFrequency(scheduleType models.ScheduleType, freqValue *int, freqUnit *models.FrequencyUnit) error {
	if !scheduleType.Valid() {
		return apperrors.InvalidSchedule("unknown schedule type %q", scheduleType)
	}
	if scheduleType != models.ScheduleTypeCustom {
		return nil
	}
	if freqValue == nil || *freqValue <= 0 {
		return apperrors.InvalidSchedule("custom schedule requires a positive frequency value")
	}
	if freqUnit == nil || !freqUnit.Valid() {
		return apperrors.InvalidSchedule("custom schedule requires a frequency unit of days, weeks or months")
	}
	return nil
}

// NextDueDate computes the next due date after ref for the given schedule
// configuration. Pure; no side effects.
func NextDueDate(ref time.Time, scheduleType models.ScheduleType, freqValue *int, freqUnit *models.FrequencyUnit) (time.Time, error) {
	if err := ValidateFrequency(scheduleType, freqValue, freqUnit); err != nil {
		return time.Time{}, err
	}

	switch scheduleType {
	case models.ScheduleTypeDaily:
		return ref.AddDate(0, 0, 1), nil
	case models.ScheduleTypeWeekly:
		return ref.AddDate(0, 0, 7), nil
	case models.ScheduleTypeMonthly:
		return addMonthsClamped(ref, 1), nil
	case models.ScheduleTypeQuarterly:
		return addMonthsClamped(ref, 3), nil
	case models.ScheduleTypeYearly:
		return addMonthsClamped(ref, 12), nil
	case models.ScheduleTypeCustom:
		switch *freqUnit {
		case models.FrequencyUnitDays:
			return ref.AddDate(0, 0, *freqValue), nil
		case models.FrequencyUnitWeeks:
			return ref.AddDate(0, 0, 7**freqValue), nil
		default:
			return addMonthsClamped(ref, *freqValue), nil
		}
	}

	return time.Time{}, apperrors.InvalidSchedule("unknown schedule type %q", scheduleType)
}

// addMonthsClamped adds calendar months, clamping the day of month to the
// target month's last day instead of letting it spill over (Jan 31 + 1
// month is Feb 28/29, not Mar 2/3).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	m := int(month) + months
	year += (m - 1) / 12
	m = (m-1)%12 + 1

	if last := lastDayOfMonth(year, time.Month(m)); day > last {
		day = last
	}

	hour, min, sec := t.Clock()
	return time.Date(year, time.Month(m), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
