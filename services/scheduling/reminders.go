package scheduling

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"studioflow/models"
)

var reminderOffsets = map[models.ReminderOffset]time.Duration{
	models.OffsetHours24: 24 * time.Hour,
	models.OffsetHours1:  time.Hour,
}

func validReminderRecipient(r models.ReminderRecipient) bool {
	switch r {
	case models.RecipientClient, models.RecipientTeam, models.RecipientBoth:
		return true
	}
	return false
}

// validateReminderSpecs rejects unknown offsets and recipients. It runs
// as part of fail-fast input validation, before anything is written.
func validateReminderSpecs(specs []models.ReminderSpec) error {
	for i, spec := range specs {
		if _, ok := reminderOffsets[spec.Offset]; !ok {
			return newValidationError("reminders", "unknown offset %q at index %d", spec.Offset, i)
		}
		if !validReminderRecipient(spec.Recipient) {
			return newValidationError("reminders", "unknown recipient %q at index %d", spec.Recipient, i)
		}
	}
	return nil
}

// ScheduleReminders resolves reminder specs against a session start
// time, ordered by fire time. A fire time already in the past is kept
// and flagged FireImmediately rather than dropped, so a same-day booking
// still gets its reminder. Identical specs are not deduplicated; a
// caller that passes the same rule twice gets two reminders.
func ScheduleReminders(booking *models.Booking, specs []models.ReminderSpec, now time.Time) ([]models.ScheduledReminder, error) {
	if err := validateReminderSpecs(specs); err != nil {
		return nil, err
	}

	reminders := make([]models.ScheduledReminder, 0, len(specs))
	for _, spec := range specs {
		fireAt := booking.StartTime.Add(-reminderOffsets[spec.Offset])
		reminders = append(reminders, models.ScheduledReminder{
			ID:              uuid.New().String(),
			OrgID:           booking.OrgID,
			BookingID:       booking.ID,
			FireAt:          fireAt,
			Offset:          spec.Offset,
			Channel:         spec.Channel,
			Recipient:       spec.Recipient,
			FireImmediately: fireAt.Before(now),
			CreatedAt:       now,
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].FireAt.Before(reminders[j].FireAt)
	})
	return reminders, nil
}
