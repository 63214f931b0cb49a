package scheduling

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
)

// Discriminable failure causes. The CLI matches these with errors.Is to
// phrase its messages; nothing here ever panics across the boundary.
var (
	ErrNotFound      = errors.New("appointment not found")
	ErrConflict      = errors.New("scheduling conflict: doctor is not available at this time")
	ErrPastDate      = errors.New("cannot schedule appointments in the past")
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTime   = errors.New("invalid time, expected HH:MM")
	ErrInvalidStatus = errors.New("invalid appointment status")
	ErrStorage       = errors.New("failed to persist appointment data")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Service enforces the no-double-booking invariant and mediates
// appointment create/update/cancel against the repository. Every
// operation reloads the collection before deciding; no state is cached
// between calls.
type Service struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// WithClock overrides the clock used for the past-date rule and audit
// stamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SlotAvailable reports whether doctorID is free around timeOfDay on
// date. Two non-cancelled appointments of the same doctor on the same
// date must start at least MinGap apart; exactly MinGap is allowed.
// excludeID skips the appointment being rescheduled so it does not
// conflict with itself; pass "" for a new booking.
//
// The check short-circuits on the first conflicting appointment.
func (s *Service) SlotAvailable(doctorID, date, timeOfDay, excludeID string) bool {
	candidate, err := time.Parse(timeLayout, timeOfDay)
	if err != nil {
		return false
	}

	records, _ := s.repo.Load()
	for _, appt := range records {
		if appt.DoctorID != doctorID || appt.Date != date {
			continue
		}
		if appt.Cancelled() || appt.ID == excludeID {
			continue
		}

		existing, err := time.Parse(timeLayout, appt.Time)
		if err != nil {
			s.log.Error().Str("appointment_id", appt.ID).Str("time", appt.Time).
				Msg("stored appointment has unparseable time, skipping in conflict check")
			continue
		}

		// Both times sit on the parser's reference date, so the
		// difference is pure time-of-day distance.
		gap := candidate.Sub(existing)
		if gap < 0 {
			gap = -gap
		}
		if gap < MinGap {
			return false
		}
	}
	return true
}

// Schedule books a new appointment. The date must not be earlier than
// the current calendar date and the slot must be free. On success the
// appointment is appended to the stored collection and persisted.
func (s *Service) Schedule(patientID, doctorID, date, timeOfDay, notes string) (*Appointment, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
		return nil, ErrInvalidTime
	}

	today := s.now().Format(dateLayout)
	if day.Before(mustParseDate(today)) {
		return nil, ErrPastDate
	}

	if !s.SlotAvailable(doctorID, date, timeOfDay, "") {
		return nil, ErrConflict
	}

	records, _ := s.repo.Load()
	appt := NewAppointment(patientID, doctorID, date, timeOfDay, notes, s.now())
	records = append(records, appt)

	if s.repo.Save(records).Failed() {
		return nil, ErrStorage
	}

	s.log.Info().Str("appointment_id", appt.ID).Str("doctor_id", doctorID).
		Str("date", date).Str("time", timeOfDay).Msg("appointment scheduled")
	return appt, nil
}

// UpdateParams is a partial appointment patch; nil fields are left
// unchanged.
type UpdateParams struct {
	Date   *string
	Time   *string
	Status *string
	Notes  *string
}

func (p UpdateParams) empty() bool {
	return p.Date == nil && p.Time == nil && p.Status == nil && p.Notes == nil
}

// Update applies a partial patch to an existing appointment. A patch
// touching date or time re-runs the conflict check (excluding the
// appointment itself) before anything is mutated; any conflict aborts
// with no partial change. An empty patch is a successful no-op.
func (s *Service) Update(id string, p UpdateParams) error {
	records, _ := s.repo.Load()
	appt, ok := store.FindByID(records, id)
	if !ok {
		return ErrNotFound
	}

	if p.empty() {
		return nil
	}

	if p.Status != nil && !ValidStatus(*p.Status) {
		return ErrInvalidStatus
	}
	if p.Date != nil {
		if _, err := time.Parse(dateLayout, *p.Date); err != nil {
			return ErrInvalidDate
		}
	}
	if p.Time != nil {
		if _, err := time.Parse(timeLayout, *p.Time); err != nil {
			return ErrInvalidTime
		}
	}

	if p.Date != nil || p.Time != nil {
		effDate, effTime := appt.Date, appt.Time
		if p.Date != nil {
			effDate = *p.Date
		}
		if p.Time != nil {
			effTime = *p.Time
		}
		if !s.SlotAvailable(appt.DoctorID, effDate, effTime, id) {
			return ErrConflict
		}
	}

	store.Patch(records, id, s.now(), func(a *Appointment) {
		if p.Date != nil {
			a.Date = *p.Date
		}
		if p.Time != nil {
			a.Time = *p.Time
		}
		if p.Status != nil {
			a.Status = *p.Status
		}
		if p.Notes != nil {
			a.Notes = *p.Notes
		}
	})

	if s.repo.Save(records).Failed() {
		return ErrStorage
	}

	s.log.Info().Str("appointment_id", id).Msg("appointment updated")
	return nil
}

// Cancel marks an appointment cancelled. Cancelling an already
// cancelled appointment succeeds without touching the record. The
// record is never physically removed.
func (s *Service) Cancel(id string) error {
	records, _ := s.repo.Load()
	appt, ok := store.FindByID(records, id)
	if !ok {
		return ErrNotFound
	}

	if appt.Cancelled() {
		return nil
	}

	store.Patch(records, id, s.now(), func(a *Appointment) {
		a.Status = StatusCancelled
	})

	if s.repo.Save(records).Failed() {
		return ErrStorage
	}

	s.log.Info().Str("appointment_id", id).Msg("appointment cancelled")
	return nil
}

// Get returns a single appointment by id.
func (s *Service) Get(id string) (*Appointment, error) {
	records, _ := s.repo.Load()
	appt, ok := store.FindByID(records, id)
	if !ok {
		return nil, ErrNotFound
	}
	return appt, nil
}

// List returns all appointments, optionally filtered by status.
func (s *Service) List(statusFilter string) []*Appointment {
	records, _ := s.repo.Load()
	if statusFilter == "" {
		return records
	}
	var out []*Appointment
	for _, appt := range records {
		if appt.Status == statusFilter {
			out = append(out, appt)
		}
	}
	return out
}

// ListForDay returns the non-cancelled appointments on a calendar date.
func (s *Service) ListForDay(date string) []*Appointment {
	records, _ := s.repo.Load()
	var out []*Appointment
	for _, appt := range records {
		if appt.Date == date && !appt.Cancelled() {
			out = append(out, appt)
		}
	}
	return out
}

func mustParseDate(date string) time.Time {
	t, _ := time.Parse(dateLayout, date)
	return t
}
