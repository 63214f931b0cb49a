package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
)

// mockRepo models the flat-file repository: Load hands out fresh copies
// the way a JSON reload from disk would, Save replaces the whole
// collection.
type mockRepo struct {
	records  []*Appointment
	saves    int
	failSave bool
}

func (m *mockRepo) Load() ([]*Appointment, store.Fault) {
	out := make([]*Appointment, len(m.records))
	for i, a := range m.records {
		cp := *a
		out[i] = &cp
	}
	return out, store.FaultNone
}

func (m *mockRepo) Save(records []*Appointment) store.Fault {
	if m.failSave {
		return store.FaultWrite
	}
	m.saves++
	m.records = records
	return store.FaultNone
}

func (m *mockRepo) byID(id string) *Appointment {
	for _, a := range m.records {
		if a.ID == id {
			return a
		}
	}
	return nil
}

var testNow = time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, zerolog.Nop()).WithClock(func() time.Time { return testNow })
}

func seedAppointment(repo *mockRepo, doctorID, date, timeOfDay string) *Appointment {
	appt := NewAppointment("patient-1", doctorID, date, timeOfDay, "", testNow)
	repo.records = append(repo.records, appt)
	return appt
}

func TestSchedule_ConflictBoundary(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	seedAppointment(repo, "D1", "2025-06-01", "09:00")
	seedAppointment(repo, "D1", "2025-06-01", "10:00")

	// 29 minutes from the 09:00 appointment: conflict.
	if _, err := svc.Schedule("P1", "D1", "2025-06-01", "09:29", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for 29-minute gap, got %v", err)
	}

	// Exactly 30 minutes: allowed.
	if _, err := svc.Schedule("P1", "D1", "2025-06-01", "09:30", ""); err != nil {
		t.Fatalf("expected 30-minute gap to be allowed, got %v", err)
	}

	// Same time, different date: no conflict.
	if _, err := svc.Schedule("P1", "D1", "2025-06-02", "09:15", ""); err != nil {
		t.Fatalf("expected different date to be conflict-free, got %v", err)
	}

	// Same time, different doctor: no conflict.
	if _, err := svc.Schedule("P1", "D2", "2025-06-01", "09:00", ""); err != nil {
		t.Fatalf("expected different doctor to be conflict-free, got %v", err)
	}
}

func TestSchedule_ConflictEitherSide(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	seedAppointment(repo, "D1", "2025-06-01", "09:30")

	for _, tc := range []struct {
		timeOfDay string
		wantErr   error
	}{
		{"09:01", ErrConflict}, // 29 before
		{"09:59", ErrConflict}, // 29 after
		{"09:00", nil},         // 30 before
		{"10:00", nil},         // 30 after
	} {
		_, err := svc.Schedule("P1", "D1", "2025-06-01", tc.timeOfDay, "")
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("Schedule at %s: got %v, want %v", tc.timeOfDay, err, tc.wantErr)
		}
		// Keep the collection to the single seed appointment between cases.
		repo.records = repo.records[:1]
	}
}

func TestSchedule_Validation(t *testing.T) {
	svc := newTestService(&mockRepo{})

	if _, err := svc.Schedule("P1", "D1", "01-06-2025", "09:00", ""); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := svc.Schedule("P1", "D1", "2025-06-01", "9am", ""); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("expected ErrInvalidTime, got %v", err)
	}
	if _, err := svc.Schedule("P1", "D1", "2025-05-19", "09:00", ""); !errors.Is(err, ErrPastDate) {
		t.Errorf("expected ErrPastDate for yesterday, got %v", err)
	}
	// The current calendar date itself is allowed.
	if _, err := svc.Schedule("P1", "D1", "2025-05-20", "09:00", ""); err != nil {
		t.Errorf("expected today to be schedulable, got %v", err)
	}
}

func TestSchedule_PersistsRecord(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	appt, err := svc.Schedule("P1", "D1", "2025-06-01", "09:00", "first visit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.ID == "" {
		t.Error("expected appointment to get an id")
	}
	if appt.Status != StatusScheduled {
		t.Errorf("expected initial status scheduled, got %s", appt.Status)
	}

	stored := repo.byID(appt.ID)
	if stored == nil {
		t.Fatal("expected appointment to be persisted")
	}
	if stored.Notes != "first visit" {
		t.Errorf("unexpected notes: %s", stored.Notes)
	}
}

func TestSchedule_SaveFailureDiscardsAppend(t *testing.T) {
	repo := &mockRepo{failSave: true}
	svc := newTestService(repo)

	if _, err := svc.Schedule("P1", "D1", "2025-06-01", "09:00", ""); !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Errorf("expected nothing persisted after save failure, got %d records", len(repo.records))
	}
}

func TestCancel_RemovesFromConflictConsideration(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	appt := seedAppointment(repo, "D1", "2025-06-01", "09:00")

	if _, err := svc.Schedule("P1", "D1", "2025-06-01", "09:00", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict before cancellation, got %v", err)
	}

	if err := svc.Cancel(appt.ID); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}
	if got := repo.byID(appt.ID); got == nil || got.Status != StatusCancelled {
		t.Fatal("expected stored appointment to be cancelled")
	}

	// The slot is free again; the cancelled record stays on disk.
	if _, err := svc.Schedule("P1", "D1", "2025-06-01", "09:00", ""); err != nil {
		t.Fatalf("expected slot to be free after cancellation, got %v", err)
	}
	if len(repo.records) != 2 {
		t.Errorf("expected cancelled record to be retained, got %d records", len(repo.records))
	}
}

func TestCancel_Idempotent(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	appt := seedAppointment(repo, "D1", "2025-06-01", "09:00")

	if err := svc.Cancel(appt.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stampAfterFirst := repo.byID(appt.ID).UpdatedAt
	savesAfterFirst := repo.saves

	if err := svc.Cancel(appt.ID); err != nil {
		t.Fatalf("expected cancelling a cancelled appointment to succeed, got %v", err)
	}
	if repo.saves != savesAfterFirst {
		t.Error("expected no write for an already-cancelled appointment")
	}
	if repo.byID(appt.ID).UpdatedAt != stampAfterFirst {
		t.Error("expected record to be unchanged by the second cancel")
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(&mockRepo{})
	if err := svc.Cancel("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func strPtr(s string) *string { return &s }

func TestUpdate_NotesOnlySkipsConflictCheck(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	// Two appointments 15 minutes apart would conflict if re-checked.
	a := seedAppointment(repo, "D1", "2025-06-01", "09:00")
	seedAppointment(repo, "D1", "2025-06-01", "09:15")

	if err := svc.Update(a.ID, UpdateParams{Notes: strPtr("bring referral letter")}); err != nil {
		t.Fatalf("expected notes-only update to succeed, got %v", err)
	}
	if got := repo.byID(a.ID); got.Notes != "bring referral letter" {
		t.Errorf("unexpected notes: %s", got.Notes)
	}
}

func TestUpdate_RescheduleConflicts(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	a := seedAppointment(repo, "D1", "2025-06-01", "09:00")
	seedAppointment(repo, "D1", "2025-06-01", "10:00")

	err := svc.Update(a.ID, UpdateParams{Time: strPtr("09:45")})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if got := repo.byID(a.ID); got.Time != "09:00" {
		t.Errorf("expected aborted update to leave time unchanged, got %s", got.Time)
	}
}

func TestUpdate_RescheduleExcludesSelf(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	a := seedAppointment(repo, "D1", "2025-06-01", "09:00")

	// Moving by 10 minutes only "conflicts" with the appointment's own
	// old slot, which the check must exclude.
	if err := svc.Update(a.ID, UpdateParams{Time: strPtr("09:10")}); err != nil {
		t.Fatalf("expected self-excluding reschedule to succeed, got %v", err)
	}
	if got := repo.byID(a.ID); got.Time != "09:10" {
		t.Errorf("expected time updated, got %s", got.Time)
	}
}

func TestUpdate_DateChangeRechecksConflict(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	a := seedAppointment(repo, "D1", "2025-06-01", "09:00")
	seedAppointment(repo, "D1", "2025-06-02", "09:00")

	// Moving to the other day keeps the time; the existing 09:00 there
	// conflicts.
	if err := svc.Update(a.ID, UpdateParams{Date: strPtr("2025-06-02")}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdate_EmptyPatchIsNoOp(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	a := seedAppointment(repo, "D1", "2025-06-01", "09:00")
	before := *repo.byID(a.ID)

	if err := svc.Update(a.ID, UpdateParams{}); err != nil {
		t.Fatalf("expected empty patch to succeed, got %v", err)
	}
	if repo.saves != 0 {
		t.Error("expected no write for an empty patch")
	}
	if *repo.byID(a.ID) != before {
		t.Error("expected record unchanged by empty patch")
	}
}

func TestUpdate_Validation(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	a := seedAppointment(repo, "D1", "2025-06-01", "09:00")

	if err := svc.Update("missing", UpdateParams{Notes: strPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Update(a.ID, UpdateParams{Status: strPtr("rescheduled")}); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if err := svc.Update(a.ID, UpdateParams{Date: strPtr("June 1st")}); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if err := svc.Update(a.ID, UpdateParams{Time: strPtr("25:99")}); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("expected ErrInvalidTime, got %v", err)
	}
}

func TestUpdate_StatusTransition(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	a := seedAppointment(repo, "D1", "2025-06-01", "09:00")

	if err := svc.Update(a.ID, UpdateParams{Status: strPtr(StatusCompleted)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.byID(a.ID); got.Status != StatusCompleted {
		t.Errorf("expected status completed, got %s", got.Status)
	}
}

func TestGetAndList(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	a := seedAppointment(repo, "D1", "2025-06-01", "09:00")
	b := seedAppointment(repo, "D2", "2025-06-02", "10:00")
	if err := svc.Cancel(b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.Get(a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DoctorID != "D1" {
		t.Errorf("unexpected appointment: %+v", got)
	}
	if _, err := svc.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if all := svc.List(""); len(all) != 2 {
		t.Errorf("expected 2 appointments, got %d", len(all))
	}
	if cancelled := svc.List(StatusCancelled); len(cancelled) != 1 || cancelled[0].ID != b.ID {
		t.Errorf("unexpected cancelled list: %+v", cancelled)
	}

	day := svc.ListForDay("2025-06-02")
	if len(day) != 0 {
		t.Errorf("expected cancelled appointment excluded from day view, got %d", len(day))
	}
	if day := svc.ListForDay("2025-06-01"); len(day) != 1 {
		t.Errorf("expected 1 appointment on 2025-06-01, got %d", len(day))
	}
}

func TestSlotAvailable_InvariantHoldsAcrossCollection(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	times := []string{"09:00", "09:30", "10:00", "13:45"}
	for _, tm := range times {
		if _, err := svc.Schedule("P1", "D1", "2025-06-01", tm, ""); err != nil {
			t.Fatalf("Schedule %s: %v", tm, err)
		}
	}

	// Every persisted pair of non-cancelled same-day appointments is at
	// least MinGap apart.
	for i, a := range repo.records {
		for _, b := range repo.records[i+1:] {
			ta, _ := time.Parse(timeLayout, a.Time)
			tb, _ := time.Parse(timeLayout, b.Time)
			gap := ta.Sub(tb)
			if gap < 0 {
				gap = -gap
			}
			if gap < MinGap {
				t.Errorf("appointments %s and %s violate the minimum gap", a.Time, b.Time)
			}
		}
	}
}
