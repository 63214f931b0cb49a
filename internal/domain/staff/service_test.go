package staff

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
)

type mockRepo struct {
	records []*Staff
}

func (m *mockRepo) Load() ([]*Staff, store.Fault) {
	out := make([]*Staff, len(m.records))
	for i, s := range m.records {
		cp := *s
		out[i] = &cp
	}
	return out, store.FaultNone
}

func (m *mockRepo) Save(records []*Staff) store.Fault {
	m.records = records
	return store.FaultNone
}

func newTestService(repo *mockRepo) *Service {
	now := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	return NewService(repo, zerolog.Nop()).WithClock(func() time.Time { return now })
}

func TestAdd(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	member, err := svc.Add("Dr. Chen", "Doctor", "555-012-3456", "cardiology")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if member.Role != RoleDoctor {
		t.Errorf("expected role normalized to lowercase, got %q", member.Role)
	}
	if !member.IsDoctor() {
		t.Error("expected IsDoctor to be true")
	}

	if _, err := svc.Add("X", "janitor", "555-012-3456", ""); err == nil {
		t.Error("expected error for unknown role")
	}
	if _, err := svc.Add("", "nurse", "555-012-3456", ""); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := svc.Add("Y", "nurse", "nope", ""); err == nil {
		t.Error("expected error for bad contact")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	member, err := svc.Add("Dr. Chen", "doctor", "555-012-3456", "cardiology")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spec := "pediatrics"
	if err := svc.Update(member.ID, Patch{Specialization: &spec}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.records[0].Specialization != spec {
		t.Errorf("unexpected specialization: %q", repo.records[0].Specialization)
	}

	if err := svc.Update("missing", Patch{Specialization: &spec}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Update(member.ID, Patch{}); err != nil {
		t.Errorf("expected empty patch to succeed, got %v", err)
	}

	if err := svc.Delete(member.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(member.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDoctorsFilter(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	if _, err := svc.Add("Dr. Chen", "doctor", "555-012-3456", "cardiology"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Add("Sam Park", "nurse", "555-987-6543", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doctors := svc.Doctors()
	if len(doctors) != 1 || doctors[0].Name != "Dr. Chen" {
		t.Errorf("unexpected doctors list: %+v", doctors)
	}
}

func TestSearch(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	if _, err := svc.Add("Dr. Chen", "doctor", "555-012-3456", "Cardiology"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Add("Sam Park", "nurse", "555-987-6543", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := svc.Search("cardio"); len(got) != 1 || got[0].Name != "Dr. Chen" {
		t.Errorf("expected specialization match, got %+v", got)
	}
	if got := svc.Search("nurse"); len(got) != 1 || got[0].Name != "Sam Park" {
		t.Errorf("expected role match, got %+v", got)
	}
}
