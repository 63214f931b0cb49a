package patient

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
	"github.com/hms/hms/pkg/validate"
)

var (
	ErrNotFound = errors.New("patient not found")
	ErrStorage  = errors.New("failed to persist patient data")
)

// Service manages the patient collection. Deleting a patient does not
// touch appointments or bills referencing it; references are by
// convention only.
type Service struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Register(name string, age int, gender, contact, history string) (*Patient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if age < 0 || age > 150 {
		return nil, fmt.Errorf("age must be between 0 and 150")
	}
	if !validate.Phone(contact) {
		return nil, fmt.Errorf("contact must be a valid phone number")
	}

	records, _ := s.repo.Load()
	p := NewPatient(strings.TrimSpace(name), age, gender, contact, history, s.now())
	records = append(records, p)

	if s.repo.Save(records).Failed() {
		return nil, ErrStorage
	}

	s.log.Info().Str("patient_id", p.ID).Msg("patient registered")
	return p, nil
}

// Patch is a partial patient update; nil fields are left unchanged.
type Patch struct {
	Name           *string
	Age            *int
	Gender         *string
	Contact        *string
	MedicalHistory *string
}

func (p Patch) empty() bool {
	return p.Name == nil && p.Age == nil && p.Gender == nil && p.Contact == nil && p.MedicalHistory == nil
}

func (s *Service) Update(id string, p Patch) error {
	records, _ := s.repo.Load()
	if _, ok := store.FindByID(records, id); !ok {
		return ErrNotFound
	}

	if p.empty() {
		return nil
	}

	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if p.Age != nil && (*p.Age < 0 || *p.Age > 150) {
		return fmt.Errorf("age must be between 0 and 150")
	}
	if p.Contact != nil && !validate.Phone(*p.Contact) {
		return fmt.Errorf("contact must be a valid phone number")
	}

	store.Patch(records, id, s.now(), func(rec *Patient) {
		if p.Name != nil {
			rec.Name = strings.TrimSpace(*p.Name)
		}
		if p.Age != nil {
			rec.Age = *p.Age
		}
		if p.Gender != nil {
			rec.Gender = *p.Gender
		}
		if p.Contact != nil {
			rec.Contact = *p.Contact
		}
		if p.MedicalHistory != nil {
			rec.MedicalHistory = *p.MedicalHistory
		}
	})

	if s.repo.Save(records).Failed() {
		return ErrStorage
	}

	s.log.Info().Str("patient_id", id).Msg("patient updated")
	return nil
}

// Delete physically removes a patient record.
func (s *Service) Delete(id string) error {
	records, _ := s.repo.Load()
	records, ok := store.Delete(records, id)
	if !ok {
		return ErrNotFound
	}

	if s.repo.Save(records).Failed() {
		return ErrStorage
	}

	s.log.Info().Str("patient_id", id).Msg("patient deleted")
	return nil
}

func (s *Service) Get(id string) (*Patient, error) {
	records, _ := s.repo.Load()
	p, ok := store.FindByID(records, id)
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) List() []*Patient {
	records, _ := s.repo.Load()
	return records
}

// Search matches term case-insensitively against name, id and contact.
func (s *Service) Search(term string) []*Patient {
	records, _ := s.repo.Load()
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}
	var out []*Patient
	for _, p := range records {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.ID), needle) ||
			strings.Contains(p.Contact, needle) {
			out = append(out, p)
		}
	}
	return out
}
