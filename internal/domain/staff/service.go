package staff

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
	ErrNotFound = errors.New("staff member not found")
	ErrStorage  = errors.New("failed to persist staff data")
)

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

func (s *Service) Add(name, role, contact, specialization string) (*Staff, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !ValidRole(role) {
		return nil, fmt.Errorf("role must be one of doctor, nurse, admin")
	}
	if !validate.Phone(contact) {
		return nil, fmt.Errorf("contact must be a valid phone number")
	}

	records, _ := s.repo.Load()
	member := NewStaff(strings.TrimSpace(name), role, contact, specialization, s.now())
	records = append(records, member)

	if s.repo.Save(records).Failed() {
		return nil, ErrStorage
	}

	s.log.Info().Str("staff_id", member.ID).Str("role", member.Role).Msg("staff member added")
	return member, nil
}

// Patch is a partial staff update; nil fields are left unchanged.
type Patch struct {
	Name           *string
	Role           *string
	Contact        *string
	Specialization *string
}

func (p Patch) empty() bool {
	return p.Name == nil && p.Role == nil && p.Contact == nil && p.Specialization == nil
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
	if p.Role != nil && !ValidRole(*p.Role) {
		return fmt.Errorf("role must be one of doctor, nurse, admin")
	}
	if p.Contact != nil && !validate.Phone(*p.Contact) {
		return fmt.Errorf("contact must be a valid phone number")
	}

	store.Patch(records, id, s.now(), func(rec *Staff) {
		if p.Name != nil {
			rec.Name = strings.TrimSpace(*p.Name)
		}
		if p.Role != nil {
			rec.Role = strings.ToLower(*p.Role)
		}
		if p.Contact != nil {
			rec.Contact = *p.Contact
		}
		if p.Specialization != nil {
			rec.Specialization = *p.Specialization
		}
	})

	if s.repo.Save(records).Failed() {
		return ErrStorage
	}

	s.log.Info().Str("staff_id", id).Msg("staff member updated")
	return nil
}

// Delete physically removes a staff record. Appointments referencing
// the member are left untouched.
func (s *Service) Delete(id string) error {
	records, _ := s.repo.Load()
	records, ok := store.Delete(records, id)
	if !ok {
		return ErrNotFound
	}

	if s.repo.Save(records).Failed() {
		return ErrStorage
	}

	s.log.Info().Str("staff_id", id).Msg("staff member deleted")
	return nil
}

func (s *Service) Get(id string) (*Staff, error) {
	records, _ := s.repo.Load()
	member, ok := store.FindByID(records, id)
	if !ok {
		return nil, ErrNotFound
	}
	return member, nil
}

func (s *Service) List() []*Staff {
	records, _ := s.repo.Load()
	return records
}

// Doctors returns the staff members with the doctor role; the CLI uses
// it to validate doctor ids before scheduling.
func (s *Service) Doctors() []*Staff {
	records, _ := s.repo.Load()
	var out []*Staff
	for _, member := range records {
		if member.IsDoctor() {
			out = append(out, member)
		}
	}
	return out
}

// Search matches term case-insensitively against name, id, role and
// specialization.
func (s *Service) Search(term string) []*Staff {
	records, _ := s.repo.Load()
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}
	var out []*Staff
	for _, member := range records {
		if strings.Contains(strings.ToLower(member.Name), needle) ||
			strings.Contains(strings.ToLower(member.ID), needle) ||
			strings.Contains(strings.ToLower(member.Role), needle) ||
			strings.Contains(strings.ToLower(member.Specialization), needle) {
			out = append(out, member)
		}
	}
	return out
}
