package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/store"
)

var (
	ErrNotFound = errors.New("bill not found")
	ErrStorage  = errors.New("failed to persist billing data")
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

// Generate issues a new unpaid bill. The amount is computed from the
// price table; at least one priced service is required.
func (s *Service) Generate(patientID string, services []string) (*Bill, error) {
	if len(services) == 0 {
		return nil, fmt.Errorf("at least one service is required")
	}

	amount := AmountFor(services)
	if amount <= 0 {
		return nil, fmt.Errorf("no billable services in %v", services)
	}

	records, _ := s.repo.Load()
	bill := NewBill(patientID, amount, services, s.now())
	records = append(records, bill)

	if s.repo.Save(records).Failed() {
		return nil, ErrStorage
	}

	s.log.Info().Str("bill_id", bill.ID).Str("patient_id", patientID).
		Float64("amount", amount).Msg("bill generated")
	return bill, nil
}

// RecordPayment applies a payment to a bill. Paying the full amount
// marks the bill paid; a smaller positive amount marks it partial.
// Payments above the bill total are rejected. Paying an already-paid
// bill succeeds trivially without modification. Either accepted
// payment stamps payment_date.
func (s *Service) RecordPayment(id string, amount float64) error {
	records, _ := s.repo.Load()
	bill, ok := store.FindByID(records, id)
	if !ok {
		return ErrNotFound
	}

	if bill.Status == StatusPaid {
		return nil
	}
	if amount <= 0 {
		return fmt.Errorf("payment amount must be positive")
	}
	if amount > bill.Amount {
		return fmt.Errorf("payment amount cannot exceed the bill total")
	}

	paidInFull := amount == bill.Amount
	when := s.now().Format(time.RFC3339)

	store.Patch(records, id, s.now(), func(b *Bill) {
		b.PaymentDate = &when
		if paidInFull {
			b.Status = StatusPaid
		} else {
			b.Status = StatusPartial
		}
	})

	if s.repo.Save(records).Failed() {
		return ErrStorage
	}

	s.log.Info().Str("bill_id", id).Float64("amount", amount).
		Bool("paid_in_full", paidInFull).Msg("payment recorded")
	return nil
}

func (s *Service) Get(id string) (*Bill, error) {
	records, _ := s.repo.Load()
	bill, ok := store.FindByID(records, id)
	if !ok {
		return nil, ErrNotFound
	}
	return bill, nil
}

// List returns all bills, optionally filtered by status.
func (s *Service) List(statusFilter string) []*Bill {
	records, _ := s.repo.Load()
	if statusFilter == "" {
		return records
	}
	var out []*Bill
	for _, bill := range records {
		if bill.Status == statusFilter {
			out = append(out, bill)
		}
	}
	return out
}

// Outstanding returns the bills that still have money owed.
func (s *Service) Outstanding() []*Bill {
	records, _ := s.repo.Load()
	var out []*Bill
	for _, bill := range records {
		if bill.Outstanding() {
			out = append(out, bill)
		}
	}
	return out
}

// ForPatient returns all bills issued to a patient.
func (s *Service) ForPatient(patientID string) []*Bill {
	records, _ := s.repo.Load()
	var out []*Bill
	for _, bill := range records {
		if bill.PatientID == patientID {
			out = append(out, bill)
		}
	}
	return out
}
