package billing

import (
	"strings"
	"time"

	"github.com/hms/hms/internal/platform/store"
)

const (
	StatusUnpaid  = "unpaid"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

var validStatuses = map[string]bool{
	StatusUnpaid:  true,
	StatusPartial: true,
	StatusPaid:    true,
}

func ValidStatus(s string) bool { return validStatuses[s] }

// Bill is one invoice issued to a patient. PaymentDate stays null until
// the first recorded payment. Partial payments update the status but
// the running balance is not tracked, matching the stored schema.
type Bill struct {
	store.Meta
	PatientID   string   `json:"patient_id"`
	Amount      float64  `json:"amount"`
	Services    []string `json:"services"`
	Status      string   `json:"status"`
	PaymentDate *string  `json:"payment_date"`
}

func NewBill(patientID string, amount float64, services []string, now time.Time) *Bill {
	return &Bill{
		Meta:      store.NewMeta(now),
		PatientID: patientID,
		Amount:    amount,
		Services:  services,
		Status:    StatusUnpaid,
	}
}

// Outstanding reports whether the bill still has money owed on it.
func (b *Bill) Outstanding() bool {
	return b.Status == StatusUnpaid || b.Status == StatusPartial
}

// ServicePrices is the flat price table for billable services, keyed by
// snake_case service code.
var ServicePrices = map[string]float64{
	"consultation":    100.0,
	"blood_test":      50.0,
	"x_ray":           150.0,
	"mri_scan":        800.0,
	"ct_scan":         600.0,
	"ultrasound":      200.0,
	"ecg":             75.0,
	"surgery_minor":   2000.0,
	"surgery_major":   10000.0,
	"emergency_visit": 300.0,
	"vaccination":     25.0,
	"physiotherapy":   80.0,
	"dental_checkup":  120.0,
	"eye_exam":        90.0,
	"prescription":    30.0,
}

// ServiceCode normalizes a service name to its price-table key.
func ServiceCode(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// AmountFor sums the price-table entries for the given services.
// Unknown services are skipped.
func AmountFor(services []string) float64 {
	total := 0.0
	for _, svc := range services {
		if price, ok := ServicePrices[ServiceCode(svc)]; ok {
			total += price
		}
	}
	return total
}
