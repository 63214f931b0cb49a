// Package reporting aggregates stored records into typed report
// structs. It reads through the domain repositories and never writes;
// rendering is left to the caller.
package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/staff"
)

type Service struct {
	patients     patient.Repository
	staff        staff.Repository
	appointments scheduling.Repository
	bills        billing.Repository
	log          zerolog.Logger
}

func NewService(
	patients patient.Repository,
	staffRepo staff.Repository,
	appointments scheduling.Repository,
	bills billing.Repository,
	log zerolog.Logger,
) *Service {
	return &Service{
		patients:     patients,
		staff:        staffRepo,
		appointments: appointments,
		bills:        bills,
		log:          log,
	}
}

// DailyReport summarizes one calendar day of activity.
type DailyReport struct {
	Date                  string             `json:"date"`
	NewPatients           int                `json:"new_patients"`
	TotalAppointments     int                `json:"total_appointments"`
	ScheduledAppointments int                `json:"scheduled_appointments"`
	CompletedAppointments int                `json:"completed_appointments"`
	CancelledAppointments int                `json:"cancelled_appointments"`
	BillsGenerated        int                `json:"bills_generated"`
	TotalRevenue          float64            `json:"total_revenue"`
	DoctorAppointments    map[string]int     `json:"doctor_appointments"`
	ServiceRevenue        map[string]float64 `json:"service_revenue"`
}

// Daily builds the report for the given YYYY-MM-DD date. Appointments
// match on their date field; patients and bills match on the date part
// of created_at.
func (s *Service) Daily(date string) (*DailyReport, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	patients, _ := s.patients.Load()
	appointments, _ := s.appointments.Load()
	bills, _ := s.bills.Load()

	report := &DailyReport{
		Date:               date,
		DoctorAppointments: map[string]int{},
		ServiceRevenue:     map[string]float64{},
	}

	for _, p := range patients {
		if datePart(p.CreatedAt) == date {
			report.NewPatients++
		}
	}

	doctorNames := s.doctorNames()
	for _, apt := range appointments {
		if apt.Date != date {
			continue
		}
		report.TotalAppointments++
		switch apt.Status {
		case scheduling.StatusScheduled:
			report.ScheduledAppointments++
		case scheduling.StatusCompleted:
			report.CompletedAppointments++
		case scheduling.StatusCancelled:
			report.CancelledAppointments++
		}
		report.DoctorAppointments[doctorLabel(doctorNames, apt.DoctorID)]++
	}

	for _, bill := range bills {
		if datePart(bill.CreatedAt) != date {
			continue
		}
		report.BillsGenerated++
		report.TotalRevenue += bill.Amount
		addServiceRevenue(report.ServiceRevenue, bill)
	}

	s.log.Info().Str("date", date).Msg("daily report generated")
	return report, nil
}

// MonthlyReport summarizes one calendar month of activity.
type MonthlyReport struct {
	Year                  int          `json:"year"`
	Month                 time.Month   `json:"month"`
	NewPatients           int          `json:"new_patients"`
	TotalAppointments     int          `json:"total_appointments"`
	CompletedAppointments int          `json:"completed_appointments"`
	CancelledAppointments int          `json:"cancelled_appointments"`
	BillsGenerated        int          `json:"bills_generated"`
	TotalRevenue          float64      `json:"total_revenue"`
	PaidBills             int          `json:"paid_bills"`
	OutstandingBills      int          `json:"outstanding_bills"`
	DailyBreakdown        []DayRollup  `json:"daily_breakdown"`
	Doctors               []DoctorLoad `json:"doctors"`
}

// DayRollup is one row of a monthly daily breakdown.
type DayRollup struct {
	Date         string  `json:"date"`
	Appointments int     `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

// DoctorLoad is one doctor's appointment totals for a period.
type DoctorLoad struct {
	Doctor       string `json:"doctor"`
	Appointments int    `json:"appointments"`
	Completed    int    `json:"completed"`
}

// CompletionRate is the share of the doctor's appointments that were
// completed, as a percentage.
func (d DoctorLoad) CompletionRate() float64 {
	if d.Appointments == 0 {
		return 0
	}
	return float64(d.Completed) / float64(d.Appointments) * 100
}

func (s *Service) Monthly(year int, month time.Month) (*MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	prefix := fmt.Sprintf("%04d-%02d", year, month)

	patients, _ := s.patients.Load()
	appointments, _ := s.appointments.Load()
	bills, _ := s.bills.Load()

	report := &MonthlyReport{Year: year, Month: month}
	days := map[string]*DayRollup{}
	doctors := map[string]*DoctorLoad{}
	doctorNames := s.doctorNames()

	for _, p := range patients {
		if strings.HasPrefix(p.CreatedAt, prefix) {
			report.NewPatients++
		}
	}

	for _, apt := range appointments {
		if !strings.HasPrefix(apt.Date, prefix) {
			continue
		}
		report.TotalAppointments++
		switch apt.Status {
		case scheduling.StatusCompleted:
			report.CompletedAppointments++
		case scheduling.StatusCancelled:
			report.CancelledAppointments++
		}

		rollupFor(days, apt.Date).Appointments++

		label := doctorLabel(doctorNames, apt.DoctorID)
		load := doctors[label]
		if load == nil {
			load = &DoctorLoad{Doctor: label}
			doctors[label] = load
		}
		load.Appointments++
		if apt.Status == scheduling.StatusCompleted {
			load.Completed++
		}
	}

	for _, bill := range bills {
		if !strings.HasPrefix(bill.CreatedAt, prefix) {
			continue
		}
		report.BillsGenerated++
		report.TotalRevenue += bill.Amount
		if bill.Status == billing.StatusPaid {
			report.PaidBills++
		}
		if bill.Outstanding() {
			report.OutstandingBills++
		}
		rollupFor(days, datePart(bill.CreatedAt)).Revenue += bill.Amount
	}

	for _, day := range days {
		report.DailyBreakdown = append(report.DailyBreakdown, *day)
	}
	sort.Slice(report.DailyBreakdown, func(i, j int) bool {
		return report.DailyBreakdown[i].Date < report.DailyBreakdown[j].Date
	})

	for _, load := range doctors {
		report.Doctors = append(report.Doctors, *load)
	}
	sort.Slice(report.Doctors, func(i, j int) bool {
		return report.Doctors[i].Appointments > report.Doctors[j].Appointments
	})

	s.log.Info().Int("year", year).Stringer("month", month).Msg("monthly report generated")
	return report, nil
}

// PatientSummary describes the registered patient population.
type PatientSummary struct {
	TotalPatients      int             `json:"total_patients"`
	GenderDistribution map[string]int  `json:"gender_distribution"`
	AgeDistribution    map[string]int  `json:"age_distribution"`
	MostActive         []PatientDigest `json:"most_active"`
}

// PatientDigest is one patient's activity totals.
type PatientDigest struct {
	Patient      string  `json:"patient"`
	Appointments int     `json:"appointments"`
	TotalBilled  float64 `json:"total_billed"`
}

const mostActiveLimit = 10

func (s *Service) PatientSummary() *PatientSummary {
	patients, _ := s.patients.Load()
	appointments, _ := s.appointments.Load()
	bills, _ := s.bills.Load()

	summary := &PatientSummary{
		TotalPatients:      len(patients),
		GenderDistribution: map[string]int{},
		AgeDistribution:    map[string]int{},
	}

	names := map[string]string{}
	for _, p := range patients {
		names[p.ID] = p.Name
		summary.GenderDistribution[p.Gender]++
		summary.AgeDistribution[ageBand(p.Age)]++
	}

	counts := map[string]int{}
	billed := map[string]float64{}
	for _, apt := range appointments {
		counts[apt.PatientID]++
	}
	for _, bill := range bills {
		billed[bill.PatientID] += bill.Amount
	}

	for id, n := range counts {
		name := names[id]
		if name == "" {
			name = "Unknown"
		}
		summary.MostActive = append(summary.MostActive, PatientDigest{
			Patient:      name,
			Appointments: n,
			TotalBilled:  billed[id],
		})
	}
	sort.Slice(summary.MostActive, func(i, j int) bool {
		if summary.MostActive[i].Appointments != summary.MostActive[j].Appointments {
			return summary.MostActive[i].Appointments > summary.MostActive[j].Appointments
		}
		return summary.MostActive[i].Patient < summary.MostActive[j].Patient
	})
	if len(summary.MostActive) > mostActiveLimit {
		summary.MostActive = summary.MostActive[:mostActiveLimit]
	}

	s.log.Info().Msg("patient summary report generated")
	return summary
}

// FinancialReport summarizes billing over an inclusive date range.
type FinancialReport struct {
	StartDate          string             `json:"start_date"`
	EndDate            string             `json:"end_date"`
	TotalBills         int                `json:"total_bills"`
	TotalRevenue       float64            `json:"total_revenue"`
	CollectedRevenue   float64            `json:"collected_revenue"`
	OutstandingRevenue float64            `json:"outstanding_revenue"`
	ServiceRevenue     map[string]float64 `json:"service_revenue"`
	ServiceCounts      map[string]int     `json:"service_counts"`
	StatusCounts       map[string]int     `json:"status_counts"`
}

// CollectionRate is the collected share of total revenue, as a
// percentage.
func (r *FinancialReport) CollectionRate() float64 {
	if r.TotalRevenue == 0 {
		return 0
	}
	return r.CollectedRevenue / r.TotalRevenue * 100
}

// Financial filters bills whose created_at date falls in
// [start, end] and aggregates revenue. A bill's amount is split evenly
// across its services for the per-service view.
func (s *Service) Financial(start, end string) (*FinancialReport, error) {
	for _, d := range []string{start, end} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", d)
		}
	}
	if end < start {
		return nil, fmt.Errorf("end date %s precedes start date %s", end, start)
	}

	bills, _ := s.bills.Load()

	report := &FinancialReport{
		StartDate:      start,
		EndDate:        end,
		ServiceRevenue: map[string]float64{},
		ServiceCounts:  map[string]int{},
		StatusCounts:   map[string]int{},
	}

	for _, bill := range bills {
		day := datePart(bill.CreatedAt)
		if day < start || day > end {
			continue
		}
		report.TotalBills++
		report.TotalRevenue += bill.Amount
		report.StatusCounts[bill.Status]++
		if bill.Status == billing.StatusPaid {
			report.CollectedRevenue += bill.Amount
		}
		if bill.Outstanding() {
			report.OutstandingRevenue += bill.Amount
		}
		addServiceRevenue(report.ServiceRevenue, bill)
		for _, svc := range bill.Services {
			report.ServiceCounts[billing.ServiceCode(svc)]++
		}
	}

	s.log.Info().Str("start", start).Str("end", end).Msg("financial report generated")
	return report, nil
}

func (s *Service) doctorNames() map[string]string {
	members, _ := s.staff.Load()
	names := map[string]string{}
	for _, m := range members {
		if m.IsDoctor() {
			names[m.ID] = m.Name
		}
	}
	return names
}

func doctorLabel(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "Unknown"
}

func rollupFor(days map[string]*DayRollup, date string) *DayRollup {
	day := days[date]
	if day == nil {
		day = &DayRollup{Date: date}
		days[date] = day
	}
	return day
}

func addServiceRevenue(revenue map[string]float64, bill *billing.Bill) {
	if len(bill.Services) == 0 {
		return
	}
	share := bill.Amount / float64(len(bill.Services))
	for _, svc := range bill.Services {
		revenue[billing.ServiceCode(svc)] += share
	}
}

// datePart extracts YYYY-MM-DD from an RFC3339 timestamp.
func datePart(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}

func ageBand(age int) string {
	switch {
	case age < 18:
		return "0-17"
	case age < 30:
		return "18-29"
	case age < 50:
		return "30-49"
	case age < 65:
		return "50-64"
	default:
		return "65+"
	}
}
