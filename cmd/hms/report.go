package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/hms/hms/pkg/render"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate reports",
	}

	dailyCmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily activity report",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			report, err := a.reports.Daily(date)
			if err != nil {
				return err
			}

			fmt.Printf("Daily report for %s\n\n", report.Date)
			render.KV(os.Stdout, [][2]string{
				{"New patients", fmt.Sprintf("%d", report.NewPatients)},
				{"Appointments", fmt.Sprintf("%d", report.TotalAppointments)},
				{"  scheduled", fmt.Sprintf("%d", report.ScheduledAppointments)},
				{"  completed", fmt.Sprintf("%d", report.CompletedAppointments)},
				{"  cancelled", fmt.Sprintf("%d", report.CancelledAppointments)},
				{"Bills generated", fmt.Sprintf("%d", report.BillsGenerated)},
				{"Revenue", render.Money(report.TotalRevenue)},
			})

			if len(report.DoctorAppointments) > 0 {
				fmt.Println("\nAppointments by doctor:")
				render.Table(os.Stdout, []string{"Doctor", "Appointments"}, countRows(report.DoctorAppointments))
			}
			if len(report.ServiceRevenue) > 0 {
				fmt.Println("\nRevenue by service:")
				render.Table(os.Stdout, []string{"Service", "Revenue"}, moneyRows(report.ServiceRevenue))
			}
			return nil
		},
	}
	dailyCmd.Flags().String("date", "", "Report date (YYYY-MM-DD), defaults to today")
	cmd.AddCommand(dailyCmd)

	monthlyCmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly activity report",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")
			now := time.Now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}

			report, err := a.reports.Monthly(year, time.Month(month))
			if err != nil {
				return err
			}

			fmt.Printf("Monthly report for %s %d\n\n", report.Month, report.Year)
			render.KV(os.Stdout, [][2]string{
				{"New patients", fmt.Sprintf("%d", report.NewPatients)},
				{"Appointments", fmt.Sprintf("%d", report.TotalAppointments)},
				{"  completed", fmt.Sprintf("%d", report.CompletedAppointments)},
				{"  cancelled", fmt.Sprintf("%d", report.CancelledAppointments)},
				{"Bills generated", fmt.Sprintf("%d", report.BillsGenerated)},
				{"Revenue", render.Money(report.TotalRevenue)},
				{"Paid bills", fmt.Sprintf("%d", report.PaidBills)},
				{"Outstanding bills", fmt.Sprintf("%d", report.OutstandingBills)},
			})

			if len(report.DailyBreakdown) > 0 {
				fmt.Println("\nDaily breakdown:")
				rows := make([][]string, 0, len(report.DailyBreakdown))
				for _, day := range report.DailyBreakdown {
					rows = append(rows, []string{
						day.Date, fmt.Sprintf("%d", day.Appointments), render.Money(day.Revenue),
					})
				}
				render.Table(os.Stdout, []string{"Date", "Appointments", "Revenue"}, rows)
			}
			if len(report.Doctors) > 0 {
				fmt.Println("\nDoctors:")
				rows := make([][]string, 0, len(report.Doctors))
				for _, d := range report.Doctors {
					rows = append(rows, []string{
						d.Doctor, fmt.Sprintf("%d", d.Appointments), fmt.Sprintf("%d", d.Completed),
						fmt.Sprintf("%.1f%%", d.CompletionRate()),
					})
				}
				render.Table(os.Stdout, []string{"Doctor", "Appointments", "Completed", "Completion"}, rows)
			}
			return nil
		},
	}
	monthlyCmd.Flags().Int("year", 0, "Report year, defaults to current")
	monthlyCmd.Flags().Int("month", 0, "Report month (1-12), defaults to current")
	cmd.AddCommand(monthlyCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "patients",
		Short: "Patient population summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			summary := a.reports.PatientSummary()

			fmt.Printf("Total patients: %d\n", summary.TotalPatients)
			if len(summary.GenderDistribution) > 0 {
				fmt.Println("\nGender distribution:")
				render.Table(os.Stdout, []string{"Gender", "Count"}, countRows(summary.GenderDistribution))
			}
			if len(summary.AgeDistribution) > 0 {
				fmt.Println("\nAge distribution:")
				render.Table(os.Stdout, []string{"Age group", "Count"}, countRows(summary.AgeDistribution))
			}
			if len(summary.MostActive) > 0 {
				fmt.Println("\nMost active patients:")
				rows := make([][]string, 0, len(summary.MostActive))
				for _, p := range summary.MostActive {
					rows = append(rows, []string{
						p.Patient, fmt.Sprintf("%d", p.Appointments), render.Money(p.TotalBilled),
					})
				}
				render.Table(os.Stdout, []string{"Patient", "Appointments", "Billed"}, rows)
			}
			return nil
		},
	})

	financialCmd := &cobra.Command{
		Use:   "financial",
		Short: "Financial report for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			now := time.Now()
			if start == "" {
				start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
			}
			if end == "" {
				end = now.Format("2006-01-02")
			}

			report, err := a.reports.Financial(start, end)
			if err != nil {
				return err
			}

			fmt.Printf("Financial report %s to %s\n\n", report.StartDate, report.EndDate)
			render.KV(os.Stdout, [][2]string{
				{"Total bills", fmt.Sprintf("%d", report.TotalBills)},
				{"Total revenue", render.Money(report.TotalRevenue)},
				{"Collected", render.Money(report.CollectedRevenue)},
				{"Outstanding", render.Money(report.OutstandingRevenue)},
				{"Collection rate", fmt.Sprintf("%.1f%%", report.CollectionRate())},
			})

			if len(report.ServiceRevenue) > 0 {
				fmt.Println("\nRevenue by service:")
				render.Table(os.Stdout, []string{"Service", "Revenue"}, moneyRows(report.ServiceRevenue))
			}
			if len(report.StatusCounts) > 0 {
				fmt.Println("\nPayment status:")
				render.Table(os.Stdout, []string{"Status", "Count"}, countRows(report.StatusCounts))
			}
			return nil
		},
	}
	financialCmd.Flags().String("start", "", "Start date (YYYY-MM-DD), defaults to the 1st of this month")
	financialCmd.Flags().String("end", "", "End date (YYYY-MM-DD), defaults to today")
	cmd.AddCommand(financialCmd)

	return cmd
}

func countRows(counts map[string]int) [][]string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprintf("%d", counts[k])})
	}
	return rows
}

func moneyRows(amounts map[string]float64) [][]string {
	keys := make([]string, 0, len(amounts))
	for k := range amounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, render.Money(amounts[k])})
	}
	return rows
}
