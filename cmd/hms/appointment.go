package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/pkg/render"
)

func appointmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointment",
		Short: "Manage appointments",
	}

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule a new appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			patientID, _ := cmd.Flags().GetString("patient")
			doctorID, _ := cmd.Flags().GetString("doctor")
			date, _ := cmd.Flags().GetString("date")
			timeOfDay, _ := cmd.Flags().GetString("time")
			notes, _ := cmd.Flags().GetString("notes")

			if _, err := a.patients.Get(patientID); err != nil {
				return fmt.Errorf("patient %s: %w", patientID, err)
			}
			doctor, err := a.staff.Get(doctorID)
			if err != nil {
				return fmt.Errorf("doctor %s: %w", doctorID, err)
			}
			if !doctor.IsDoctor() {
				return fmt.Errorf("staff member %s (%s) is not a doctor", doctor.Name, doctor.Role)
			}

			apt, err := a.appointments.Schedule(patientID, doctorID, date, timeOfDay, notes)
			if err != nil {
				return err
			}
			fmt.Printf("Appointment scheduled: %s on %s at %s\n", apt.ID, apt.Date, apt.Time)
			return nil
		},
	}
	scheduleCmd.Flags().String("patient", "", "Patient id")
	scheduleCmd.Flags().String("doctor", "", "Doctor staff id")
	scheduleCmd.Flags().String("date", "", "Date (YYYY-MM-DD)")
	scheduleCmd.Flags().String("time", "", "Time (HH:MM)")
	scheduleCmd.Flags().String("notes", "", "Appointment notes")
	_ = scheduleCmd.MarkFlagRequired("patient")
	_ = scheduleCmd.MarkFlagRequired("doctor")
	_ = scheduleCmd.MarkFlagRequired("date")
	_ = scheduleCmd.MarkFlagRequired("time")
	cmd.AddCommand(scheduleCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")
			if status != "" && !scheduling.ValidStatus(status) {
				return fmt.Errorf("invalid status %q", status)
			}
			printAppointments(a.appointments.List(status))
			return nil
		},
	}
	listCmd.Flags().String("status", "", "Filter by status (scheduled/completed/cancelled)")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "today",
		Short: "List today's appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			today := time.Now().Format("2006-01-02")
			printAppointments(a.appointments.ListForDay(today))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			apt, err := a.appointments.Get(args[0])
			if err != nil {
				return err
			}
			render.KV(os.Stdout, [][2]string{
				{"ID", apt.ID},
				{"Patient", apt.PatientID},
				{"Doctor", apt.DoctorID},
				{"Date", apt.Date},
				{"Time", apt.Time},
				{"Status", apt.Status},
				{"Notes", apt.Notes},
			})
			return nil
		},
	})

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Reschedule or edit an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			p := scheduling.UpdateParams{
				Date:   optionalString(cmd, "date"),
				Time:   optionalString(cmd, "time"),
				Status: optionalString(cmd, "status"),
				Notes:  optionalString(cmd, "notes"),
			}
			if err := a.appointments.Update(args[0], p); err != nil {
				return err
			}
			fmt.Println("Appointment updated.")
			return nil
		},
	}
	updateCmd.Flags().String("date", "", "New date (YYYY-MM-DD)")
	updateCmd.Flags().String("time", "", "New time (HH:MM)")
	updateCmd.Flags().String("status", "", "New status (scheduled/completed/cancelled)")
	updateCmd.Flags().String("notes", "", "New notes")
	cmd.AddCommand(updateCmd)

	cancelCmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if !confirm(cmd, fmt.Sprintf("Cancel appointment %s?", args[0])) {
				fmt.Println("Aborted.")
				return nil
			}
			if err := a.appointments.Cancel(args[0]); err != nil {
				return err
			}
			fmt.Println("Appointment cancelled.")
			return nil
		},
	}
	cancelCmd.Flags().Bool("yes", false, "Skip confirmation")
	cmd.AddCommand(cancelCmd)

	return cmd
}

func printAppointments(appointments []*scheduling.Appointment) {
	if len(appointments) == 0 {
		fmt.Println("No appointments.")
		return
	}
	rows := make([][]string, 0, len(appointments))
	for _, apt := range appointments {
		rows = append(rows, []string{
			render.ShortID(apt.ID), render.ShortID(apt.PatientID), render.ShortID(apt.DoctorID),
			apt.Date, apt.Time, apt.Status,
		})
	}
	render.Table(os.Stdout, []string{"ID", "Patient", "Doctor", "Date", "Time", "Status"}, rows)
}
