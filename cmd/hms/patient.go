package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/pkg/render"
)

func patientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Manage patient records",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			age, _ := cmd.Flags().GetInt("age")
			gender, _ := cmd.Flags().GetString("gender")
			contact, _ := cmd.Flags().GetString("contact")
			history, _ := cmd.Flags().GetString("history")

			p, err := a.patients.Register(name, age, gender, contact, history)
			if err != nil {
				return err
			}
			fmt.Printf("Patient registered: %s\n", p.ID)
			return nil
		},
	}
	addCmd.Flags().String("name", "", "Patient full name")
	addCmd.Flags().Int("age", 0, "Patient age")
	addCmd.Flags().String("gender", "", "Patient gender")
	addCmd.Flags().String("contact", "", "Contact phone number")
	addCmd.Flags().String("history", "", "Medical history notes")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("age")
	_ = addCmd.MarkFlagRequired("contact")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			printPatients(a.patients.List())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			p, err := a.patients.Get(args[0])
			if err != nil {
				return err
			}
			render.KV(os.Stdout, [][2]string{
				{"ID", p.ID},
				{"Name", p.Name},
				{"Age", fmt.Sprintf("%d", p.Age)},
				{"Gender", p.Gender},
				{"Contact", p.Contact},
				{"Medical history", p.MedicalHistory},
				{"Registered", p.CreatedAt},
			})
			return nil
		},
	})

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update patient fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			p := patient.Patch{
				Name:           optionalString(cmd, "name"),
				Age:            optionalInt(cmd, "age"),
				Gender:         optionalString(cmd, "gender"),
				Contact:        optionalString(cmd, "contact"),
				MedicalHistory: optionalString(cmd, "history"),
			}
			if err := a.patients.Update(args[0], p); err != nil {
				return err
			}
			fmt.Println("Patient updated.")
			return nil
		},
	}
	updateCmd.Flags().String("name", "", "Patient full name")
	updateCmd.Flags().Int("age", 0, "Patient age")
	updateCmd.Flags().String("gender", "", "Patient gender")
	updateCmd.Flags().String("contact", "", "Contact phone number")
	updateCmd.Flags().String("history", "", "Medical history notes")
	cmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if !confirm(cmd, fmt.Sprintf("Delete patient %s?", args[0])) {
				fmt.Println("Aborted.")
				return nil
			}
			if err := a.patients.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println("Patient deleted.")
			return nil
		},
	}
	deleteCmd.Flags().Bool("yes", false, "Skip confirmation")
	cmd.AddCommand(deleteCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "search <term>",
		Short: "Search patients by name, id or contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			matches := a.patients.Search(args[0])
			if len(matches) == 0 {
				fmt.Println("No patients found.")
				return nil
			}
			printPatients(matches)
			return nil
		},
	})

	return cmd
}

func printPatients(patients []*patient.Patient) {
	if len(patients) == 0 {
		fmt.Println("No patients registered.")
		return
	}
	rows := make([][]string, 0, len(patients))
	for _, p := range patients {
		rows = append(rows, []string{
			render.ShortID(p.ID), p.Name, fmt.Sprintf("%d", p.Age), p.Gender, p.Contact,
		})
	}
	render.Table(os.Stdout, []string{"ID", "Name", "Age", "Gender", "Contact"}, rows)
}
