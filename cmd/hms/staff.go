package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/pkg/render"
)

func staffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage staff records",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			role, _ := cmd.Flags().GetString("role")
			contact, _ := cmd.Flags().GetString("contact")
			spec, _ := cmd.Flags().GetString("specialization")

			m, err := a.staff.Add(name, role, contact, spec)
			if err != nil {
				return err
			}
			fmt.Printf("Staff member added: %s\n", m.ID)
			return nil
		},
	}
	addCmd.Flags().String("name", "", "Full name")
	addCmd.Flags().String("role", "", "Role: doctor, nurse or admin")
	addCmd.Flags().String("contact", "", "Contact phone number")
	addCmd.Flags().String("specialization", "", "Medical specialization")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("role")
	_ = addCmd.MarkFlagRequired("contact")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all staff",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			printStaff(a.staff.List())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one staff member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			m, err := a.staff.Get(args[0])
			if err != nil {
				return err
			}
			render.KV(os.Stdout, [][2]string{
				{"ID", m.ID},
				{"Name", m.Name},
				{"Role", m.Role},
				{"Contact", m.Contact},
				{"Specialization", m.Specialization},
				{"Added", m.CreatedAt},
			})
			return nil
		},
	})

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update staff fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			p := staff.Patch{
				Name:           optionalString(cmd, "name"),
				Role:           optionalString(cmd, "role"),
				Contact:        optionalString(cmd, "contact"),
				Specialization: optionalString(cmd, "specialization"),
			}
			if err := a.staff.Update(args[0], p); err != nil {
				return err
			}
			fmt.Println("Staff member updated.")
			return nil
		},
	}
	updateCmd.Flags().String("name", "", "Full name")
	updateCmd.Flags().String("role", "", "Role: doctor, nurse or admin")
	updateCmd.Flags().String("contact", "", "Contact phone number")
	updateCmd.Flags().String("specialization", "", "Medical specialization")
	cmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a staff record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if !confirm(cmd, fmt.Sprintf("Delete staff member %s?", args[0])) {
				fmt.Println("Aborted.")
				return nil
			}
			if err := a.staff.Delete(args[0]); err != nil {
				return err
			}
			fmt.Println("Staff member deleted.")
			return nil
		},
	}
	deleteCmd.Flags().Bool("yes", false, "Skip confirmation")
	cmd.AddCommand(deleteCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "doctors",
		Short: "List doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			printStaff(a.staff.Doctors())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <term>",
		Short: "Search staff by name, id, role or specialization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			matches := a.staff.Search(args[0])
			if len(matches) == 0 {
				fmt.Println("No staff found.")
				return nil
			}
			printStaff(matches)
			return nil
		},
	})

	return cmd
}

func printStaff(members []*staff.Staff) {
	if len(members) == 0 {
		fmt.Println("No staff records.")
		return
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			render.ShortID(m.ID), m.Name, m.Role, m.Specialization, m.Contact,
		})
	}
	render.Table(os.Stdout, []string{"ID", "Name", "Role", "Specialization", "Contact"}, rows)
}
