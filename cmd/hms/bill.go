package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/pkg/render"
)

func billCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Manage billing",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a bill for a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			patientID, _ := cmd.Flags().GetString("patient")
			services, _ := cmd.Flags().GetStringSlice("service")

			if _, err := a.patients.Get(patientID); err != nil {
				return fmt.Errorf("patient %s: %w", patientID, err)
			}
			bill, err := a.bills.Generate(patientID, services)
			if err != nil {
				return err
			}
			fmt.Printf("Bill %s generated: %s\n", bill.ID, render.Money(bill.Amount))
			return nil
		},
	}
	createCmd.Flags().String("patient", "", "Patient id")
	createCmd.Flags().StringSlice("service", nil, "Billable service (repeatable)")
	_ = createCmd.MarkFlagRequired("patient")
	_ = createCmd.MarkFlagRequired("service")
	cmd.AddCommand(createCmd)

	payCmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Record a payment against a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			amount, _ := cmd.Flags().GetFloat64("amount")
			if err := a.bills.RecordPayment(args[0], amount); err != nil {
				return err
			}
			fmt.Println("Payment recorded.")
			return nil
		},
	}
	payCmd.Flags().Float64("amount", 0, "Payment amount")
	_ = payCmd.MarkFlagRequired("amount")
	cmd.AddCommand(payCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List bills",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")
			if status != "" && !billing.ValidStatus(status) {
				return fmt.Errorf("invalid status %q", status)
			}
			printBills(a.bills.List(status))
			return nil
		},
	}
	listCmd.Flags().String("status", "", "Filter by status (paid/unpaid/partial)")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			bill, err := a.bills.Get(args[0])
			if err != nil {
				return err
			}
			paymentDate := "-"
			if bill.PaymentDate != nil {
				paymentDate = *bill.PaymentDate
			}
			render.KV(os.Stdout, [][2]string{
				{"ID", bill.ID},
				{"Patient", bill.PatientID},
				{"Amount", render.Money(bill.Amount)},
				{"Services", strings.Join(bill.Services, ", ")},
				{"Status", bill.Status},
				{"Payment date", paymentDate},
				{"Issued", bill.CreatedAt},
			})
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "outstanding",
		Short: "List unpaid and partially paid bills",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			printBills(a.bills.Outstanding())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "services",
		Short: "Show the service price table",
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := make([]string, 0, len(billing.ServicePrices))
			for code := range billing.ServicePrices {
				codes = append(codes, code)
			}
			sort.Strings(codes)
			rows := make([][]string, 0, len(codes))
			for _, code := range codes {
				rows = append(rows, []string{code, render.Money(billing.ServicePrices[code])})
			}
			render.Table(os.Stdout, []string{"Service", "Price"}, rows)
			return nil
		},
	})

	return cmd
}

func printBills(bills []*billing.Bill) {
	if len(bills) == 0 {
		fmt.Println("No bills.")
		return
	}
	rows := make([][]string, 0, len(bills))
	for _, bill := range bills {
		rows = append(rows, []string{
			render.ShortID(bill.ID), render.ShortID(bill.PatientID),
			render.Money(bill.Amount), bill.Status, strings.Join(bill.Services, ", "),
		})
	}
	render.Table(os.Stdout, []string{"ID", "Patient", "Amount", "Status", "Services"}, rows)
}
