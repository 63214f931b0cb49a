package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/platform/logging"
	"github.com/hms/hms/internal/platform/reporting"
)

// app holds the wired services shared by all subcommands.
type app struct {
	cfg          *config.Config
	log          zerolog.Logger
	patients     *patient.Service
	staff        *staff.Service
	appointments *scheduling.Service
	bills        *billing.Service
	reports      *reporting.Service
}

func newApp() (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	log := logging.New(cfg.LogFile, cfg.LogLevel, cfg.IsDev())

	patientRepo := patient.NewJSONRepository(cfg.CollectionPath("patients"), log)
	staffRepo := staff.NewJSONRepository(cfg.CollectionPath("staff"), log)
	apptRepo := scheduling.NewJSONRepository(cfg.CollectionPath("appointments"), log)
	billRepo := billing.NewJSONRepository(cfg.CollectionPath("billing"), log)

	return &app{
		cfg:          cfg,
		log:          log,
		patients:     patient.NewService(patientRepo, log),
		staff:        staff.NewService(staffRepo, log),
		appointments: scheduling.NewService(apptRepo, log),
		bills:        billing.NewService(billRepo, log),
		reports:      reporting.NewService(patientRepo, staffRepo, apptRepo, billRepo, log),
	}, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms",
		Short: "Hospital records management",
		Long:  config.AppName + " - manage patients, staff, appointments and billing from the command line.",
	}

	rootCmd.AddCommand(patientCmd())
	rootCmd.AddCommand(staffCmd())
	rootCmd.AddCommand(appointmentCmd())
	rootCmd.AddCommand(billCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s v%s\n", config.AppName, config.AppVersion)
		},
	}
}

// confirm asks for interactive confirmation unless --yes was given.
func confirm(cmd *cobra.Command, prompt string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// optionalString returns a pointer to the flag value only when the flag
// was set on the command line, so unset flags leave fields untouched.
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}
