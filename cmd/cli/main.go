package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Phillippus/PickaThon/internal/config"
	"github.com/Phillippus/PickaThon/pkg/clients/sheetsclient"
	"github.com/Phillippus/PickaThon/pkg/core/services"
	"github.com/Phillippus/PickaThon/pkg/postgres"
	"github.com/Phillippus/PickaThon/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pickathon",
		Short: "PickaThon - night-shift scheduler for doctors",
		Long:  `A CLI tool for managing a doctor roster and generating monthly night-shift schedules from wanted/excluded day preferences.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.logger != nil {
					app.logger.Sync()
				}
				if app.database != nil {
					app.database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(addDoctorCmd())
	rootCmd.AddCommand(listDoctorsCmd())
	rootCmd.AddCommand(removeDoctorCmd())
	rootCmd.AddCommand(proposeScheduleCmd())
	rootCmd.AddCommand(finalizeScheduleCmd())
	rootCmd.AddCommand(viewScheduleCmd())
	rootCmd.AddCommand(publishScheduleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and database
func initApp(ctx context.Context) error {
	var err error
	app = &App{
		ctx: ctx,
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Info("Database initialized successfully")

	return nil
}

// Command definitions

func addDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addDoctor <name>",
		Short: "Add a doctor to the roster with their day preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wanted, _ := cmd.Flags().GetString("wanted")
			excluded, _ := cmd.Flags().GetString("excluded")
			maxShifts, _ := cmd.Flags().GetInt("max-shifts")

			wantedDays, err := parseDayList(wanted)
			if err != nil {
				return fmt.Errorf("invalid --wanted: %w", err)
			}
			excludedDays, err := parseDayList(excluded)
			if err != nil {
				return fmt.Errorf("invalid --excluded: %w", err)
			}

			doctor, err := services.AddDoctor(app.ctx, app.database, app.logger, services.AddDoctorParams{
				Name:         args[0],
				WantedDays:   wantedDays,
				ExcludedDays: excludedDays,
				MaxShifts:    maxShifts,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nDoctor %s added (%s)\n", doctor.Name, doctor.ID)
			fmt.Printf("  Wanted days:   %v\n", doctor.WantedDays)
			fmt.Printf("  Excluded days: %v\n", doctor.ExcludedDays)
			fmt.Printf("  Max shifts:    %s\n\n", maxShiftsLabel(doctor.MaxShifts))
			return nil
		},
	}

	cmd.Flags().String("wanted", "", "Comma-separated wanted days, e.g. 1,15,28")
	cmd.Flags().String("excluded", "", "Comma-separated excluded days, e.g. 2,16")
	cmd.Flags().Int("max-shifts", 0, "Maximum shifts per month (0 = no cap)")

	return cmd
}

func listDoctorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listDoctors",
		Short: "List all doctors on the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doctors, err := services.ListDoctors(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d doctors:\n\n", len(doctors))
			for _, doc := range doctors {
				fmt.Printf("- %s: wanted %v, excluded %v, max shifts %s\n",
					doc.Name, doc.WantedDays, doc.ExcludedDays, maxShiftsLabel(doc.MaxShifts))
			}
			fmt.Println()
			return nil
		},
	}
}

func removeDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "removeDoctor <name>",
		Short: "Remove a doctor from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RemoveDoctor(app.ctx, app.database, app.logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\nDoctor %s removed\n\n", args[0])
			return nil
		},
	}
}

func proposeScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proposeSchedule <month> <year>",
		Short: "Build the demand map for a month and list conflicted days",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, year, err := parseMonthYear(args)
			if err != nil {
				return err
			}

			result, err := services.ProposeSchedule(app.ctx, app.database, app.logger, month, year)
			if err != nil {
				return err
			}

			fmt.Printf("\nDemand for %04d-%02d:\n\n", year, month)
			for day := 1; day <= len(result.Demand); day++ {
				if len(result.Demand[day]) > 0 {
					fmt.Printf("  day %2d: %s\n", day, strings.Join(result.Demand[day], ", "))
				}
			}

			if len(result.Conflicts) == 0 {
				fmt.Println("\nNo conflicts - run finalizeSchedule to complete the month.")
				return nil
			}

			fmt.Printf("\n%d conflicted day(s) need a choice:\n\n", len(result.Conflicts))
			for _, day := range sortedDays(result.Conflicts) {
				fmt.Printf("  day %2d: %s\n", day, strings.Join(result.Conflicts[day], ", "))
			}
			fmt.Println("\nResolve with: finalizeSchedule <month> <year> day=doctor ...")
			return nil
		},
	}
}

func finalizeScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalizeSchedule <month> <year> [day=doctor ...]",
		Short: "Complete a month's schedule using the given conflict resolutions",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, year, err := parseMonthYear(args[:2])
			if err != nil {
				return err
			}

			resolutions, err := parseResolutions(args[2:])
			if err != nil {
				return err
			}

			seed, _ := cmd.Flags().GetString("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := services.FinalizeSchedule(app.ctx, app.database, app.logger,
				month, year, resolutions, seed, dryRun)
			if err != nil {
				return err
			}

			if result.DryRun {
				fmt.Printf("\nDry run - schedule for %04d-%02d not saved:\n\n", year, month)
			} else {
				fmt.Printf("\nSchedule for %04d-%02d saved (run %s):\n\n", year, month, result.RunID)
			}

			for day := 1; day <= len(result.Final); day++ {
				doctor := result.Final[day]
				if doctor == "" {
					doctor = "None"
				}
				fmt.Printf("  %2d: %s\n", day, doctor)
			}

			if len(result.Unfilled) > 0 {
				fmt.Printf("\n%d day(s) could not be filled: %v\n", len(result.Unfilled), result.Unfilled)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("seed", "", "Seed for random fill decisions (reproducible runs)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}

func viewScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewSchedule <month> <year>",
		Short: "Show the latest finalized schedule for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, year, err := parseMonthYear(args)
			if err != nil {
				return err
			}

			result, err := services.ViewSchedule(app.ctx, app.database, app.cfg, app.logger, month, year)
			if err != nil {
				return err
			}

			fmt.Printf("\nSchedule for %04d-%02d (finalized %s):\n\n", year, month, result.CreatedAt)
			for _, row := range result.Rows {
				marker := "  "
				if row.WeekendOrHoliday {
					marker = " *"
				}
				doctor := row.Doctor
				if doctor == "" {
					doctor = "None"
				}
				fmt.Printf("%s %s  %s\n", marker, row.Date, doctor)
			}
			fmt.Println("\n  * weekend or public holiday")
			return nil
		},
	}
}

func publishScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule <month> <year>",
		Short: "Publish the latest finalized schedule to Google Sheets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, year, err := parseMonthYear(args)
			if err != nil {
				return err
			}

			// Sheets client is built here rather than in initApp so that
			// local commands never trigger the OAuth flow
			oauthCfg, err := config.LoadOAuthClientWithEnv(env)
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			client, err := sheetsclient.NewClient(app.ctx, oauthCfg, env)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			if err := services.PublishSchedule(app.ctx, app.database, client, app.cfg, app.logger, month, year); err != nil {
				return err
			}

			fmt.Printf("\nSchedule for %04d-%02d published to spreadsheet %s\n\n", year, month, app.cfg.ScheduleSheetID)
			return nil
		},
	}
}

// Argument parsing helpers

func parseMonthYear(args []string) (int, int, error) {
	month, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("month must be a number: %w", err)
	}
	year, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("year must be a number: %w", err)
	}
	return month, year, nil
}

// parseDayList parses a comma-separated day list like "1,15,28"
func parseDayList(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%q is not a day number", part)
		}
		days = append(days, day)
	}
	return days, nil
}

// parseResolutions parses conflict resolutions given as day=doctor args
func parseResolutions(args []string) (map[int]string, error) {
	resolutions := make(map[int]string, len(args))
	for _, arg := range args {
		day, doctor, found := strings.Cut(arg, "=")
		if !found || doctor == "" {
			return nil, fmt.Errorf("resolution %q must have the form day=doctor", arg)
		}

		dayNum, err := strconv.Atoi(day)
		if err != nil {
			return nil, fmt.Errorf("resolution %q: %q is not a day number", arg, day)
		}
		resolutions[dayNum] = doctor
	}
	return resolutions, nil
}

func maxShiftsLabel(maxShifts int) string {
	if maxShifts == 0 {
		return "unlimited"
	}
	return strconv.Itoa(maxShifts)
}

func sortedDays(demand map[int][]string) []int {
	days := make([]int, 0, len(demand))
	for day := range demand {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}
