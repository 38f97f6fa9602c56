package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rl1809/desk-suite/internal/adapter/console"
	"github.com/rl1809/desk-suite/internal/config"
	"github.com/rl1809/desk-suite/internal/core/domain"
	"github.com/rl1809/desk-suite/internal/core/service"
	"github.com/rl1809/desk-suite/internal/logging"
)

// app carries what PersistentPreRunE resolves for the subcommands.
type app struct {
	in  io.Reader
	out io.Writer

	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:   "desk",
		Short: "Interactive desk programs for inventory, health, finance, grading and rentals",
		Long: `desk bundles five line-based console programs. Each keeps its state in
memory for the length of the session.

Optional mirrors copy warehouse stock levels to Redis and finance
transactions to MySQL or SQLite. They are written to, never read back.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "desk.yaml", "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.warehouseCmd(),
		a.healthCmd(),
		a.financeCmd(),
		a.gradingCmd(),
		a.rentalCmd(),
	)
	return root
}

func (a *app) prompter() *console.Prompter {
	return console.NewPrompter(a.in, a.out)
}

func (a *app) warehouseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warehouse",
		Short: "Manage electronics and grocery stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mirror, closeMirror := openStockMirror(ctx, a.cfg.Mirror, a.logger)
			defer closeMirror()

			warehouse := service.NewWarehouse(mirror, a.logger)
			for _, err := range warehouse.Seed(ctx) {
				fmt.Fprintf(a.out, "Error during seeding: %v\n", err)
			}
			return console.NewWarehouseConsole(warehouse, a.prompter()).Run(ctx)
		},
	}
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Browse patients and their prescriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health := service.NewHealth()
			if err := health.Seed(time.Now()); err != nil {
				return err
			}
			return console.NewHealthConsole(health, a.prompter()).Run(cmd.Context())
		},
	}
}

func (a *app) financeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finance",
		Short: "Run savings account transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opening, err := domain.ParseCents(a.cfg.Finance.OpeningBalance)
			if err != nil {
				return fmt.Errorf("finance opening balance: %w", err)
			}
			if opening < 0 {
				return fmt.Errorf("finance opening balance cannot be negative: %s", a.cfg.Finance.OpeningBalance)
			}

			ledger, closeLedger, err := openLedger(ctx, a.cfg.Ledger, a.logger)
			if err != nil {
				return err
			}
			defer closeLedger()

			account := service.NewSavingsAccount(a.cfg.Finance.AccountNumber, opening)
			finance := service.NewFinance(account, ledger, a.logger)
			return console.NewFinanceConsole(finance, a.prompter()).Run(ctx)
		},
	}
}

func (a *app) gradingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grading",
		Short: "Grade student marks from a text file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grading := service.NewGrading(a.logger)
			c := console.NewGradingConsole(grading, a.prompter(),
				a.cfg.Grading.DefaultInput, a.cfg.Grading.DefaultOutput)
			return c.Run(cmd.Context())
		},
	}
}

func (a *app) rentalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rental",
		Short: "Rent cars and motorcycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rental := service.NewRental(service.DefaultFleet()...)
			return console.NewRentalConsole(rental, a.prompter()).Run(cmd.Context())
		},
	}
}
