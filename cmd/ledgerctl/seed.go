package main

import (
	"fmt"

	"budget-ledger/internal/service"
	"budget-ledger/pkg/logger"
	"budget-ledger/pkg/money"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	seedUser        string
	seedEmail       string
	seedRole        string
	seedAccountType string
	seedOrg         string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo budget with a House/Transport split",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedUser, "user", "demo-user", "User id that owns the budget")
	seedCmd.Flags().StringVar(&seedEmail, "email", "demo@example.com", "Email recorded as author")
	seedCmd.Flags().StringVar(&seedRole, "role", string(service.RoleAdmin), "Session role (admin, member)")
	seedCmd.Flags().StringVar(&seedAccountType, "account-type", string(service.AccountTypePersonal), "Account type (personal, joint)")
	seedCmd.Flags().StringVar(&seedOrg, "org", "", "Organization id for joint accounts (default SHARED_ORGANIZATION_ID)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, store, log, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer store.Close()

	session := service.Session{
		UserID:      seedUser,
		Email:       seedEmail,
		Role:        service.Role(seedRole),
		AccountType: service.AccountType(seedAccountType),
	}
	if session.AccountType == service.AccountTypeJoint {
		session.OrganizationID = seedOrg
		if session.OrganizationID == "" {
			session.OrganizationID = cfg.Ledger.SharedOrganizationID
		}
	}

	ledger := service.NewLedgerService(store, service.Options{
		Policy:     service.AllocationPolicy(cfg.Ledger.AllocationPolicy),
		MaxRetries: cfg.Ledger.MaxRetries,
	}, log.Named("ledger"))
	h, err := ledger.Handle(session)
	if err != nil {
		return err
	}

	res, err := h.CreateBudget(ctx, service.CreateBudgetInput{
		Title:       "Household",
		TotalAmount: decimal.NewFromInt(150000),
		Allocations: []service.Allocation{
			{Name: "House", Amount: decimal.NewFromInt(100000)},
			{Name: "Transport", Amount: decimal.NewFromInt(50000)},
		},
		Details: "Demo budget created by ledgerctl seed",
	})
	if err != nil {
		return err
	}

	b := res.Budget
	fmt.Printf("  Budget %s created %s\n", b.ID, humanize.Time(b.CreatedAt))
	fmt.Printf("  Scope:  %s\n", session.Scope())
	for _, acc := range b.Accounts {
		fmt.Printf("    %-12s %s\n", acc.ID, money.Format(acc.Budgeted, cfg.Ledger.CurrencySymbol))
	}
	fmt.Printf("  Total:  %s\n", money.Format(b.TotalAmount, cfg.Ledger.CurrencySymbol))
	return nil
}
