package main

import (
	"fmt"
	"os"
	"time"

	"budget-ledger/internal/service"
	"budget-ledger/pkg/auth"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	tokenUser        string
	tokenEmail       string
	tokenRole        string
	tokenAccountType string
	tokenOrg         string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed access token for local testing",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User id (required)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email shown as transaction author")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(service.RoleMember), "Role (admin, member)")
	tokenCmd.Flags().StringVar(&tokenAccountType, "account-type", string(service.AccountTypePersonal), "Account type (personal, joint)")
	tokenCmd.Flags().StringVar(&tokenOrg, "org", "", "Organization id for joint accounts (default SHARED_ORGANIZATION_ID)")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	session := service.Session{
		UserID:      tokenUser,
		Email:       tokenEmail,
		Role:        service.Role(tokenRole),
		AccountType: service.AccountType(tokenAccountType),
	}
	if session.AccountType == service.AccountTypeJoint {
		session.OrganizationID = tokenOrg
		if session.OrganizationID == "" {
			session.OrganizationID = cfg.Ledger.SharedOrganizationID
		}
	}
	if err := session.Validate(); err != nil {
		return err
	}

	manager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.Issuer)
	token, err := manager.GenerateToken(auth.TokenInput{
		UserID:         session.UserID,
		Email:          session.Email,
		Role:           string(session.Role),
		AccountType:    string(session.AccountType),
		OrganizationID: session.OrganizationID,
	})
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "  expires %s\n", humanize.Time(time.Now().Add(manager.GetTokenDuration())))
	return nil
}
