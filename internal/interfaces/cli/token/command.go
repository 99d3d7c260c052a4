package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/creatorhub/creatorhub/internal/infrastructure/auth"
	"github.com/creatorhub/creatorhub/internal/interfaces/cli/bootstrap"
	"github.com/creatorhub/creatorhub/internal/shared/constants"
)

// NewCommand mints bearer tokens for local development. Production tokens
// come from the identity service.
func NewCommand(opts *bootstrap.Options) *cobra.Command {
	var (
		email string
		role  string
		ttl   time.Duration
	)

	issue := &cobra.Command{
		Use:   "issue <user-id>",
		Short: "Sign a bearer token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.Init()
			if err != nil {
				return err
			}
			signed, err := auth.NewJWTService(cfg.Auth).Issue(args[0], email, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	issue.Flags().StringVar(&email, "email", "", "Email claim")
	issue.Flags().StringVar(&role, "role", constants.RoleUser, "Role claim (user, admin)")
	issue.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Development token tools",
	}
	cmd.AddCommand(issue)
	return cmd
}
