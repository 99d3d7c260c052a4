package policy

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/creatorhub/creatorhub/internal/application/entitlement/usecases"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/infrastructure/database"
	"github.com/creatorhub/creatorhub/internal/infrastructure/permission"
	"github.com/creatorhub/creatorhub/internal/infrastructure/repository"
	"github.com/creatorhub/creatorhub/internal/interfaces/cli/bootstrap"
	"github.com/creatorhub/creatorhub/internal/shared/constants"
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect the entitlement policy and manage admin roles",
	}
	cmd.AddCommand(newShowCommand(opts), newGrantAdminCommand(opts), newRevokeAdminCommand(opts))
	return cmd
}

func newShowCommand(opts *bootstrap.Options) *cobra.Command {
	var (
		format string
		live   bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the plan x feature access matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := entitlement.DefaultPolicy()
			costs := table.DefaultCosts()
			if live {
				_, log, db, err := opts.InitWithDatabase()
				if err != nil {
					return err
				}
				defer database.Close()
				resolver := usecases.NewCostResolver(table, repository.NewFeatureCostRepository(db, log), nil, log)
				if costs, err = resolver.Costs(cmd.Context()); err != nil {
					return err
				}
			}

			rows, err := Matrix(table, costs)
			if err != nil {
				return err
			}
			switch format {
			case "yaml":
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(rows)
			case "table":
				return writeTable(cmd.OutOrStdout(), rows)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, yaml)")
	cmd.Flags().BoolVar(&live, "live", false, "Apply token cost overrides stored in the database")
	return cmd
}

// Row is one feature across every plan.
type Row struct {
	Feature   entitlement.FeatureID       `yaml:"feature"`
	TokenCost int                         `yaml:"token_cost"`
	Access    map[entitlement.Plan]string `yaml:"access"`
	FullFrom  entitlement.Plan            `yaml:"full_from"`
	Reachable bool                        `yaml:"reachable"`
}

// Matrix evaluates every feature for every plan in catalog order.
func Matrix(table *entitlement.PolicyTable, costs entitlement.CostTable) ([]Row, error) {
	features := table.Features()
	rows := make([]Row, 0, len(features))
	for _, f := range features {
		row := Row{Feature: f.ID, Access: make(map[entitlement.Plan]string, len(entitlement.Plans))}
		for _, plan := range entitlement.Plans {
			ent, err := table.Evaluate(f.ID, plan, costs)
			if err != nil {
				return nil, err
			}
			row.Access[plan] = ent.AccessTier.String()
			row.TokenCost = ent.TokenCost
			row.FullFrom = ent.RequiredPlanForFull
			row.Reachable = ent.Reachable
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeTable(out io.Writer, rows []Row) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "FEATURE\tCOST")
	for _, plan := range entitlement.Plans {
		fmt.Fprintf(w, "\t%s", plan)
	}
	fmt.Fprintln(w, "\tFULL FROM")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d", r.Feature, r.TokenCost)
		for _, plan := range entitlement.Plans {
			fmt.Fprintf(w, "\t%s", r.Access[plan])
		}
		fullFrom := string(r.FullFrom)
		if !r.Reachable {
			fullFrom = "-"
		}
		fmt.Fprintf(w, "\t%s\n", fullFrom)
	}
	return w.Flush()
}

func newGrantAdminCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "grant-admin <user-id>",
		Short: "Give a user the admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnforcer(opts, func(e *permission.Enforcer) error {
				if err := e.AddRoleForUser(args[0], constants.RoleAdmin); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "granted %s to %s\n", constants.RoleAdmin, args[0])
				return nil
			})
		},
	}
}

func newRevokeAdminCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke-admin <user-id>",
		Short: "Remove the admin role from a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnforcer(opts, func(e *permission.Enforcer) error {
				if err := e.DeleteRoleForUser(args[0], constants.RoleAdmin); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "revoked %s from %s\n", constants.RoleAdmin, args[0])
				return nil
			})
		},
	}
}

func withEnforcer(opts *bootstrap.Options, fn func(e *permission.Enforcer) error) error {
	_, log, db, err := opts.InitWithDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	e, err := permission.NewEnforcer(db, log)
	if err != nil {
		return err
	}
	if err := e.InitPermissions(); err != nil {
		return err
	}
	return fn(e)
}

