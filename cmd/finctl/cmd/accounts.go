package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/kasflow/backend/internal/services"
	"github.com/spf13/cobra"
)

var reconcileOwner int64

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Account maintenance",
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare running balances with the transaction history",
	Long: `Recompute each account's balance from its opening balance and
transactions and report any drift from the stored running balance.
Exits non-zero when an account has drifted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		accounts := services.NewAccountService(repository.NewPostgres(db))
		results, err := accounts.ReconcileAll(cmd.Context(), reconcileOwner)
		if err != nil {
			return err
		}

		drifted := printReconciliation(cmd.OutOrStdout(), results)
		slog.Info("reconciliation complete", "owner", reconcileOwner, "accounts", len(results), "drifted", drifted)
		if drifted > 0 {
			return fmt.Errorf("%d account(s) drifted", drifted)
		}
		return nil
	},
}

func init() {
	reconcileCmd.Flags().Int64Var(&reconcileOwner, "owner", 0, "owner id (required)")
	reconcileCmd.MarkFlagRequired("owner")
	accountsCmd.AddCommand(reconcileCmd)
}

func printReconciliation(w io.Writer, results []models.Reconciliation) int {
	drifted := 0
	for _, r := range results {
		status := "ok"
		if !r.Consistent {
			status = "DRIFT " + r.Drift.StringFixed(2)
			drifted++
		}
		fmt.Fprintf(w, "account %d: balance=%s derived=%s %s\n",
			r.AccountID, r.Balance.StringFixed(2), r.Derived.StringFixed(2), status)
	}
	return drifted
}
