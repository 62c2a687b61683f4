package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidzel/vidzel/pkg/model"
	gormstore "github.com/vidzel/vidzel/pkg/server/store/gorm"
)

// accountListCmd represents the account list command
var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Long: `List all accounts, oldest first.

Example:
  vidzelctl account list
  vidzelctl account list --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		database, err := connectDatabase()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list accounts: %v\n", err)
			os.Exit(1)
		}
		accounts, err := gormstore.NewAccountsStore(database).ListAccounts(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list accounts: %v\n", err)
			os.Exit(1)
		}

		if err := printAccounts(os.Stdout, accounts, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list accounts: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountListCmd)
	accountListCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func printAccounts(w io.Writer, accounts []model.Account, output string) error {
	if output == "json" {
		if accounts == nil {
			accounts = []model.Account{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(accounts)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tROLE\tNAME\tCREATED")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Email, a.Role, a.Name, a.CreatedAt.Format(time.DateOnly))
	}
	return tw.Flush()
}
