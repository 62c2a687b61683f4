package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vidzel/vidzel/pkg/server/store"
	gormstore "github.com/vidzel/vidzel/pkg/server/store/gorm"
)

// accountDeleteCmd represents the account delete command
var accountDeleteCmd = &cobra.Command{
	Use:   "delete <email>",
	Short: "Delete an account",
	Long: `Delete an account and everything that depends on it.

Projects, applications, invitations, memberships, submissions and
notifications belonging to the account are removed with it.

Example:
  vidzelctl account delete ada@example.org`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]

		database, err := connectDatabase()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete account: %v\n", err)
			os.Exit(1)
		}

		err = gormstore.NewAccountsStore(database).DeleteAccount(context.Background(), email)
		if errors.Is(err, store.ErrAccountNotFound) {
			fmt.Fprintf(os.Stderr, "Account '%s' does not exist\n", email)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete account: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Deleted account '%s'\n", email)
	},
}

func init() {
	accountCmd.AddCommand(accountDeleteCmd)
}
