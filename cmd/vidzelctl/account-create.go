package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vidzel/vidzel/pkg/authenticator/authn"
	"github.com/vidzel/vidzel/pkg/model"
	gormstore "github.com/vidzel/vidzel/pkg/server/store/gorm"
)

// accountCreateCmd represents the account create command
var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Long: `Create an account.

The new account id is written to STDOUT. When --password is omitted a
random password is generated and written to STDOUT as well; it is not
stored anywhere in plain text and cannot be shown again.

Users with the student, volunteer or mentor role also get an empty profile.

Example:
  vidzelctl account create --email team@greenearth.org --name "Green Earth" --role organization
  vidzelctl account create --email ada@example.org --name "Ada Lovelace" --role student --password s3cret`,
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		roleName, _ := cmd.Flags().GetString("role")
		password, _ := cmd.Flags().GetString("password")

		role, err := model.RoleString(strings.ToLower(strings.TrimSpace(roleName)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid role %q (expected one of %s)\n", roleName, strings.Join(model.RoleStrings(), ", "))
			os.Exit(1)
		}

		account, generated, err := createAccount(context.Background(), email, name, role, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create account: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created %s account '%s'\n", account.Role, account.Email)
		fmt.Println(account.ID)
		if generated != "" {
			fmt.Printf("Generated password: %s\n", generated)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountCreateCmd)
	accountCreateCmd.Flags().StringP("email", "e", "", "Account email (required)")
	accountCreateCmd.Flags().StringP("name", "n", "", "Display name (required)")
	accountCreateCmd.Flags().StringP("role", "r", "volunteer", "Role: volunteer, student, mentor or organization")
	accountCreateCmd.Flags().StringP("password", "p", "", "Password (generated when empty)")
	_ = accountCreateCmd.MarkFlagRequired("email")
	_ = accountCreateCmd.MarkFlagRequired("name")
}

// createAccount returns the generated password when none was given
func createAccount(ctx context.Context, email, name string, role model.Role, password string) (*model.Account, string, error) {
	email = model.NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return nil, "", fmt.Errorf("email and name are required")
	}

	var generated string
	if password == "" {
		var err error
		if generated, err = authn.GeneratePassword(); err != nil {
			return nil, "", err
		}
		password = generated
	}
	hash, err := authn.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	database, err := connectDatabase()
	if err != nil {
		return nil, "", err
	}

	account := &model.Account{Name: name, Email: email, PasswordHash: hash, Role: role}
	var profile *model.Profile
	if !account.IsOrganization() {
		profile = &model.Profile{FullName: name}
	}
	if err := gormstore.NewAccountsStore(database).CreateAccount(ctx, account, profile); err != nil {
		return nil, "", err
	}
	return account, generated, nil
}
