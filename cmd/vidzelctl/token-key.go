package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vidzel/vidzel/pkg/token"
)

// tokenKeyCmd represents the token-key command
var tokenKeyCmd = &cobra.Command{
	Use:   "token-key",
	Short: "Manage the session token signing key",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'token-key' requires a subcommand (generate)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// tokenKeyGenerateCmd represents the token-key > generate command
var tokenKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a token signing key",
	Long: `
Generate a token signing key

Use this command to generate a new Base64-encoded HMAC key. Once generated, this key should be placed into the environment of
the Vidzel server. Every session token is signed with it, so replacing the key signs out all users.

Example:

$ export VIDZEL_TOKEN_KEY="$(vidzelctl token-key generate)"
`,
	Run: func(cmd *cobra.Command, args []string) {
		key, err := token.GenerateKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate key: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s", base64.StdEncoding.Strict().EncodeToString(key))
	},
}

func init() {
	rootCmd.AddCommand(tokenKeyCmd)
	tokenKeyCmd.AddCommand(tokenKeyGenerateCmd)
}
