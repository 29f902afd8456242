// Package useradd creates accounts from the command line
package useradd

import (
	"fmt"

	"fjacquet/mocktest/cmd/root"
	"fjacquet/mocktest/internal/config"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"

	"github.com/spf13/cobra"
)

// PasswordEnv is read when --password is not given.
const PasswordEnv = "MOCKTEST_PASSWORD"

var (
	username string
	email    string
	password string
	admin    bool
)

// Cmd represents the useradd command
var Cmd = &cobra.Command{
	Use:   "useradd",
	Short: "Create a user or admin account",
	Long: `Create an account. Admin accounts may upload and delete tests.

Example:
  MOCKTEST_PASSWORD=s3cret mocktest useradd --username alice --admin`,
	RunE: useraddFunc,
}

func init() {
	Cmd.Flags().StringVar(&username, "username", "", "Account name (required)")
	Cmd.Flags().StringVar(&email, "email", "", "Email address")
	Cmd.Flags().StringVar(&password, "password", "", "Password (default: $"+PasswordEnv+")")
	Cmd.Flags().BoolVar(&admin, "admin", false, "Grant the admin role")
	_ = Cmd.MarkFlagRequired("username")
}

func useraddFunc(cmd *cobra.Command, args []string) error {
	pw := password
	if pw == "" {
		pw = config.GetEnv(PasswordEnv, "")
	}
	role := models.RoleUser
	if admin {
		role = models.RoleAdmin
	}

	c, err := root.GetContainer(cmd.Context())
	if err != nil {
		return err
	}
	u, err := c.GetAuth().Register(cmd.Context(), username, email, pw, role)
	if err != nil {
		return fmt.Errorf("error creating user %s: %w", username, err)
	}

	root.GetLogger().Info("Created user",
		logging.F(logging.FieldUserID, u.ID),
		logging.F("role", u.Role))
	fmt.Fprintf(cmd.OutOrStdout(), "created %s (id %d, %s)\n", u.Username, u.ID, u.Role)
	return nil
}
