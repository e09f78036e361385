package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hourdesk/auth"
	"hourdesk/storage"
	"hourdesk/timesheet"
)

var (
	userCreateUsername string
	userCreatePassword string
	userCreateRole     string
	userCreateDBPath   string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login credentials",
	Long:  `Credentials are never managed through the web UI; this is the administrative path.`,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a login credential",
	Example: `
  # Create a supervisor
  hourdesk user create --username chief --password s3cret

  # Create a non-supervisor credential
  hourdesk user create --username clerk --password s3cret --role other
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username := strings.TrimSpace(userCreateUsername)
		if username == "" {
			return fmt.Errorf("username must not be empty")
		}
		if userCreatePassword == "" {
			return fmt.Errorf("password must not be empty")
		}
		role := strings.TrimSpace(userCreateRole)
		if role != timesheet.RoleSupervisor && role != timesheet.RoleOther {
			return fmt.Errorf("unsupported role: %s (supported: supervisor, other)", role)
		}

		hash, err := auth.HashPassword(userCreatePassword)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(userCreateDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := store.InsertUser(timesheet.User{
			Username:     username,
			PasswordHash: hash,
			Role:         role,
		}); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return fmt.Errorf("username %q already exists", username)
			}
			return err
		}

		fmt.Printf("Created %s credential %q\n", role, username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)

	userCreateCmd.Flags().StringVar(&userCreateUsername, "username", "", "Login username (unique)")
	userCreateCmd.Flags().StringVar(&userCreatePassword, "password", "", "Plaintext password, hashed before storage")
	userCreateCmd.Flags().StringVar(&userCreateRole, "role", timesheet.RoleSupervisor, "Credential role: supervisor|other")
	userCreateCmd.Flags().StringVar(&userCreateDBPath, "db", "./hourdesk.db", "Path to local SQLite database")

	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")
}
