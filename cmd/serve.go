package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hourdesk/auth"
	"hourdesk/config"
	"hourdesk/storage"
	"hourdesk/timesheet"
	"hourdesk/web"
)

var (
	servePort   int
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the supervisor web application",
	Long: `Start the HTTP server with the login form, dashboard, and CSV export.

If the credential table is empty, a bootstrap supervisor is created from the
configured admin username and password (hashed before storage).`,
	Example: `
  # Start with config/env defaults
  hourdesk serve

  # Start with explicit port and database
  hourdesk serve --port 9090 --db ./hourdesk.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port = servePort
		}
		if cmd.Flags().Changed("db") {
			cfg.DB.Path = serveDBPath
		}

		store, err := storage.OpenSQLite(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := bootstrapAdmin(store, cfg.Admin); err != nil {
			return err
		}

		sessions := auth.NewSessionStore(cfg.Session.Secret, cfg.Session.TTL())
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler: web.NewServer(store, sessions),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Printf("Listening on http://localhost:%d\n", cfg.HTTP.Port)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the web server")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "./hourdesk.db", "Path to local SQLite database")
}

// bootstrapAdmin creates the first supervisor credential when no user
// exists yet, so a fresh install can always log in.
func bootstrapAdmin(store *storage.SQLiteStore, admin config.AdminConfig) error {
	count, err := store.CountUsers()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	if _, err := store.InsertUser(timesheet.User{
		Username:     admin.Username,
		PasswordHash: hash,
		Role:         timesheet.RoleSupervisor,
	}); err != nil {
		return fmt.Errorf("create bootstrap supervisor: %w", err)
	}

	fmt.Printf("Created bootstrap supervisor %q\n", admin.Username)
	return nil
}
