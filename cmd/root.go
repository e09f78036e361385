/*
Copyright © 2026

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hourdesk/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hourdesk",
	Short: "Supervisor dashboard for logging employee work hours against people, teams, and projects.",
	Long: `hourdesk runs a single-tenant web application where a supervisor records
work-hour entries against people, teams, and projects, reviews them on a
dashboard, and exports them as CSV or Excel.

Records live in a local SQLite database. Configuration is read once at
startup from .hourdesk.yaml or HOURDESK_* environment variables.`,
	Example: `
  # Start the web application on the default port
  hourdesk serve

  # Start on a custom port against an explicit database
  hourdesk serve --port 9090 --db ./hourdesk.db

  # Create an additional supervisor credential
  hourdesk user create --username chief --password s3cret

  # Export all logged hours
  hourdesk export --output ./hours.csv
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.hourdesk.yaml, then ./.hourdesk.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".hourdesk" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hourdesk")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// Running without a config file is fine; defaults and env cover every key.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config: %v\n", err)
		}
	}
}
