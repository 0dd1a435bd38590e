// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tro/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the tro configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.DefaultConfigPath()
		exitOnError(err)
		fmt.Println(path)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a template configuration file",
	Long: `Creates the configuration file with placeholder credentials.
Get an API key and token from https://trello.com/app-key and fill them in.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.DefaultConfigPath()
		exitOnError(err)

		if _, err := os.Stat(path); err == nil {
			errorColor.Fprintf(os.Stderr, "Error: %s already exists, not overwriting.\n", path)
			os.Exit(1)
		}

		err = config.SaveConfig(config.Config{
			Host:  config.DefaultHost,
			Key:   "YOUR-API-KEY",
			Token: "YOUR-API-TOKEN",
		})
		exitOnError(err)

		successColor.Printf("Wrote template config to %s\n", path)
		statusColor.Println("Fill in your key and token from https://trello.com/app-key")
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}
