// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tro/internal/config"
	"tro/internal/logger"
	"tro/internal/resolve"
	"tro/internal/trello"
	"tro/internal/ui"
)

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	boardColor      = color.New(color.FgMagenta, color.Bold)
	listColor       = color.New(color.FgYellow, color.Bold)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

var rootCmd = &cobra.Command{
	Use:   "tro",
	Short: "Trello CLI interface",
	Long: `A command-line interface for Trello boards, lists and cards.

Entities are referred to by fuzzy name fragments (board [list [card]]).
A fragment matches any entity whose name contains it, case-insensitively;
when several match, an interactive menu asks which one you meant.
Credentials are read from ` + "`tro config path`" + `.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Interactive prompts own the terminal, so logs go to the
		// state-dir file only.
		logger.InitLogger(true)
		return nil
	},
}

// RunCLI executes the root command.
func RunCLI() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(configCmd)
}

// newClient builds the API client from the config file.
func newClient() (*trello.Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		configPath, pathErr := config.DefaultConfigPath()
		if pathErr != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w (in %s)", err, configPath)
	}
	return trello.NewClient(cfg.Host, cfg.Key, cfg.Token), nil
}

// newResolver wires the client to the interactive picker.
func newResolver() (*trello.Client, *resolve.Resolver, error) {
	client, err := newClient()
	if err != nil {
		return nil, nil, err
	}
	return client, resolve.New(client, ui.Picker{}), nil
}

// exitOnError presents a failure and terminates the command. A
// cancelled prompt is a clean early exit, not an error.
func exitOnError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, resolve.ErrAborted) {
		statusColor.Println("Aborted.")
		os.Exit(0)
	}

	var notFound *resolve.NotFoundError
	var apiErr *trello.APIError
	switch {
	case errors.As(err, &notFound):
		errorColor.Fprintf(os.Stderr, "Error: %v\n", notFound)
	case errors.As(err, &apiErr):
		logger.Error("Trello API failure", "detail", apiErr.Detail)
		errorColor.Fprintf(os.Stderr, "Error: %v\n", apiErr)
	default:
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
