// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tro/internal/resolve"
	"tro/internal/ui"
)

var createDesc string

var createCmd = &cobra.Command{
	Use:               "create <board> <list> [name]",
	Short:             "Create a card in the resolved list",
	Example:           "  tro create work todo 'Review the backlog'\n  tro create work todo   # prompts for the card name",
	Args:              cobra.RangeArgs(2, 3),
	ValidArgsFunction: pathCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		client, resolver, err := newResolver()
		exitOnError(err)

		res, err := resolver.Resolve(resolve.NewPath(args[:2]))
		exitOnError(err)

		var name string
		if len(args) == 3 {
			name = args[2]
		} else {
			name, err = ui.PromptLine(
				fmt.Sprintf("New card in %s / %s", res.Board.Name, res.List.Name),
				"card name")
			exitOnError(err)
		}

		card, err := client.CreateCard(res.List.ID, name, createDesc)
		exitOnError(err)

		successColor.Printf("Created card '%s' in %s / %s\n",
			card.Name, res.Board.Name, identifierColor.Sprint(res.List.Name))
	},
}

var editCmd = &cobra.Command{
	Use:               "edit <board> <list> <card>",
	Short:             "Edit the resolved card's description in $EDITOR",
	Example:           "  tro edit work todo 'pull request'\n  tro edit work - groceries",
	Args:              cobra.ExactArgs(3),
	ValidArgsFunction: pathCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		client, resolver, err := newResolver()
		exitOnError(err)

		res, err := resolver.Resolve(resolve.NewPath(args))
		exitOnError(err)

		edited, err := openInEditor(res.Card.Desc)
		exitOnError(err)

		if edited == res.Card.Desc {
			statusColor.Println("No changes.")
			return
		}

		card := *res.Card
		card.Desc = edited
		_, err = client.UpdateCard(card)
		exitOnError(err)

		successColor.Printf("Updated card '%s'\n", card.Name)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close <board> [list [card]]",
	Short: "Archive the resolved board, list or card",
	Long: `Archives (closes) the deepest entity the fragments resolve to:
the card when three fragments are given, the list for two, the board for one.`,
	Args:              cobra.RangeArgs(1, 3),
	ValidArgsFunction: pathCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		client, resolver, err := newResolver()
		exitOnError(err)

		res, err := resolver.Resolve(resolve.NewPath(args))
		exitOnError(err)

		switch {
		case res.Card != nil:
			exitOnError(client.CloseCard(res.Card.ID))
			successColor.Printf("Closed card '%s'\n", res.Card.Name)
		case res.List != nil:
			exitOnError(client.CloseList(res.List.ID))
			successColor.Printf("Closed list '%s'\n", res.List.Name)
		default:
			exitOnError(client.CloseBoard(res.Board.ID))
			successColor.Printf("Closed board '%s'\n", res.Board.Name)
		}
	},
}

var rmForce bool

var rmCmd = &cobra.Command{
	Use:               "rm <board> <list> <card>",
	Short:             "Permanently delete the resolved card",
	Long:              `Deletes a card. Unlike 'close', this cannot be undone from the Trello UI.`,
	Args:              cobra.ExactArgs(3),
	ValidArgsFunction: pathCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		client, resolver, err := newResolver()
		exitOnError(err)

		res, err := resolver.Resolve(resolve.NewPath(args))
		exitOnError(err)

		if !rmForce && !confirm(fmt.Sprintf("Permanently delete card '%s'?", res.Card.Name)) {
			statusColor.Println("Aborted.")
			return
		}

		exitOnError(client.DeleteCard(res.Card.ID))
		successColor.Printf("Deleted card '%s'\n", res.Card.Name)
	},
}

func init() {
	createCmd.Flags().StringVarP(&createDesc, "desc", "d", "", "description for the new card")
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "skip the confirmation prompt")
}

// confirm asks a yes/no question on the terminal, defaulting to no.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
