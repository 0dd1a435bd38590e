// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"tro/internal/resolve"
	"tro/internal/trello"
)

// maxConcurrentFetches bounds the per-list card fetches when rendering
// a whole board, to avoid hammering the API.
const maxConcurrentFetches = 8

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List all open boards",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		exitOnError(err)

		s := newSpinner(" Fetching boards...")
		s.Start()
		boards, err := client.Boards()
		s.Stop()
		exitOnError(err)

		if len(boards) == 0 {
			fmt.Println("No open boards.")
			return
		}
		for _, board := range boards {
			fmt.Printf("- %s %s\n", board.Name, dimColor.Sprintf("(%s)", board.URL))
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show <board> [list [card]]",
	Short: "Show a board, list or card resolved from fuzzy name fragments",
	Long: `Resolves the given fragments to a board, list or card and renders it.

Pass '-' as the list fragment to match the card fragment against every
list on the board. An empty fragment ("") matches everything and always
opens the selection menu.`,
	Example:           "  tro show wrk\n  tro show work todo\n  tro show work todo 'pull request'\n  tro show work - groceries",
	Args:              cobra.RangeArgs(1, 3),
	ValidArgsFunction: pathCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		client, resolver, err := newResolver()
		exitOnError(err)

		res, err := resolver.Resolve(resolve.NewPath(args))
		exitOnError(err)

		switch {
		case res.Card != nil:
			renderCard(*res.Card)
		case res.List != nil:
			exitOnError(renderList(client, *res.List))
		default:
			exitOnError(renderBoard(client, *res.Board))
		}
	},
}

var urlCmd = &cobra.Command{
	Use:               "url <board> [list [card]]",
	Short:             "Print the web URL of the resolved board or card",
	Args:              cobra.RangeArgs(1, 3),
	ValidArgsFunction: pathCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		_, resolver, err := newResolver()
		exitOnError(err)

		res, err := resolver.Resolve(resolve.NewPath(args))
		exitOnError(err)

		switch {
		case res.Card != nil:
			fmt.Println(res.Card.URL)
		case res.List != nil:
			// Trello lists have no URL of their own.
			exitOnError(fmt.Errorf("list '%s' has no URL; its board is at %s", res.List.Name, res.Board.URL))
		default:
			fmt.Println(res.Board.URL)
		}
	},
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Color("cyan")
	s.Suffix = suffix
	return s
}

// header renders a name underlined with the given rune, the way the
// terminal output of the tool has always looked.
func header(name string, underline rune) string {
	return fmt.Sprintf("%s\n%s", name, strings.Repeat(string(underline), len([]rune(name))))
}

func renderCard(card trello.Card) {
	fmt.Println(boardColor.Sprint(header(card.Name, '=')))
	if card.Desc != "" {
		fmt.Printf("\n%s\n", card.Desc)
	}
	if card.URL != "" {
		fmt.Printf("\n%s\n", dimColor.Sprint(card.URL))
	}
}

func renderList(client *trello.Client, list trello.List) error {
	s := newSpinner(" Fetching cards...")
	s.Start()
	cards, err := client.Cards(list.ID)
	s.Stop()
	if err != nil {
		return err
	}

	fmt.Println(listColor.Sprint(header(list.Name, '-')))
	for _, card := range cards {
		fmt.Printf("* %s\n", card.Name)
	}
	return nil
}

// renderBoard shows every list on the board with its cards. The card
// fetches fan out with a bounded semaphore; rendering stays in remote
// list order.
func renderBoard(client *trello.Client, board trello.Board) error {
	s := newSpinner(" Fetching lists...")
	s.Start()
	lists, err := client.Lists(board.ID)
	if err != nil {
		s.Stop()
		return err
	}

	s.Suffix = " Fetching cards..."

	type result struct {
		cards []trello.Card
		err   error
	}
	results := make([]result, len(lists))

	sem := semaphore.NewWeighted(maxConcurrentFetches)
	ctx := context.Background()
	for i := range lists {
		if err := sem.Acquire(ctx, 1); err != nil {
			s.Stop()
			return fmt.Errorf("failed to acquire semaphore: %w", err)
		}
		go func(i int) {
			defer sem.Release(1)
			cards, err := client.Cards(lists[i].ID)
			results[i] = result{cards: cards, err: err}
		}(i)
	}
	if err := sem.Acquire(ctx, maxConcurrentFetches); err != nil {
		s.Stop()
		return fmt.Errorf("failed to drain semaphore: %w", err)
	}
	s.Stop()

	fmt.Println(boardColor.Sprint(header(board.Name, '=')))
	for i, list := range lists {
		if results[i].err != nil {
			return results[i].err
		}
		fmt.Printf("\n%s\n", listColor.Sprint(header(list.Name, '-')))
		for _, card := range results[i].cards {
			fmt.Printf("* %s\n", card.Name)
		}
	}
	if board.URL != "" {
		fmt.Printf("\n%s\n", dimColor.Sprint(board.URL))
	}
	return nil
}
