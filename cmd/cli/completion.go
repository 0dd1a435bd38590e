// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"

	"tro/internal/match"
	"tro/internal/trello"
)

// pathCompletionFunc completes the board / list / card positional
// fragments. Errors are swallowed: completion must never break the
// shell, it just offers nothing.
func pathCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	client, err := newClient()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	switch len(args) {
	case 0:
		names = boardNamesForCompletion(client)
	case 1:
		names = listNamesForCompletion(client, args[0])
	case 2:
		names = cardNamesForCompletion(client, args[0], args[1])
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Rank by the matcher so the tightest completions come first.
	var completions []string
	for _, m := range match.Rank(toComplete, names) {
		completions = append(completions, m.Name)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func boardNamesForCompletion(client *trello.Client) []string {
	boards, err := client.Boards()
	if err != nil {
		return nil
	}
	names := make([]string, len(boards))
	for i, b := range boards {
		names[i] = b.Name
	}
	return names
}

// listNamesForCompletion resolves the board fragment non-interactively
// (best ranked match wins) and returns its list names.
func listNamesForCompletion(client *trello.Client, boardFragment string) []string {
	board := bestBoard(client, boardFragment)
	if board == nil {
		return nil
	}
	lists, err := client.Lists(board.ID)
	if err != nil {
		return nil
	}
	names := make([]string, len(lists))
	for i, l := range lists {
		names[i] = l.Name
	}
	return names
}

func cardNamesForCompletion(client *trello.Client, boardFragment, listFragment string) []string {
	board := bestBoard(client, boardFragment)
	if board == nil {
		return nil
	}
	lists, err := client.Lists(board.ID)
	if err != nil {
		return nil
	}
	listNames := make([]string, len(lists))
	for i, l := range lists {
		listNames[i] = l.Name
	}
	ranked := match.Rank(listFragment, listNames)
	if len(ranked) == 0 {
		return nil
	}
	cards, err := client.Cards(lists[ranked[0].Index].ID)
	if err != nil {
		return nil
	}
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name
	}
	return names
}

func bestBoard(client *trello.Client, fragment string) *trello.Board {
	boards, err := client.Boards()
	if err != nil {
		return nil
	}
	names := make([]string, len(boards))
	for i, b := range boards {
		names[i] = b.Name
	}
	ranked := match.Rank(fragment, names)
	if len(ranked) == 0 {
		return nil
	}
	return &boards[ranked[0].Index]
}
