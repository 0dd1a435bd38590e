// SPDX-License-Identifier: Apache-2.0

// Package resolve turns fuzzy board/list/card name fragments into
// concrete Trello entities. It fetches candidates one level at a time
// through the API port, narrows them with the matcher, and defers to
// the Chooser port when more than one candidate survives.
package resolve

import (
	"errors"
	"fmt"

	"tro/internal/logger"
	"tro/internal/match"
	"tro/internal/trello"
)

// Level identifies which step of the board → list → card descent an
// error or prompt refers to.
type Level int

const (
	LevelBoard Level = iota
	LevelList
	LevelCard
)

func (l Level) String() string {
	switch l {
	case LevelBoard:
		return "board"
	case LevelList:
		return "list"
	case LevelCard:
		return "card"
	default:
		return "unknown"
	}
}

// WildcardList is the list fragment that widens a card search to every
// list on the board.
const WildcardList = "-"

// ErrAborted is returned when the user cancels an interactive
// selection. It is a clean early termination, not a failure worth
// logging.
var ErrAborted = errors.New("selection aborted")

// NotFoundError reports that no candidate at a level matched the
// fragment.
type NotFoundError struct {
	Level    Level
	Fragment string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: no match for '%s'", e.Level, e.Fragment)
}

// API is the client capability the resolver consumes. One fetch per
// level traversed; *trello.Client satisfies it.
type API interface {
	Boards() ([]trello.Board, error)
	Lists(boardID string) ([]trello.List, error)
	Cards(listID string) ([]trello.Card, error)
}

// Chooser is the prompt capability used to break ties. Choose presents
// options in the given order and returns the selected index, or
// ErrAborted when the user cancels.
type Chooser interface {
	Choose(level Level, options []string) (int, error)
}

// Path holds the fuzzy fragments of one resolution request. List and
// Card are pointers so "not given" and "given but empty" stay distinct:
// an empty fragment matches every candidate and forces a menu.
type Path struct {
	Board string
	List  *string
	Card  *string
}

// NewPath builds a Path from positional command arguments
// (board [list [card]]).
func NewPath(args []string) Path {
	p := Path{Board: args[0]}
	if len(args) > 1 {
		p.List = &args[1]
	}
	if len(args) > 2 {
		p.Card = &args[2]
	}
	return p
}

// Resolution is the outcome of a resolve call. Board is always set;
// List and Card are set as deep as the path reached. A wildcard card
// search leaves List nil.
type Resolution struct {
	Board *trello.Board
	List  *trello.List
	Card  *trello.Card
}

// Resolver orchestrates the descent. It never retries and never
// recovers: every failure is returned to the command handler, which
// owns presentation.
type Resolver struct {
	api     API
	chooser Chooser
}

func New(api API, chooser Chooser) *Resolver {
	return &Resolver{api: api, chooser: chooser}
}

// Resolve descends the path one level at a time. Remote state is never
// mutated here, so an abort or failure at any level leaves nothing
// behind.
func (r *Resolver) Resolve(path Path) (*Resolution, error) {
	boards, err := r.api.Boards()
	if err != nil {
		return nil, err
	}
	board, err := pick(r.chooser, LevelBoard, path.Board, boards)
	if err != nil {
		return nil, err
	}
	res := &Resolution{Board: board}

	if path.List == nil {
		return res, nil
	}
	logger.Debug("Resolved board", "board", board.Name, "id", board.ID)

	if *path.List == WildcardList {
		if path.Card == nil {
			return nil, fmt.Errorf("a card fragment is required with the '%s' list wildcard", WildcardList)
		}
		card, err := r.findCardAcrossLists(board.ID, *path.Card)
		if err != nil {
			return nil, err
		}
		res.Card = card
		return res, nil
	}

	lists, err := r.api.Lists(board.ID)
	if err != nil {
		return nil, err
	}
	list, err := pick(r.chooser, LevelList, *path.List, lists)
	if err != nil {
		return nil, err
	}
	res.List = list

	if path.Card == nil {
		return res, nil
	}
	logger.Debug("Resolved list", "list", list.Name, "id", list.ID)

	cards, err := r.api.Cards(list.ID)
	if err != nil {
		return nil, err
	}
	card, err := pick(r.chooser, LevelCard, *path.Card, cards)
	if err != nil {
		return nil, err
	}
	res.Card = card
	return res, nil
}

// findCardAcrossLists matches a card fragment against the cards of
// every list on the board. The lists are fetched once, then each
// list's cards in turn; matching runs over the combined set so the
// ranking and disambiguation rules are identical to the scoped case.
func (r *Resolver) findCardAcrossLists(boardID, fragment string) (*trello.Card, error) {
	lists, err := r.api.Lists(boardID)
	if err != nil {
		return nil, err
	}

	var cards []trello.Card
	for _, list := range lists {
		batch, err := r.api.Cards(list.ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, batch...)
	}

	return pick(r.chooser, LevelCard, fragment, cards)
}

// named abstracts the three entity types for pick.
type named interface {
	DisplayName() string
}

// pick applies the matcher to one level's candidates and reduces to a
// single entity:
//
//   - no match: NotFoundError
//   - one match, or exactly one exact match: taken without prompting
//   - otherwise: the chooser decides, in rank order
func pick[T named](chooser Chooser, level Level, fragment string, candidates []T) (*T, error) {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.DisplayName()
	}

	ranked := match.Rank(fragment, names)
	if len(ranked) == 0 {
		return nil, &NotFoundError{Level: level, Fragment: fragment}
	}

	if len(ranked) == 1 || match.ExactCount(ranked) == 1 {
		chosen := candidates[ranked[0].Index]
		return &chosen, nil
	}

	logger.Debug("Ambiguous match, prompting",
		"level", level.String(),
		"fragment", fragment,
		"candidates", len(ranked))

	idx, err := chooser.Choose(level, match.Names(ranked))
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(ranked) {
		return nil, fmt.Errorf("chooser returned out-of-range index %d for %d options", idx, len(ranked))
	}
	chosen := candidates[ranked[idx].Index]
	return &chosen, nil
}
