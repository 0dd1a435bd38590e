package resolve

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"tro/internal/logger"
	"tro/internal/trello"
)

func TestMain(m *testing.M) {
	logger.SetLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	m.Run()
}

// Ensure mockAPI implements the port.
var _ API = (*mockAPI)(nil)

// mockAPI implements API for testing, counting fetches per level.
type mockAPI struct {
	boards []trello.Board
	lists  map[string][]trello.List
	cards  map[string][]trello.Card

	boardsErr error
	listsErr  error
	cardsErr  error

	boardsCalls int
	listsCalls  int
	cardsCalls  int
}

func (m *mockAPI) Boards() ([]trello.Board, error) {
	m.boardsCalls++
	if m.boardsErr != nil {
		return nil, m.boardsErr
	}
	return m.boards, nil
}

func (m *mockAPI) Lists(boardID string) ([]trello.List, error) {
	m.listsCalls++
	if m.listsErr != nil {
		return nil, m.listsErr
	}
	return m.lists[boardID], nil
}

func (m *mockAPI) Cards(listID string) ([]trello.Card, error) {
	m.cardsCalls++
	if m.cardsErr != nil {
		return nil, m.cardsErr
	}
	return m.cards[listID], nil
}

// chooserFunc adapts a function to the Chooser port.
type chooserFunc func(level Level, options []string) (int, error)

func (f chooserFunc) Choose(level Level, options []string) (int, error) {
	return f(level, options)
}

// forbiddenChooser fails the test if the resolver prompts at all.
func forbiddenChooser(t *testing.T) Chooser {
	t.Helper()
	return chooserFunc(func(level Level, options []string) (int, error) {
		t.Fatalf("chooser invoked at level %s with options %v, want no prompt", level, options)
		return -1, nil
	})
}

func newTestAPI() *mockAPI {
	return &mockAPI{
		boards: []trello.Board{
			{ID: "b1", Name: "Work"},
			{ID: "b2", Name: "Personal"},
		},
		lists: map[string][]trello.List{
			"b1": {
				{ID: "l1", Name: "TODO", BoardID: "b1"},
				{ID: "l2", Name: "Done", BoardID: "b1"},
			},
		},
		cards: map[string][]trello.Card{
			"l1": {
				{ID: "c1", Name: "Groceries", ListID: "l1"},
				{ID: "c2", Name: "Grocery List", ListID: "l1"},
				{ID: "c3", Name: "Taxes", ListID: "l1"},
			},
			"l2": {
				{ID: "c4", Name: "Old groceries run", ListID: "l2"},
			},
		},
	}
}

func strptr(s string) *string { return &s }

func TestResolveExactPathNeverPrompts(t *testing.T) {
	api := newTestAPI()
	r := New(api, forbiddenChooser(t))

	res, err := r.Resolve(Path{Board: "work", List: strptr("todo"), Card: strptr("Taxes")})
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	if res.Board.ID != "b1" || res.List.ID != "l1" || res.Card.ID != "c3" {
		t.Errorf("Resolve() = (%v, %v, %v), want (b1, l1, c3)", res.Board.ID, res.List.ID, res.Card.ID)
	}
	if api.boardsCalls != 1 || api.listsCalls != 1 || api.cardsCalls != 1 {
		t.Errorf("fetch counts = (%d, %d, %d), want one per level",
			api.boardsCalls, api.listsCalls, api.cardsCalls)
	}
}

func TestResolveBoardOnly(t *testing.T) {
	api := newTestAPI()
	r := New(api, forbiddenChooser(t))

	res, err := r.Resolve(Path{Board: "pers"})
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if res.Board.ID != "b2" || res.List != nil || res.Card != nil {
		t.Errorf("Resolve() = %+v, want board b2 only", res)
	}
	if api.listsCalls != 0 || api.cardsCalls != 0 {
		t.Errorf("deeper levels fetched: lists=%d cards=%d, want 0", api.listsCalls, api.cardsCalls)
	}
}

func TestResolveAmbiguityPromptsOnceWithRankedOptions(t *testing.T) {
	api := newTestAPI()

	var gotLevel Level
	var gotOptions []string
	calls := 0
	chooser := chooserFunc(func(level Level, options []string) (int, error) {
		calls++
		gotLevel = level
		gotOptions = options
		return 1, nil
	})

	r := New(api, chooser)
	res, err := r.Resolve(Path{Board: "Work", List: strptr("TODO"), Card: strptr("Gro")})
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	if calls != 1 {
		t.Fatalf("chooser invoked %d times, want 1", calls)
	}
	if gotLevel != LevelCard {
		t.Errorf("chooser level = %s, want card", gotLevel)
	}
	// Substring matches ranked by ascending name length.
	wantOptions := []string{"Groceries", "Grocery List"}
	if !reflect.DeepEqual(gotOptions, wantOptions) {
		t.Errorf("chooser options = %v, want %v", gotOptions, wantOptions)
	}
	// Index 1 of the ranked options maps back to the right card.
	if res.Card.ID != "c2" {
		t.Errorf("resolved card = %s, want c2 (Grocery List)", res.Card.ID)
	}
}

func TestResolveSingleExactAmongSubstringsSkipsPrompt(t *testing.T) {
	api := newTestAPI()
	api.cards["l1"] = append(api.cards["l1"], trello.Card{ID: "c9", Name: "Gro", ListID: "l1"})

	r := New(api, forbiddenChooser(t))
	res, err := r.Resolve(Path{Board: "Work", List: strptr("TODO"), Card: strptr("gro")})
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if res.Card.ID != "c9" {
		t.Errorf("resolved card = %s, want the exact match c9", res.Card.ID)
	}
}

func TestResolveNotFound(t *testing.T) {
	api := newTestAPI()
	r := New(api, forbiddenChooser(t))

	_, err := r.Resolve(Path{Board: "Work", List: strptr("nonexistent")})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve() error = %v, want NotFoundError", err)
	}
	if notFound.Level != LevelList || notFound.Fragment != "nonexistent" {
		t.Errorf("NotFoundError = {%s, %q}, want {list, nonexistent}", notFound.Level, notFound.Fragment)
	}
}

func TestResolveAbortStopsBeforeCardFetch(t *testing.T) {
	api := newTestAPI()
	// Both lists contain "o", neither is an exact match for the fragment.
	chooser := chooserFunc(func(level Level, options []string) (int, error) {
		if level != LevelList {
			t.Fatalf("chooser invoked at level %s, want list", level)
		}
		return -1, ErrAborted
	})

	r := New(api, chooser)
	_, err := r.Resolve(Path{Board: "Work", List: strptr("o"), Card: strptr("Taxes")})

	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Resolve() error = %v, want ErrAborted", err)
	}
	if api.cardsCalls != 0 {
		t.Errorf("cards fetched %d times after abort, want 0", api.cardsCalls)
	}
}

func TestResolveAPIErrorPropagatesUnchanged(t *testing.T) {
	api := newTestAPI()
	apiErr := &trello.APIError{Detail: "GET /1/members/me/boards returned 503"}
	api.boardsErr = apiErr

	r := New(api, forbiddenChooser(t))
	_, err := r.Resolve(Path{Board: "Work"})

	var got *trello.APIError
	if !errors.As(err, &got) || got != apiErr {
		t.Errorf("Resolve() error = %v, want the API error propagated verbatim", err)
	}
}

func TestResolveWildcardSearchesAllLists(t *testing.T) {
	api := newTestAPI()
	r := New(api, forbiddenChooser(t))

	res, err := r.Resolve(Path{Board: "Work", List: strptr(WildcardList), Card: strptr("Old groc")})
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	if res.Card == nil || res.Card.ID != "c4" {
		t.Fatalf("resolved card = %+v, want c4 from the Done list", res.Card)
	}
	if res.List != nil {
		t.Errorf("wildcard resolution set List = %v, want nil", res.List)
	}
	if api.cardsCalls != 2 {
		t.Errorf("cards fetched %d times, want once per list", api.cardsCalls)
	}
}

func TestResolveWildcardAmbiguitySpansLists(t *testing.T) {
	api := newTestAPI()

	var gotOptions []string
	chooser := chooserFunc(func(level Level, options []string) (int, error) {
		gotOptions = options
		return 0, nil
	})

	r := New(api, chooser)
	res, err := r.Resolve(Path{Board: "Work", List: strptr(WildcardList), Card: strptr("groc")})
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	wantOptions := []string{"Groceries", "Grocery List", "Old groceries run"}
	if !reflect.DeepEqual(gotOptions, wantOptions) {
		t.Errorf("chooser options = %v, want %v", gotOptions, wantOptions)
	}
	if res.Card.ID != "c1" {
		t.Errorf("resolved card = %s, want c1", res.Card.ID)
	}
}

func TestResolveWildcardRequiresCardFragment(t *testing.T) {
	api := newTestAPI()
	r := New(api, forbiddenChooser(t))

	_, err := r.Resolve(Path{Board: "Work", List: strptr(WildcardList)})
	if err == nil {
		t.Fatal("Resolve() error = nil, want wildcard usage error")
	}
}

func TestResolveEmptyFragmentListsEverything(t *testing.T) {
	api := newTestAPI()

	var gotOptions []string
	chooser := chooserFunc(func(level Level, options []string) (int, error) {
		gotOptions = options
		return 0, nil
	})

	r := New(api, chooser)
	res, err := r.Resolve(Path{Board: ""})
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}

	// Every board offered, ascending name length.
	wantOptions := []string{"Work", "Personal"}
	if !reflect.DeepEqual(gotOptions, wantOptions) {
		t.Errorf("chooser options = %v, want %v", gotOptions, wantOptions)
	}
	if res.Board.ID != "b1" {
		t.Errorf("resolved board = %s, want b1", res.Board.ID)
	}
}

func TestNewPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Path
	}{
		{
			name: "board only",
			args: []string{"work"},
			want: Path{Board: "work"},
		},
		{
			name: "board and list",
			args: []string{"work", "todo"},
			want: Path{Board: "work", List: strptr("todo")},
		},
		{
			name: "full path keeps empty fragments distinct",
			args: []string{"work", "", "taxes"},
			want: Path{Board: "work", List: strptr(""), Card: strptr("taxes")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPath(tt.args)
			if got.Board != tt.want.Board {
				t.Errorf("Board = %q, want %q", got.Board, tt.want.Board)
			}
			if (got.List == nil) != (tt.want.List == nil) ||
				(got.List != nil && *got.List != *tt.want.List) {
				t.Errorf("List = %v, want %v", got.List, tt.want.List)
			}
			if (got.Card == nil) != (tt.want.Card == nil) ||
				(got.Card != nil && *got.Card != *tt.want.Card) {
				t.Errorf("Card = %v, want %v", got.Card, tt.want.Card)
			}
		})
	}
}
