// SPDX-License-Identifier: Apache-2.0

// Package trello defines the Trello entity types and the REST client
// used to fetch and mutate them. Entities are plain values owned by the
// remote API; identity is the opaque ID, names are mutable and may
// collide.
package trello

// Board is a top-level Trello container holding lists.
type Board struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// List is an ordered column within a board holding cards.
type List struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BoardID string `json:"idBoard"`
	Closed  bool   `json:"closed,omitempty"`
}

// Card is a leaf work item within a list.
type Card struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	ListID string `json:"idList"`
	Desc   string `json:"desc,omitempty"`
	URL    string `json:"url,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// DisplayName implementations let entities flow through generic
// presentation code (menus, renderers) without type switches.

func (b Board) DisplayName() string { return b.Name }
func (l List) DisplayName() string  { return l.Name }
func (c Card) DisplayName() string  { return c.Name }

// Parent returns the ID of the containing board.
func (l List) Parent() string { return l.BoardID }

// Parent returns the ID of the containing list.
func (c Card) Parent() string { return c.ListID }
