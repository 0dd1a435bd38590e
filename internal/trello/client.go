// SPDX-License-Identifier: Apache-2.0

package trello

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tro/internal/logger"
)

// APIError is returned for any failure talking to the Trello API:
// transport errors, non-2xx responses, or undecodable bodies. Callers
// treat it as fatal to the current command.
type APIError struct {
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trello api unavailable: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("trello api unavailable: %s", e.Detail)
}

func (e *APIError) Unwrap() error { return e.Err }

// Client talks to the Trello REST API. Credentials are explicit
// construction parameters; nothing is read from process-wide state.
type Client struct {
	baseURL string
	key     string
	token   string
	http    *http.Client
}

// NewClient builds a client for the given API host (e.g.
// "https://api.trello.com") using the key/token query-parameter auth
// scheme Trello uses.
func NewClient(host, key, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(host, "/"),
		key:     key,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// endpoint assembles a full request URL with auth and extra query
// parameters applied.
func (c *Client) endpoint(path string, params map[string]string) string {
	values := url.Values{}
	values.Set("key", c.key)
	values.Set("token", c.token)
	for k, v := range params {
		values.Set(k, v)
	}
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
}

// do performs a request and decodes the JSON response into out (out may
// be nil when the body is irrelevant).
func (c *Client) do(method, path string, params map[string]string, out any) error {
	target := c.endpoint(path, params)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return &APIError{Detail: fmt.Sprintf("building %s %s request", method, path), Err: err}
	}

	logger.Debug("Trello API request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Detail: fmt.Sprintf("%s %s failed", method, path), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Error("Trello API request rejected",
			"method", method,
			"path", path,
			"status", resp.StatusCode)
		return &APIError{Detail: fmt.Sprintf("%s %s returned %s: %s",
			method, path, resp.Status, strings.TrimSpace(string(body)))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Detail: fmt.Sprintf("decoding %s %s response", method, path), Err: err}
	}
	return nil
}

// Boards returns all open boards for the authenticated member.
func (c *Client) Boards() ([]Board, error) {
	var boards []Board
	err := c.do(http.MethodGet, "/1/members/me/boards", map[string]string{"filter": "open"}, &boards)
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// Lists returns the open lists of a board in remote position order.
func (c *Client) Lists(boardID string) ([]List, error) {
	var lists []List
	err := c.do(http.MethodGet, "/1/boards/"+boardID+"/lists", map[string]string{"filter": "open"}, &lists)
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// Cards returns the open cards of a list in remote position order.
func (c *Client) Cards(listID string) ([]Card, error) {
	var cards []Card
	err := c.do(http.MethodGet, "/1/lists/"+listID+"/cards", map[string]string{"filter": "open"}, &cards)
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// CreateCard creates a card at the bottom of the given list.
func (c *Client) CreateCard(listID, name, desc string) (Card, error) {
	var card Card
	params := map[string]string{
		"idList": listID,
		"name":   name,
		"pos":    "bottom",
	}
	if desc != "" {
		params["desc"] = desc
	}
	if err := c.do(http.MethodPost, "/1/cards", params, &card); err != nil {
		return Card{}, err
	}
	return card, nil
}

// UpdateCard pushes the card's name and description to the remote.
func (c *Client) UpdateCard(card Card) (Card, error) {
	var updated Card
	params := map[string]string{
		"name": card.Name,
		"desc": card.Desc,
	}
	if err := c.do(http.MethodPut, "/1/cards/"+card.ID, params, &updated); err != nil {
		return Card{}, err
	}
	return updated, nil
}

// CloseCard archives a card.
func (c *Client) CloseCard(cardID string) error {
	return c.do(http.MethodPut, "/1/cards/"+cardID, map[string]string{"closed": "true"}, nil)
}

// CloseList archives a list.
func (c *Client) CloseList(listID string) error {
	return c.do(http.MethodPut, "/1/lists/"+listID+"/closed", map[string]string{"value": "true"}, nil)
}

// CloseBoard closes a board.
func (c *Client) CloseBoard(boardID string) error {
	return c.do(http.MethodPut, "/1/boards/"+boardID, map[string]string{"closed": "true"}, nil)
}

// DeleteCard permanently deletes a card. Unlike CloseCard this is not
// recoverable from the Trello UI.
func (c *Client) DeleteCard(cardID string) error {
	return c.do(http.MethodDelete, "/1/cards/"+cardID, nil, nil)
}
