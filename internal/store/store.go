// Package store implements the client for the remote collection store: four
// flat JSON collections, each read and replaced in full. The store keeps no
// versions and runs no merge logic; the last whole-collection write wins.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/justin-mueller/Einkaufsliste/internal/catalog"
	"github.com/justin-mueller/Einkaufsliste/internal/category"
	"github.com/justin-mueller/Einkaufsliste/internal/daily"
	"github.com/justin-mueller/Einkaufsliste/internal/recipe"
)

// Collection names the four stored arrays.
type Collection string

// The four collections held by the store.
const (
	Categories Collection = "categories"
	Articles   Collection = "articles"
	Items      Collection = "items"
	Recipes    Collection = "recipes"
)

// endpoints maps each collection to its fetch and replace paths on the
// deployment. Categories are immutable and have no replace endpoint.
var endpoints = map[Collection]struct{ fetch, replace string }{
	Categories: {fetch: "/api/getCategories.php"},
	Articles:   {fetch: "/api/getArticles.php", replace: "/api/saveArticles.php"},
	Items:      {fetch: "/api/getData.php", replace: "/api/saveData.php"},
	Recipes:    {fetch: "/api/getRecipes.php", replace: "/api/saveRecipes.php"},
}

// TransportError reports a request that failed on the wire or came back with
// a non-2xx status. StatusCode is zero when the request never completed.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("store: %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerRejection reports a 2xx response whose payload status field is not
// "success". The write must be treated as not applied.
type ServerRejection struct {
	URL    string
	Status string
}

func (e *ServerRejection) Error() string {
	return fmt.Sprintf("store: %s: server rejected write (status %q)", e.URL, e.Status)
}

// Client talks to the remote collection store. Construct with NewClient.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a store client for the given base URL. The timeout
// bounds every fetch and replace call; a timed-out persist is treated as a
// failure and triggers a revert in the engine.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// replaceReply is the envelope the store returns on every write.
type replaceReply struct {
	Status string `json:"status"`
}

// fetchCollection GETs a collection and decodes the JSON array into out.
func (c *Client) fetchCollection(ctx context.Context, col Collection, out any) error {
	url := c.baseURL + endpoints[col].fetch
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{URL: url, Err: fmt.Errorf("decode %s: %w", col, err)}
	}
	return nil
}

// replaceCollection POSTs the complete replacement array for a collection.
func (c *Client) replaceCollection(ctx context.Context, col Collection, all any) error {
	url := c.baseURL + endpoints[col].replace
	payload, err := json.Marshal(all)
	if err != nil {
		return &TransportError{URL: url, Err: fmt.Errorf("encode %s: %w", col, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	var reply replaceReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return &ServerRejection{URL: url, Status: "unreadable"}
	}
	if reply.Status != "success" {
		return &ServerRejection{URL: url, Status: reply.Status}
	}
	return nil
}

// FetchCategories loads the Categories collection and injects the synthetic
// Ad-Hoc category first. The stored collection never contains id "0".
func (c *Client) FetchCategories(ctx context.Context) ([]category.Category, error) {
	var stored []category.Category
	if err := c.fetchCollection(ctx, Categories, &stored); err != nil {
		return nil, err
	}
	all := make([]category.Category, 0, len(stored)+1)
	all = append(all, category.Category{ID: category.AdHocID, Name: category.AdHocName})
	return append(all, stored...), nil
}

// FetchArticles loads the Articles collection.
func (c *Client) FetchArticles(ctx context.Context) ([]catalog.Article, error) {
	var articles []catalog.Article
	if err := c.fetchCollection(ctx, Articles, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// ReplaceArticles persists the complete Articles collection.
func (c *Client) ReplaceArticles(ctx context.Context, all []catalog.Article) error {
	return c.replaceCollection(ctx, Articles, emptyNotNull(all))
}

// FetchItems loads the Items collection, the daily shopping list.
func (c *Client) FetchItems(ctx context.Context) ([]daily.Item, error) {
	var items []daily.Item
	if err := c.fetchCollection(ctx, Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceItems persists the complete Items collection.
func (c *Client) ReplaceItems(ctx context.Context, all []daily.Item) error {
	return c.replaceCollection(ctx, Items, emptyNotNull(all))
}

// FetchRecipes loads the Recipes collection.
func (c *Client) FetchRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	if err := c.fetchCollection(ctx, Recipes, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// ReplaceRecipes persists the complete Recipes collection.
func (c *Client) ReplaceRecipes(ctx context.Context, all []recipe.Recipe) error {
	return c.replaceCollection(ctx, Recipes, emptyNotNull(all))
}

// emptyNotNull ensures a cleared collection serializes as [] rather than
// null; the store expects a JSON array on every write.
func emptyNotNull[T any](all []T) []T {
	if all == nil {
		return []T{}
	}
	return all
}
