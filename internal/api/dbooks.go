package api

import (
	"context"
	"fmt"
	"net/url"
)

const dbooksBase = "https://www.dbooks.org/api"

// Book is one dbooks.org search result.
type Book struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Authors  string `json:"authors"`
	Image    string `json:"image"`
	URL      string `json:"url"`
}

// SearchBooks returns the top free-book results for query.
func (c *Client) SearchBooks(ctx context.Context, query string) ([]Book, error) {
	var out struct {
		Status string `json:"status"`
		Books  []Book `json:"books"`
	}
	endpoint := dbooksBase + "/search/" + url.PathEscape(query)
	if err := c.getJSON(ctx, endpoint, nil, &out); err != nil {
		return nil, err
	}
	if out.Status != "ok" || len(out.Books) == 0 {
		return nil, fmt.Errorf("no books found for %q", query)
	}
	return out.Books, nil
}
