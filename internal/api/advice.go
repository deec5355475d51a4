package api

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
)

const adviceBase = "https://api.adviceslip.com/advice"

type adviceSlip struct {
	Advice string `json:"advice"`
}

// RandomAdvice fetches one random advice slip.
func (c *Client) RandomAdvice(ctx context.Context) (string, error) {
	var out struct {
		Slip adviceSlip `json:"slip"`
	}
	if err := c.getJSON(ctx, adviceBase, nil, &out); err != nil {
		return "", err
	}
	return out.Slip.Advice, nil
}

// SearchAdvice returns one random advice slip matching query, or the API's
// own "not found" message.
func (c *Client) SearchAdvice(ctx context.Context, query string) (string, error) {
	var out struct {
		Slips   []adviceSlip `json:"slips"`
		Message *struct {
			Text string `json:"text"`
		} `json:"message"`
	}
	endpoint := adviceBase + "/search/" + url.PathEscape(query)
	if err := c.getJSON(ctx, endpoint, nil, &out); err != nil {
		return "", err
	}

	if out.Message != nil {
		return out.Message.Text, nil
	}
	if len(out.Slips) == 0 {
		return "", fmt.Errorf("advice search returned nothing")
	}
	return out.Slips[rand.Intn(len(out.Slips))].Advice, nil
}
