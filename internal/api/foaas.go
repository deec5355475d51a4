package api

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
)

const foaasBase = "https://foaas.dev"

// Insult is a FOAAS message pair.
type Insult struct {
	Message  string `json:"message"`
	Subtitle string `json:"subtitle"`
}

// Two-operand endpoints take a target name; the rest only take the sender.
var (
	foaasTargeted = []string{"off", "you", "chainsaw", "donut", "shakespeare", "linus"}
	foaasGeneral  = []string{"because", "everything", "everyone", "flying", "life", "world"}
)

// RandomInsult fetches a random insult from FOAAS, aimed at target when one
// is given.
func (c *Client) RandomInsult(ctx context.Context, from, target string) (*Insult, error) {
	var endpoint string
	if target != "" {
		op := foaasTargeted[rand.Intn(len(foaasTargeted))]
		endpoint = fmt.Sprintf("%s/%s/%s/%s", foaasBase, op, url.PathEscape(target), url.PathEscape(from))
	} else {
		op := foaasGeneral[rand.Intn(len(foaasGeneral))]
		endpoint = fmt.Sprintf("%s/%s/%s", foaasBase, op, url.PathEscape(from))
	}

	var out Insult
	if err := c.getJSON(ctx, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
