package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElectionResultsEmbed(t *testing.T) {
	embed := ElectionResultsEmbed(map[string]int{
		"alice": 3,
		"bob":   5,
		"carol": 1,
	})

	require.NotNil(t, embed)
	assert.Equal(t, "Election Results", embed.Title)

	// Ranked by votes, winner first.
	lines := embed.Description
	assert.Regexp(t, `(?s)1\. <@bob> with 5 vote\(s\).*2\. <@alice> with 3 vote\(s\).*3\. <@carol> with 1 vote\(s\)`, lines)
}

func TestElectionResultsEmbedTopFive(t *testing.T) {
	tally := map[string]int{
		"a": 10, "b": 9, "c": 8, "d": 7, "e": 6, "f": 5, "g": 4,
	}
	embed := ElectionResultsEmbed(tally)
	assert.NotContains(t, embed.Description, "<@f>")
	assert.NotContains(t, embed.Description, "<@g>")
	assert.Contains(t, embed.Description, "<@e>")
}

func TestElectionResultsEmbedEmpty(t *testing.T) {
	embed := ElectionResultsEmbed(nil)
	assert.Equal(t, "No one voted.", embed.Description)
}
