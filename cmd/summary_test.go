package cmd_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_TextFormat(t *testing.T) {
	stdout, _, err := runOffline(t, "summary", "-f", "text")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"roots: query: Query, mutation: Mutation",
		"counts: ENUM=1 INPUT_OBJECT=3 INTERFACE=1 OBJECT=6 SCALAR=5 UNION=1",
		"objects: Query, Mutation, Package, Provider, Market",
		"inputs: PackageFilter, PriceRange, PackageInput",
		"enums: SpeedTier",
		"interfaces: Node",
		"unions: SearchResult",
		"scalars: ID, String, Float, Int, Boolean",
		"directives: include, skip, deprecated",
	}, lines(stdout))
}

func TestSummary_JSONFormat(t *testing.T) {
	stdout, _, err := runOffline(t, "summary", "-f", "json")
	require.NoError(t, err)

	var sums []struct {
		TypeCounts map[string]int `json:"typeCounts"`
		QueryRoot  string         `json:"queryRoot"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &sums))
	require.Len(t, sums, 1)
	assert.Equal(t, "Query", sums[0].QueryRoot)
	assert.Equal(t, 6, sums[0].TypeCounts["OBJECT"])
}

func TestSummary_SDL(t *testing.T) {
	stdout, _, err := runOffline(t, "summary", "--sdl")
	require.NoError(t, err)

	assert.Contains(t, stdout, "type Package implements Node")
	assert.Contains(t, stdout, "enum SpeedTier")
	assert.Contains(t, stdout, "input PackageFilter")
	assert.Contains(t, stdout, "@deprecated")
	assert.NotContains(t, stdout, "__Type")
	assert.NotContains(t, stdout, "scalar String")
}
