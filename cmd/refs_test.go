package cmd_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefs_GroupsReachableTypes(t *testing.T) {
	stdout, _, err := runOffline(t, "refs", "Query.packages", "-f", "text")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"inputs PackageFilter",
		"inputs PriceRange",
		"objects Package # A broadband offer sold in a market",
		"objects Provider",
		"enums SpeedTier",
	}, lines(stdout))
}

func TestRefs_BareFieldUsesQueryRoot(t *testing.T) {
	qualified, _, err := runOffline(t, "refs", "Query.packages", "-f", "text")
	require.NoError(t, err)
	bare, _, err := runOffline(t, "refs", "packages", "-f", "text")
	require.NoError(t, err)

	assert.Equal(t, qualified, bare)
}

func TestRefs_UnionMembersAreFollowed(t *testing.T) {
	stdout, _, err := runOffline(t, "refs", "Query.search", "-f", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "unions SearchResult")
	assert.Contains(t, stdout, "objects Package")
	assert.Contains(t, stdout, "objects Provider")
	assert.Contains(t, stdout, "enums SpeedTier")
	assert.NotContains(t, stdout, "inputs")
}

func TestRefs_GroupFilter(t *testing.T) {
	stdout, _, err := runOffline(t, "refs", "Mutation.savePackage", "--group", "inputs", "--group", "Enums", "-f", "text")
	require.NoError(t, err)
	assert.Equal(t, []string{"inputs PackageInput", "enums SpeedTier"}, lines(stdout))
}

func TestRefs_UnknownGroup(t *testing.T) {
	_, _, err := runOffline(t, "refs", "Query.packages", "--group", "input")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--group must be one of")
	assert.Contains(t, err.Error(), "got 'input'")
}

func TestRefs_ScalarField(t *testing.T) {
	_, stderr, err := runOffline(t, "refs", "Query.providerCount")
	require.NoError(t, err)
	assert.Contains(t, stderr, "No referenced types found.")
}

func TestRefs_UnknownField(t *testing.T) {
	_, _, err := runOffline(t, "refs", "Query.pakages")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Query.pakages' does not exist in schema, did you mean 'Query.packages'?")

	_, _, err = runOffline(t, "refs", "Qery.packages")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean 'Query'?")
}

func TestRefs_JSONFormat(t *testing.T) {
	stdout, _, err := runOffline(t, "refs", "Query.market", "-f", "json")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	assert.Equal(t, []map[string]string{{"group": "objects", "name": "Market", "kind": "OBJECT"}}, rows)
}
