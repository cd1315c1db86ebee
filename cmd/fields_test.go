package cmd_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_SingleType(t *testing.T) {
	stdout, _, err := runOffline(t, "fields", "Package", "-f", "text")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"id: ID!",
		"name: String!",
		"provider: Provider",
		"price: Float # Monthly price in USD",
		"speedTier: SpeedTier",
		"related: [Package!]",
		"legacyCode: String",
	}, lines(stdout))
}

func TestFields_ArgumentsWithDefaults(t *testing.T) {
	stdout, _, err := runOffline(t, "fields", "Query", "-f", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "packages(filter: PackageFilter, limit: Int = 20): [Package!]! # List packages matching a filter")
	assert.Contains(t, stdout, "market(dmaCode: String!): Market")
	assert.Contains(t, stdout, "providerCount: Int")
}

func TestFields_AllTypes(t *testing.T) {
	stdout, _, err := runOffline(t, "fields", "-f", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Package.id: ID!")
	assert.Contains(t, stdout, "Market.zipCodes: [String!]")
	assert.Contains(t, stdout, "Mutation.savePackage(input: PackageInput!): Package # Create or update a package")
	assert.NotContains(t, stdout, "__Type")
}

func TestFields_Filters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "deprecated",
			args: []string{"--deprecated"},
			want: []string{"Package.legacyCode: String"},
		},
		{
			name: "required",
			args: []string{"Package", "--required"},
			want: []string{"id: ID!", "name: String!"},
		},
		{
			name: "nullable",
			args: []string{"Market", "--nullable"},
			want: []string{"name: String", "zipCodes: [String!]"},
		},
		{
			name: "returns",
			args: []string{"Query", "--returns", "Package"},
			want: []string{
				"fetchPackageById(id: ID!): Package # Fetch a single broadband package by id",
				"packages(filter: PackageFilter, limit: Int = 20): [Package!]! # List packages matching a filter",
			},
		},
		{
			name: "has-arg",
			args: []string{"--has-arg", "term"},
			want: []string{"Query.search(term: String!): [SearchResult!]"},
		},
		{
			name: "glob",
			args: []string{"--name", "*Code"},
			want: []string{"Package.legacyCode: String", "Market.dmaCode: String!"},
		},
		{
			name: "regex",
			args: []string{"Query", "--name-regex", "^(fetch|search)"},
			want: []string{
				"fetchPackageById(id: ID!): Package # Fetch a single broadband package by id",
				"search(term: String!): [SearchResult!]",
			},
		},
		{
			name: "has-description",
			args: []string{"Package", "--has-description"},
			want: []string{"price: Float # Monthly price in USD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runOffline(t, append([]string{"fields", "-f", "text"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines(stdout))
		})
	}
}

func TestFields_NoMatches(t *testing.T) {
	_, stderr, err := runOffline(t, "fields", "Market", "--deprecated")
	require.NoError(t, err)
	assert.Contains(t, stderr, "No fields found that match the filters.")
}

func TestFields_Errors(t *testing.T) {
	_, _, err := runOffline(t, "fields", "--required", "--nullable")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be used together")

	_, _, err = runOffline(t, "fields", "--name-regex", "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex pattern")

	_, _, err = runOffline(t, "fields", "Pakage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean 'Package'?")
}

func TestFields_JSONFormat(t *testing.T) {
	stdout, _, err := runOffline(t, "fields", "Query", "--has-arg", "limit", "-f", "json")
	require.NoError(t, err)

	var fields []struct {
		Name      string `json:"name"`
		Type      string `json:"type"`
		Arguments []struct {
			Name         string `json:"name"`
			Type         string `json:"type"`
			DefaultValue string `json:"defaultValue"`
		} `json:"arguments"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &fields))
	require.Len(t, fields, 1)
	assert.Equal(t, "packages", fields[0].Name)
	assert.Equal(t, "[Package!]!", fields[0].Type)
	require.Len(t, fields[0].Arguments, 2)
	assert.Equal(t, "limit", fields[0].Arguments[1].Name)
	assert.Equal(t, "20", fields[0].Arguments[1].DefaultValue)
}

func TestFields_DeprecationReasonInJSON(t *testing.T) {
	stdout, _, err := runOffline(t, "fields", "--deprecated", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"deprecationReason"`)
}

func TestFields_PrettyFormat(t *testing.T) {
	stdout, _, err := runOffline(t, "fields", "Query", "--has-arg", "filter", "-f", "pretty")
	require.NoError(t, err)

	assert.Contains(t, stdout, "field")
	assert.Contains(t, stdout, "packages(")
	assert.Contains(t, stdout, "limit: Int = 20")
}
