package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadListRequest_Values(t *testing.T) {
	tests := []struct {
		name        string
		req         LeadListRequest
		wantKeys    []string
		missingKeys []string
	}{
		{
			name:        "No filters only carries pagination",
			req:         LeadListRequest{Page: 1, Limit: 10},
			wantKeys:    []string{"page", "limit"},
			missingKeys: []string{"search", "status", "source"},
		},
		{
			name:        "Search only",
			req:         LeadListRequest{Page: 2, Limit: 25, Search: "acme"},
			wantKeys:    []string{"page", "limit", "search"},
			missingKeys: []string{"status", "source"},
		},
		{
			name:     "All filters",
			req:      LeadListRequest{Page: 1, Limit: 5, Search: "acme", Status: StatusQualified, Source: SourceSocialMedia},
			wantKeys: []string{"page", "limit", "search", "status", "source"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := tt.req.Values()
			for _, key := range tt.wantKeys {
				assert.Contains(t, values, key)
			}
			for _, key := range tt.missingKeys {
				_, present := values[key]
				assert.False(t, present, "key %q should be omitted", key)
			}
		})
	}

	values := LeadListRequest{Page: 3, Limit: 10, Source: SourceSocialMedia}.Values()
	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "Social Media", values.Get("source"))
}

func TestLeadListRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, LeadListRequest{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, LeadListRequest{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, LeadListRequest{Page: 0, Limit: 10}.Offset())
	assert.Equal(t, (MaxPage-1)*100, LeadListRequest{Page: math.MaxInt, Limit: 100}.Offset())
}

func TestLeadListRequest_PageBounds(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(LeadListRequest{Page: MaxPage, Limit: 10}))
	assert.Error(t, v.Struct(LeadListRequest{Page: MaxPage + 1, Limit: 10}))
	assert.Error(t, v.Struct(LeadListRequest{Page: math.MaxInt, Limit: 10}))
}

func TestParseLeadStatus(t *testing.T) {
	status, err := ParseLeadStatus("closed won")
	require.NoError(t, err)
	assert.Equal(t, StatusClosedWon, status)

	status, err = ParseLeadStatus("QUALIFIED")
	require.NoError(t, err)
	assert.Equal(t, StatusQualified, status)

	status, err = ParseLeadStatus("all")
	require.NoError(t, err)
	assert.False(t, status.IsSet())

	_, err = ParseLeadStatus("lost")
	assert.Error(t, err)
}

func TestParseLeadSource(t *testing.T) {
	source, err := ParseLeadSource("social-media")
	require.NoError(t, err)
	assert.Equal(t, SourceSocialMedia, source)

	source, err = ParseLeadSource("")
	require.NoError(t, err)
	assert.False(t, source.IsSet())

	_, err = ParseLeadSource("billboard")
	assert.Error(t, err)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Closed Won", StatusClosedWon.Label())
	assert.Equal(t, "All", LeadStatus("").Label())
	assert.Equal(t, "Social Media", SourceSocialMedia.Label())
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	t.Run("Valid list request", func(t *testing.T) {
		err := v.Struct(LeadListRequest{Page: 1, Limit: 10, Status: StatusNew, Source: SourceReferral})
		assert.NoError(t, err)
	})

	t.Run("Unset filters are valid", func(t *testing.T) {
		err := v.Struct(LeadListRequest{Page: 1, Limit: 50})
		assert.NoError(t, err)
	})

	t.Run("Unknown status is rejected", func(t *testing.T) {
		err := v.Struct(LeadListRequest{Page: 1, Limit: 10, Status: "Won"})
		assert.Error(t, err)
	})

	t.Run("Zero page is rejected", func(t *testing.T) {
		err := v.Struct(LeadListRequest{Page: 0, Limit: 10})
		assert.Error(t, err)
	})

	t.Run("Lead input defaults are valid", func(t *testing.T) {
		input := NewLeadInput()
		input.Name = "Jane Doe"
		input.Email = "jane@example.com"
		input.Phone = "+1 555 0100"
		assert.NoError(t, v.Struct(input))
	})

	t.Run("Lead input requires email", func(t *testing.T) {
		input := NewLeadInput()
		input.Name = "Jane Doe"
		input.Phone = "+1 555 0100"
		assert.Error(t, v.Struct(input))
	})
}
