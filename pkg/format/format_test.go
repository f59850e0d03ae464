package format

import (
	"testing"
	"time"

	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999.4, "$999"},
		{12500.5, "$12,501"},
		{1234567, "$1,234,567"},
		{-2500, "-$2,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in))
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "47", Number(47))
	assert.Equal(t, "12,345", Number(12345))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "Jan 5, 2024", Date(time.Date(2024, time.January, 5, 15, 4, 0, 0, time.UTC)))
	assert.Equal(t, "", Date(time.Time{}))
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#2196F3", StatusColor(models.StatusNew))
	assert.Equal(t, "#2E7D32", StatusColor(models.StatusClosedWon))
	assert.Equal(t, "#F44336", StatusColor(models.StatusClosedLost))
	assert.Equal(t, DefaultColor, StatusColor("Archived"))
	assert.Equal(t, DefaultColor, StatusColor(""))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "+1 201-555-0123", Phone("(201) 555-0123"))
	assert.Equal(t, "+44 121 234 5678", Phone("+44 121 234 5678"))
	assert.Equal(t, "unknown", Phone("unknown"))
	assert.Equal(t, "", Phone(""))
}
