// Package format renders lead values for display.
package format

import (
	"math"
	"time"

	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout is the display layout of dates, e.g. "Jan 5, 2024"
const DateLayout = "Jan 2, 2006"

// DefaultColor is used for unknown statuses
const DefaultColor = "#757575"

var printer = message.NewPrinter(language.AmericanEnglish)

var statusColors = map[models.LeadStatus]string{
	models.StatusNew:         "#2196F3",
	models.StatusContacted:   "#FF9800",
	models.StatusQualified:   "#4CAF50",
	models.StatusProposal:    "#9C27B0",
	models.StatusNegotiation: "#FF5722",
	models.StatusClosedWon:   "#2E7D32",
	models.StatusClosedLost:  "#F44336",
}

// Currency formats v as whole US dollars: 12500.4 → "$12,500"
func Currency(v float64) string {
	rounded := int64(math.Round(v))
	if rounded < 0 {
		return printer.Sprintf("-$%d", -rounded)
	}
	return printer.Sprintf("$%d", rounded)
}

// Number formats n with thousands separators
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Date formats t as "Jan 2, 2006". The zero time renders empty.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// StatusColor returns the hex color of a status
func StatusColor(status models.LeadStatus) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return DefaultColor
}

// Phone formats a phone number internationally. Numbers without a country
// code are read as US numbers; anything unparseable is returned unchanged.
func Phone(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := phonenumbers.Parse(raw, "US")
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return raw
	}
	return phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL)
}
