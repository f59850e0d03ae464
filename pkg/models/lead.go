package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// LeadStatus is the position of a lead in the sales pipeline
type LeadStatus string

const (
	StatusNew         LeadStatus = "New"
	StatusContacted   LeadStatus = "Contacted"
	StatusQualified   LeadStatus = "Qualified"
	StatusProposal    LeadStatus = "Proposal"
	StatusNegotiation LeadStatus = "Negotiation"
	StatusClosedWon   LeadStatus = "Closed-Won"
	StatusClosedLost  LeadStatus = "Closed-Lost"
)

// Statuses lists every pipeline status in timeline order
var Statuses = []LeadStatus{
	StatusNew,
	StatusContacted,
	StatusQualified,
	StatusProposal,
	StatusNegotiation,
	StatusClosedWon,
	StatusClosedLost,
}

// IsValid checks if the status is one of the known pipeline statuses
func (s LeadStatus) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsSet reports whether a status filter is applied. The empty status means "all".
func (s LeadStatus) IsSet() bool {
	return s != ""
}

// Label returns the human readable status ("Closed Won" for "Closed-Won")
func (s LeadStatus) Label() string {
	if s == "" {
		return "All"
	}
	return strings.ReplaceAll(string(s), "-", " ")
}

// ParseLeadStatus parses a status case-insensitively. The empty string and "all" parse to unset.
func ParseLeadStatus(raw string) (LeadStatus, error) {
	normalized := strings.TrimSpace(raw)
	if normalized == "" || strings.EqualFold(normalized, "all") {
		return "", nil
	}
	normalized = strings.ReplaceAll(normalized, " ", "-")
	for _, known := range Statuses {
		if strings.EqualFold(string(known), normalized) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown lead status %q", raw)
}

// LeadSource is the channel a lead came from
type LeadSource string

const (
	SourceWebsite       LeadSource = "Website"
	SourceReferral      LeadSource = "Referral"
	SourceSocialMedia   LeadSource = "Social Media"
	SourceAdvertisement LeadSource = "Advertisement"
	SourceOther         LeadSource = "Other"
)

// Sources lists every known lead source
var Sources = []LeadSource{
	SourceWebsite,
	SourceReferral,
	SourceSocialMedia,
	SourceAdvertisement,
	SourceOther,
}

// IsValid checks if the source is one of the known lead sources
func (s LeadSource) IsValid() bool {
	for _, known := range Sources {
		if s == known {
			return true
		}
	}
	return false
}

// IsSet reports whether a source filter is applied
func (s LeadSource) IsSet() bool {
	return s != ""
}

// Label returns the display label of the source
func (s LeadSource) Label() string {
	if s == "" {
		return "All"
	}
	return string(s)
}

// ParseLeadSource parses a source case-insensitively ("social-media" and "Social Media" both work)
func ParseLeadSource(raw string) (LeadSource, error) {
	normalized := strings.TrimSpace(raw)
	if normalized == "" || strings.EqualFold(normalized, "all") {
		return "", nil
	}
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = strings.ReplaceAll(normalized, "_", " ")
	for _, known := range Sources {
		if strings.EqualFold(string(known), normalized) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown lead source %q", raw)
}

// Lead represents a lead record as served by the lead service
type Lead struct {
	ID            string     `json:"_id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Company       string     `json:"company,omitempty"`
	JobTitle      string     `json:"jobTitle,omitempty"`
	Status        LeadStatus `json:"status"`
	Source        LeadSource `json:"source"`
	Value         float64    `json:"value"`
	Notes         string     `json:"notes,omitempty"`
	AssignedTo    string     `json:"assignedTo,omitempty"`
	LastContacted *time.Time `json:"lastContacted,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// LeadInput represents a create or update request for a lead
type LeadInput struct {
	Name       string     `json:"name" validate:"required,min=2"`
	Email      string     `json:"email" validate:"required,email"`
	Phone      string     `json:"phone" validate:"required"`
	Company    string     `json:"company,omitempty"`
	JobTitle   string     `json:"jobTitle,omitempty"`
	Status     LeadStatus `json:"status" validate:"omitempty,lead_status"`
	Source     LeadSource `json:"source" validate:"omitempty,lead_source"`
	Value      float64    `json:"value" validate:"gte=0"`
	Notes      string     `json:"notes,omitempty"`
	AssignedTo string     `json:"assignedTo,omitempty"`
}

// NewLeadInput returns an input with the lead form defaults
func NewLeadInput() LeadInput {
	return LeadInput{
		Status: StatusNew,
		Source: SourceWebsite,
	}
}

// MaxPage is the highest page number a list request may ask for
const MaxPage = 100000

// LeadListRequest represents the query parameters of a lead list request.
// Page is 1-indexed. Empty Search, Status and Source mean "no filter".
type LeadListRequest struct {
	Page   int        `query:"page" json:"page" validate:"min=1,max=100000"`
	Limit  int        `query:"limit" json:"limit" validate:"min=1,max=100"`
	Search string     `query:"search" json:"search,omitempty"`
	Status LeadStatus `query:"status" json:"status,omitempty" validate:"omitempty,lead_status"`
	Source LeadSource `query:"source" json:"source,omitempty" validate:"omitempty,lead_source"`
}

// Values encodes the request as query parameters. Unset filters are left out
// entirely rather than sent as empty values.
func (r LeadListRequest) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(r.Page))
	values.Set("limit", strconv.Itoa(r.Limit))
	if r.Search != "" {
		values.Set("search", r.Search)
	}
	if r.Status.IsSet() {
		values.Set("status", string(r.Status))
	}
	if r.Source.IsSet() {
		values.Set("source", string(r.Source))
	}
	return values
}

// Offset returns the number of rows to skip for this page
func (r LeadListRequest) Offset() int {
	if r.Page < 1 || r.Limit < 1 {
		return 0
	}
	return (min(r.Page, MaxPage) - 1) * r.Limit
}

// LeadListResponse represents one page of leads
type LeadListResponse struct {
	Leads       []Lead `json:"leads"`
	TotalLeads  int    `json:"totalLeads"`
	CurrentPage int    `json:"currentPage,omitempty"`
	TotalPages  int    `json:"totalPages,omitempty"`
}

// SeedResponse is returned by the seed endpoint
type SeedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count"`
}
