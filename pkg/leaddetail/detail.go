// Package leaddetail builds the lead details screen.
package leaddetail

import (
	"context"
	"strings"

	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/format"
	"github.com/jordanlanch/leadmanager/pkg/models"
)

// MsgFetchFailed is shown before returning to the list when a lead cannot be loaded
const MsgFetchFailed = "Failed to fetch lead details"

const (
	notAvailable   = "N/A"
	neverContacted = "Never"
)

// Row is one labelled field
type Row struct {
	Label string
	Value string
}

// Step is one entry of the status timeline
type Step struct {
	Status  models.LeadStatus
	Color   string
	Current bool
}

// Detail is what the lead details screen renders
type Detail struct {
	ID          string
	Name        string
	Status      models.LeadStatus
	StatusColor string
	Value       string
	Rows        []Row
	Notes       string
	Timeline    []Step
}

// Build computes the detail view of a lead
func Build(lead *models.Lead) Detail {
	lastContacted := neverContacted
	if lead.LastContacted != nil && !lead.LastContacted.IsZero() {
		lastContacted = format.Date(*lead.LastContacted)
	}

	return Detail{
		ID:          lead.ID,
		Name:        lead.Name,
		Status:      lead.Status,
		StatusColor: format.StatusColor(lead.Status),
		Value:       format.Currency(lead.Value),
		Rows: []Row{
			{Label: "Email", Value: orNA(lead.Email)},
			{Label: "Phone", Value: orNA(format.Phone(lead.Phone))},
			{Label: "Company", Value: orNA(lead.Company)},
			{Label: "Job Title", Value: orNA(lead.JobTitle)},
			{Label: "Source", Value: orNA(string(lead.Source))},
			{Label: "Assigned To", Value: orNA(lead.AssignedTo)},
			{Label: "Last Contacted", Value: lastContacted},
			{Label: "Created", Value: orNA(format.Date(lead.CreatedAt))},
		},
		Notes:    strings.TrimSpace(lead.Notes),
		Timeline: Timeline(lead.Status),
	}
}

// Timeline lists every pipeline status, marking the current one
func Timeline(current models.LeadStatus) []Step {
	steps := make([]Step, len(models.Statuses))
	for i, status := range models.Statuses {
		steps[i] = Step{
			Status:  status,
			Color:   format.StatusColor(status),
			Current: status == current,
		}
	}
	return steps
}

// Load fetches a lead and builds its detail view. On failure the error
// carries MsgFetchFailed and the caller returns to the list.
func Load(ctx context.Context, reader domain.LeadReader, id string) (Detail, error) {
	lead, err := reader.GetLead(ctx, id)
	if err != nil {
		return Detail{}, &domain.DomainError{Code: domain.ErrCodeFetchFailed, Message: MsgFetchFailed, Err: err}
	}
	return Build(lead), nil
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return notAvailable
	}
	return v
}
