package models

// GroupCount is one bucket of a grouped lead count
type GroupCount struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

// Analytics holds the aggregate lead statistics shown on the dashboard
type Analytics struct {
	TotalLeads     int          `json:"totalLeads"`
	ConvertedLeads int          `json:"convertedLeads"`
	ConversionRate float64      `json:"conversionRate"`
	TotalValue     float64      `json:"totalValue"`
	LeadsByStage   []GroupCount `json:"leadsByStage"`
	LeadsBySource  []GroupCount `json:"leadsBySource"`
}

// AnalyticsResponse wraps analytics the way the lead service returns them
type AnalyticsResponse struct {
	Success bool       `json:"success"`
	Data    *Analytics `json:"data"`
}
