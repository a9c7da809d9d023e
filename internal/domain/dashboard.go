package domain

import "time"

// Dashboard is the condensed overview served to the landing view. It carries
// the status breakdown plus the head of both screeners; the full lists live
// behind their own endpoints.
type Dashboard struct {
	Anchor            Date            `json:"anchor"`
	ComputedAt        time.Time       `json:"computed_at"`
	TotalSkus         int             `json:"total_skus"`
	UnregisteredSkus  int             `json:"unregistered_skus"`
	UrgentGroups      int             `json:"urgent_groups"`
	Summary           []StatusSummary `json:"summary"`
	TopRisks          []ProductGroup  `json:"top_risks"`
	TopDeadStock      []ProductGroup  `json:"top_dead_stock"`
}
