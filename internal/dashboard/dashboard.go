package dashboard

import (
	"time"

	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
)

// Stats is the dashboard summary payload.
type Stats struct {
	TotalContacts      int64   `json:"total_contacts"`
	TotalDeals         int64   `json:"total_deals"`
	TotalDealValue     float64 `json:"total_deal_value"`
	DealsWonThisMonth  int64   `json:"deals_won_this_month"`
	DealsLostThisMonth int64   `json:"deals_lost_this_month"`
	TasksPending       int64   `json:"tasks_pending"`
	TasksOverdue       int64   `json:"tasks_overdue"`
}

// StageBreakdown is one row of the deals-by-stage view.
type StageBreakdown struct {
	Stage dealDatamodel.Stage `json:"stage"`
	Count int64               `json:"count"`
	Value float64             `json:"value"`
}

// Entry is one item of the recent-activity feed, synthesized from newly
// created deals and tasks rather than the activity log table.
type Entry struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
}

// RecentRecord is the minimal projection the feed needs from a deal or
// task row joined with its user's name.
type RecentRecord struct {
	ID        int64
	Title     string
	UserName  string
	CreatedAt time.Time
}
