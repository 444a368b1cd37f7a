package dashboard

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
)

type RepositoryAPI interface {
	CountContacts() (int64, error)
	CountDeals() (int64, error)
	SumDealValue() (float64, error)
	CountDealsClosedBetween(stage dealDatamodel.Stage, from, to time.Time) (int64, error)
	CountTasksPending() (int64, error)
	CountTasksOverdue(now time.Time) (int64, error)
	StatsForStage(stage dealDatamodel.Stage) (count int64, value float64, err error)
	RecentDeals(limit int) ([]*RecentRecord, error)
	RecentTasks(limit int) ([]*RecentRecord, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetStats computes the dashboard summary in a single pass of simple
// aggregate queries.
func (s *Service) GetStats() (*Stats, error) {
	totalContacts, err := s.repo.CountContacts()
	if err != nil {
		return nil, err
	}
	totalDeals, err := s.repo.CountDeals()
	if err != nil {
		return nil, err
	}
	totalValue, err := s.repo.SumDealValue()
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	won, err := s.repo.CountDealsClosedBetween(dealDatamodel.StageClosedWon, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	lost, err := s.repo.CountDealsClosedBetween(dealDatamodel.StageClosedLost, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	pending, err := s.repo.CountTasksPending()
	if err != nil {
		return nil, err
	}
	overdue, err := s.repo.CountTasksOverdue(now)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalContacts:      totalContacts,
		TotalDeals:         totalDeals,
		TotalDealValue:     totalValue,
		DealsWonThisMonth:  won,
		DealsLostThisMonth: lost,
		TasksPending:       pending,
		TasksOverdue:       overdue,
	}, nil
}

// DealsByStage reports count and summed value for every stage, empty
// stages included, so the rows always sum to the totals in GetStats.
func (s *Service) DealsByStage() ([]StageBreakdown, error) {
	breakdown := make([]StageBreakdown, 0, len(dealDatamodel.Stages))

	for _, stage := range dealDatamodel.Stages {
		count, value, err := s.repo.StatsForStage(stage)
		if err != nil {
			s.logger.Error("failed to aggregate deals for stage", "error", err, "stage", stage)
			return nil, err
		}
		breakdown = append(breakdown, StageBreakdown{
			Stage: stage,
			Count: count,
			Value: value,
		})
	}

	return breakdown, nil
}

// RecentActivities synthesizes a unified feed from the most recently
// created deals and tasks, newest first, truncated to limit.
func (s *Service) RecentActivities(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	recentDeals, err := s.repo.RecentDeals(limit / 2)
	if err != nil {
		s.logger.Error("failed to load recent deals", "error", err)
		return nil, err
	}
	recentTasks, err := s.repo.RecentTasks(limit / 2)
	if err != nil {
		s.logger.Error("failed to load recent tasks", "error", err)
		return nil, err
	}

	entries := make([]Entry, 0, len(recentDeals)+len(recentTasks))
	for _, d := range recentDeals {
		entries = append(entries, Entry{
			ID:        d.ID,
			Type:      "deal",
			Subject:   fmt.Sprintf("Deal created: %s", d.Title),
			CreatedAt: d.CreatedAt,
			UserName:  d.UserName,
		})
	}
	for _, t := range recentTasks {
		entries = append(entries, Entry{
			ID:        t.ID,
			Type:      "task",
			Subject:   fmt.Sprintf("Task created: %s", t.Title),
			CreatedAt: t.CreatedAt,
			UserName:  t.UserName,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
