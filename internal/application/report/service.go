package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Default spans of ranged reports when from is omitted
const (
	DefaultRevenueSpan  = 365 * 24 * time.Hour
	DefaultActivitySpan = 30 * 24 * time.Hour
)

// Cache stores computed reports per workspace
type Cache interface {
	Get(ctx context.Context, workspaceID uuid.UUID, key string, dest any) (bool, error)
	Set(ctx context.Context, workspaceID uuid.UUID, key string, value any) error
	Invalidate(ctx context.Context, workspaceID uuid.UUID) error
}

// ReportService aggregates CRM rows in memory and caches the results
type ReportService struct {
	deals        sales.DealRepository
	pipelines    sales.PipelineRepository
	stages       sales.StageRepository
	revenueItems sales.RevenueItemRepository
	tasks        engagement.TaskRepository
	activities   engagement.ActivityRepository
	cache        Cache
	now          func() time.Time
}

// NewReportService creates a ReportService. cache may be nil.
func NewReportService(
	deals sales.DealRepository,
	pipelines sales.PipelineRepository,
	stages sales.StageRepository,
	revenueItems sales.RevenueItemRepository,
	tasks engagement.TaskRepository,
	activities engagement.ActivityRepository,
	cache Cache,
) *ReportService {
	return &ReportService{
		deals:        deals,
		pipelines:    pipelines,
		stages:       stages,
		revenueItems: revenueItems,
		tasks:        tasks,
		activities:   activities,
		cache:        cache,
		now:          time.Now,
	}
}

// cached returns the cached value for key or computes and stores it.
// Cache failures are logged and never fail the report.
func cached[T any](ctx context.Context, s *ReportService, workspaceID uuid.UUID, key string, compute func() (T, error)) (T, error) {
	if s.cache != nil {
		var hit T
		ok, err := s.cache.Get(ctx, workspaceID, key, &hit)
		if err != nil {
			logger.L(ctx).Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return hit, nil
		}
	}

	value, err := compute()
	if err != nil {
		return value, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, workspaceID, key, value); err != nil {
			logger.L(ctx).Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}

// Dashboard returns the headline numbers
func (s *ReportService) Dashboard(ctx context.Context, workspaceID uuid.UUID) (*DashboardResponse, error) {
	now := s.now()
	today := truncateDay(now)
	resp, err := cached(ctx, s, workspaceID, "dashboard:"+today.Format(DateLayout), func() (DashboardResponse, error) {
		deals, err := s.deals.FindAllForWorkspace(ctx, workspaceID, shared.Unpaged())
		if err != nil {
			return DashboardResponse{}, err
		}
		d := summarizeDeals(deals)
		if d.TasksDueToday, err = s.tasks.CountDueBetween(ctx, workspaceID, today, today.AddDate(0, 0, 1)); err != nil {
			return DashboardResponse{}, err
		}
		if d.TasksOverdue, err = s.tasks.CountOverdue(ctx, workspaceID, now); err != nil {
			return DashboardResponse{}, err
		}
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// PipelineReport summarises each stage of a pipeline
func (s *ReportService) PipelineReport(ctx context.Context, workspaceID, pipelineID uuid.UUID) (*PipelineReportResponse, error) {
	resp, err := cached(ctx, s, workspaceID, "pipeline:"+pipelineID.String(), func() (PipelineReportResponse, error) {
		p, err := s.pipelines.FindByIDForWorkspace(ctx, workspaceID, pipelineID)
		if err != nil {
			return PipelineReportResponse{}, err
		}
		deals, err := s.deals.FindByPipeline(ctx, workspaceID, pipelineID)
		if err != nil {
			return PipelineReportResponse{}, err
		}
		return summarizePipeline(p, deals), nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RevenueByOwner returns won value grouped by deal owner
func (s *ReportService) RevenueByOwner(ctx context.Context, workspaceID uuid.UUID) ([]OwnerRevenue, error) {
	return cached(ctx, s, workspaceID, "revenue_by_owner", func() ([]OwnerRevenue, error) {
		deals, err := s.deals.FindAllForWorkspace(ctx, workspaceID, shared.Unpaged().With("status", sales.DealStatusWon))
		if err != nil {
			return nil, err
		}
		return groupByOwner(deals), nil
	})
}

// RevenueByMonth returns won value per closing month inside the range, empty months included
func (s *ReportService) RevenueByMonth(ctx context.Context, workspaceID uuid.UUID, rng RangeFilter) (*RevenueByMonthResponse, error) {
	from, to, err := rng.Resolve(s.now(), DefaultRevenueSpan)
	if err != nil {
		return nil, err
	}
	if len(monthsBetween(from, to)) > maxRangeMonths {
		return nil, shared.Validation("Range cannot exceed 60 months")
	}
	key := "revenue_by_month:" + from.Format(DateLayout) + ":" + to.Format(DateLayout)
	resp, err := cached(ctx, s, workspaceID, key, func() (RevenueByMonthResponse, error) {
		filter := shared.Unpaged().
			With("status", sales.DealStatusWon).
			With("closed_from", from).
			With("closed_to", to)
		deals, err := s.deals.FindAllForWorkspace(ctx, workspaceID, filter)
		if err != nil {
			return RevenueByMonthResponse{}, err
		}
		months, total := groupByCloseMonth(deals, from, to)
		return RevenueByMonthResponse{
			From:   from.Format(DateLayout),
			To:     to.AddDate(0, 0, -1).Format(DateLayout),
			Months: months,
			Total:  total,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Forecast groups open deals by expected close month with weighted value
func (s *ReportService) Forecast(ctx context.Context, workspaceID uuid.UUID) (*ForecastResponse, error) {
	resp, err := cached(ctx, s, workspaceID, "forecast", func() (ForecastResponse, error) {
		stages, err := s.stages.FindAllForWorkspace(ctx, workspaceID)
		if err != nil {
			return ForecastResponse{}, err
		}
		probabilities := make(map[uuid.UUID]int, len(stages))
		for _, st := range stages {
			probabilities[st.ID] = st.Probability
		}
		deals, err := s.deals.FindAllForWorkspace(ctx, workspaceID, shared.Unpaged().With("status", sales.DealStatusOpen))
		if err != nil {
			return ForecastResponse{}, err
		}
		return forecast(deals, probabilities), nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ActivityReport counts activities by type and user inside the range.
// Activities are written continuously, so this report is not cached.
func (s *ReportService) ActivityReport(ctx context.Context, workspaceID uuid.UUID, rng RangeFilter) (*ActivityReportResponse, error) {
	from, to, err := rng.Resolve(s.now(), DefaultActivitySpan)
	if err != nil {
		return nil, err
	}
	activities, err := s.activities.FindBetween(ctx, workspaceID, from, to)
	if err != nil {
		return nil, err
	}
	byType, byUser := countActivities(activities)
	return &ActivityReportResponse{
		From:   from.Format(DateLayout),
		To:     to.AddDate(0, 0, -1).Format(DateLayout),
		Total:  int64(len(activities)),
		ByType: byType,
		ByUser: byUser,
	}, nil
}

// RevenueItemsReport groups line items of won deals by billing type
func (s *ReportService) RevenueItemsReport(ctx context.Context, workspaceID uuid.UUID) (*RevenueItemsReportResponse, error) {
	resp, err := cached(ctx, s, workspaceID, "revenue_items", func() (RevenueItemsReportResponse, error) {
		deals, err := s.deals.FindAllForWorkspace(ctx, workspaceID, shared.Unpaged().With("status", sales.DealStatusWon))
		if err != nil {
			return RevenueItemsReportResponse{}, err
		}
		won := make(map[uuid.UUID]struct{}, len(deals))
		for i := range deals {
			won[deals[i].ID] = struct{}{}
		}
		items, err := s.revenueItems.FindAllForWorkspace(ctx, workspaceID)
		if err != nil {
			return RevenueItemsReportResponse{}, err
		}
		return groupByBilling(items, won), nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
