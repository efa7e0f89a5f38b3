package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/02loveslollipop/sisbi-dashboard/internal/logger"
	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
)

// Fetcher is the upstream capability the pipeline needs. *sisbi.Client
// satisfies it.
type Fetcher interface {
	FetchEstablishments(ctx context.Context) ([]models.RawEstablishment, error)
	FetchCapacities(ctx context.Context) ([]models.RawCapacityRecord, error)
	FetchEstablishmentDetail(ctx context.Context, id string) (models.RawEstablishmentDetail, error)
}

const (
	resourceEstablishments = "establishments"
	resourceCapacities     = "capacities"
	resourceDetail         = "detail"
)

// Service runs the listing and detail pipelines. It holds no per-request
// state; every call recomputes from upstream data.
type Service struct {
	fetcher  Fetcher
	policies Policies
	log      *logger.Logger
}

// NewService wires a pipeline service. A nil logger discards output.
func NewService(fetcher Fetcher, policies Policies, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		fetcher:  fetcher,
		policies: policies,
		log:      log.With("component", "pipeline"),
	}
}

// List fetches establishments and capacities concurrently and merges them.
func (s *Service) List(ctx context.Context) ([]models.MergedEstablishment, error) {
	var (
		establishments []models.RawEstablishment
		capacities     []models.RawCapacityRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := s.fetcher.FetchEstablishments(gctx)
		if err != nil {
			return s.absorb(resourceEstablishments, s.policies.Establishments, err)
		}
		establishments = out
		return nil
	})
	g.Go(func() error {
		out, err := s.fetcher.FetchCapacities(gctx)
		if err != nil {
			return s.absorb(resourceCapacities, s.policies.Capacities, err)
		}
		capacities = out
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg, stats := Aggregate(capacities)
	observeAggregate(stats)
	if stats.MissingJoinKey > 0 {
		s.log.Debug("dropped capacity records without join key", "count", stats.MissingJoinKey)
	}

	merged := Merge(establishments, agg)
	s.log.Debug("listing built",
		"establishments", len(merged),
		"capacity_records", len(capacities),
		"capacity_used", stats.Used)
	return merged, nil
}

// Capacities returns the raw per-establishment aggregation. Upstream
// failures are always returned.
func (s *Service) Capacities(ctx context.Context) (Aggregated, error) {
	records, err := s.fetcher.FetchCapacities(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch capacities: %w", err)
	}
	agg, stats := Aggregate(records)
	observeAggregate(stats)
	return agg, nil
}

// Detail aggregates one establishment's slaughter throughput. Under the
// degrade policy an upstream failure yields an all-zero record and no error.
func (s *Service) Detail(ctx context.Context, id string) (models.SlaughterDetail, error) {
	detail, err := s.fetcher.FetchEstablishmentDetail(ctx, id)
	if err != nil {
		return models.SlaughterDetail{}, s.absorb(resourceDetail, s.policies.Detail, err, "establishment_id", id)
	}
	return AggregateDetail(detail.Animals), nil
}

// absorb applies a failure policy: it returns the wrapped error for fatal
// resources and nil, after logging, for degraded ones.
func (s *Service) absorb(resource string, policy FailurePolicy, err error, kv ...interface{}) error {
	if policy != PolicyDegrade {
		return fmt.Errorf("fetch %s: %w", resource, err)
	}
	degradedFetches.WithLabelValues(resource).Inc()
	fields := append([]interface{}{"resource", resource, "error", err}, kv...)
	s.log.Warn("upstream failure degraded to empty result", fields...)
	return nil
}
