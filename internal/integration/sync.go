// internal/integration/sync.go
package integration

import (
	"context"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/metrics"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// FlightUpserter is the storage side of a sync run.
type FlightUpserter interface {
	// Upsert inserts or refreshes a flight keyed by
	// (flight_number, scheduled_date). Returns true on insert.
	Upsert(ctx context.Context, f *models.Flight) (bool, error)
}

// SyncResult summarizes one sync run.
type SyncResult struct {
	Fetched int      `json:"fetched"`
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Sources []string `json:"sources"`
}

// Syncer pulls flight schedules from the configured external sources
// into local storage. Flights appearing in multiple sources are
// deduplicated by (flight_number, scheduled_date); the first source in
// fetcher order wins.
type Syncer struct {
	fetchers []FlightFetcher
	store    FlightUpserter
	logger   logger.Logger
}

func NewSyncer(store FlightUpserter, log logger.Logger, fetchers ...FlightFetcher) *Syncer {
	return &Syncer{
		fetchers: fetchers,
		store:    store,
		logger:   log.WithFields(map[string]interface{}{"component": "flight-sync"}),
	}
}

// Sync fetches and stores the schedule for one date. A failing source
// fails the run; nothing fetched earlier is rolled back, the upserts
// are idempotent.
func (s *Syncer) Sync(ctx context.Context, date string) (*SyncResult, error) {
	result := &SyncResult{Sources: []string{}}
	seen := map[string]bool{}

	for _, fetcher := range s.fetchers {
		flights, err := fetcher.FetchFlights(ctx, date)
		if err != nil {
			return nil, err
		}
		result.Sources = append(result.Sources, fetcher.Name())
		result.Fetched += len(flights)

		for i := range flights {
			flight := flights[i]
			key := flight.FlightNumber + "|" + flight.ScheduledDate
			if seen[key] {
				result.Skipped++
				continue
			}
			seen[key] = true

			inserted, err := s.store.Upsert(ctx, &flight)
			if err != nil {
				return nil, err
			}
			if inserted {
				result.Created++
			} else {
				result.Updated++
			}
			metrics.FlightsSynced.WithLabelValues(fetcher.Name()).Inc()
		}
	}

	s.logger.Info("flight sync finished", map[string]interface{}{
		"date":    date,
		"fetched": result.Fetched,
		"created": result.Created,
		"updated": result.Updated,
		"skipped": result.Skipped,
	})
	return result, nil
}
