package ingest

import (
	"context"
	"log"
	"time"

	"github.com/ncuwatch/taoyuanwx/internal/metrics"
	"github.com/ncuwatch/taoyuanwx/internal/models"
	"github.com/ncuwatch/taoyuanwx/internal/qpf"
	"github.com/ncuwatch/taoyuanwx/internal/store"
)

// Scheduler refreshes the forecast snapshot on an interval. Each refresh
// fetches the feed, attaches district boundaries, samples the QPF rasters and
// publishes the assembled dataset in one swap.
type Scheduler struct {
	store      *store.Store
	client     *Client
	qpf        *qpf.Fetcher
	boundaries map[string][]models.Ring
	interval   time.Duration
}

func NewScheduler(st *store.Store, client *Client, qf *qpf.Fetcher, boundaries map[string][]models.Ring, interval time.Duration) *Scheduler {
	return &Scheduler{
		store:      st,
		client:     client,
		qpf:        qf,
		boundaries: boundaries,
		interval:   interval,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	s.refresh()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler: shutting down")
			return
		case <-ticker.C:
			s.refresh()
		}
	}
}

// Refresh performs a single fetch-and-publish cycle. It is exported for the
// one-shot CLI commands.
func (s *Scheduler) Refresh() error {
	return s.refresh()
}

func (s *Scheduler) refresh() error {
	ds, err := s.client.Fetch()
	if err != nil {
		log.Printf("scheduler: forecast fetch failed: %v", err)
		return err
	}

	for _, d := range ds.Districts {
		d.Polygons = s.boundaries[d.Name]
	}

	if s.qpf != nil {
		frames := s.qpf.FetchFrames()
		qpf.Apply(ds, frames)
	}

	s.store.Set(ds)
	metrics.DistrictsLoaded.Set(float64(len(ds.Districts)))
	metrics.DatasetAgeSeconds.Set(0)
	log.Printf("scheduler: refreshed %d districts", len(ds.Districts))
	return nil
}
