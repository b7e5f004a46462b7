package backup

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"vitae/internal/docstore"
)

// DefaultSchedule runs one backup per hour.
const DefaultSchedule = "@hourly"

// keepRuns bounds how many backup runs are retained on disk.
const keepRuns = 20

// Scheduler periodically snapshots every persisted document to a local
// directory, as a safety net independent of the sync backend. Each run
// writes a timestamped directory with one JSON file per document.
type Scheduler struct {
	store docstore.Store
	dir   string
	sched *cron.Cron
}

// New creates a scheduler writing under dir.
func New(store docstore.Store, dir string) *Scheduler {
	return &Scheduler{store: store, dir: dir}
}

// Start registers the cron entry and begins running. Invalid schedule
// expressions are reported as an error before anything runs.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			log.Printf("[BACKUP] run failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	c.Start()
	s.sched = c
	log.Printf("[BACKUP] scheduled %q into %s", schedule, s.dir)
	return nil
}

// Stop halts the schedule. A backup in progress runs to completion.
func (s *Scheduler) Stop() {
	if s.sched != nil {
		s.sched.Stop()
		s.sched = nil
	}
}

// RunOnce takes a full backup immediately.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	infos, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	runDir := filepath.Join(s.dir, time.Now().UTC().Format("20060102-150405"))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	for _, info := range infos {
		rec, err := s.store.Get(ctx, info.ID)
		if err != nil {
			log.Printf("[BACKUP] skip %s: %v", info.ID, err)
			continue
		}
		path := filepath.Join(runDir, rec.ID+".json")
		if err := os.WriteFile(path, rec.Data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	s.prune()
	log.Printf("[BACKUP] wrote %d document(s) to %s", len(infos), runDir)
	return nil
}

// prune deletes the oldest runs past the retention limit.
func (s *Scheduler) prune() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	var runs []string
	for _, e := range entries {
		if e.IsDir() {
			runs = append(runs, e.Name())
		}
	}
	if len(runs) <= keepRuns {
		return
	}
	sort.Strings(runs) // names are timestamps, lexical order is chronological
	for _, name := range runs[:len(runs)-keepRuns] {
		os.RemoveAll(filepath.Join(s.dir, name))
	}
}
