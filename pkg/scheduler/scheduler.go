// Package scheduler fires pipeline jobs on a cadence that depends on the civil time of day.
// Every job has its own fire times, coinciding jobs all fire and the pipeline try-locks
// decide which of them actually run.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/morningdesk/morningdesk/pkg/domain"
	"github.com/morningdesk/morningdesk/pkg/pipeline"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Runner executes the jobs, implemented by the pipeline
type Runner interface {
	RunCycle(ctx context.Context, region domain.Region, includeSearch bool) (domain.CycleResult, error)
	FullBatch(ctx context.Context) (pipeline.FullBatchResult, error)
	Briefings(ctx context.Context, slot domain.BriefingSlot) (domain.BriefingResult, error)
	Housekeeping(ctx context.Context, retention time.Duration) error
}

// maxCatchUp limits how far back missed minutes are replayed
const maxCatchUp = 24 * time.Hour

// JobKind tells what a job runs
type JobKind string

const (
	KindCycle        JobKind = "cycle"
	KindFullBatch    JobKind = "full-batch"
	KindBriefing     JobKind = "briefing"
	KindHousekeeping JobKind = "housekeeping"
)

// Job is a scheduled unit of work
type Job struct {
	Name   string
	Kind   JobKind
	Region domain.Region       // cycle jobs only
	Search bool                // cycle jobs only
	Slot   domain.BriefingSlot // briefing jobs only

	spec     string
	schedule cron.Schedule
}

// Params configure the scheduler, intervals are whole minutes below an hour
type Params struct {
	Location          *time.Location
	UrgentInterval    time.Duration
	PreMarketInterval time.Duration
	BusinessInterval  time.Duration
	OvernightInterval time.Duration
	Retention         time.Duration // 0 disables housekeeping
	TickInterval      time.Duration
}

// Scheduler triggers due jobs once a minute
type Scheduler struct {
	runner Runner
	params Params
	jobs   []Job
	now    func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler makes a scheduler with the standard job table
func NewScheduler(runner Runner, params Params) (*Scheduler, error) {
	if params.Location == nil {
		params.Location = time.FixedZone("KST", 9*60*60)
	}
	if params.TickInterval <= 0 {
		params.TickInterval = time.Minute
	}
	jobs, err := buildJobs(params)
	if err != nil {
		return nil, err
	}
	return &Scheduler{runner: runner, params: params, jobs: jobs, now: time.Now}, nil
}

func buildJobs(p Params) ([]Job, error) {
	every := func(d time.Duration, hours string) string {
		return fmt.Sprintf("*/%d %s * * *", int(d/time.Minute), hours)
	}
	jobs := []Job{
		{Name: "urgent-kr", Kind: KindCycle, Region: domain.RegionKR, spec: every(p.UrgentInterval, "*")},
		{Name: "pre-market-kr", Kind: KindCycle, Region: domain.RegionKR, Search: true, spec: every(p.PreMarketInterval, "5-8")},
		{Name: "business-kr", Kind: KindCycle, Region: domain.RegionKR, Search: true, spec: every(p.BusinessInterval, "9-17")},
		{Name: "overnight-us", Kind: KindCycle, Region: domain.RegionUS, spec: every(p.OvernightInterval, "22-23,0-1")},
		{Name: "morning-full-batch", Kind: KindFullBatch, spec: "0 4 * * *"},
		{Name: "morning-briefing", Kind: KindBriefing, Slot: domain.SlotMorning, spec: "30 4 * * *"},
		{Name: "night-full-batch", Kind: KindFullBatch, spec: "0 2 * * *"},
		{Name: "night-briefing", Kind: KindBriefing, Slot: domain.SlotNight, spec: "30 2 * * *"},
	}
	if p.Retention > 0 {
		jobs = append(jobs, Job{Name: "housekeeping", Kind: KindHousekeeping, spec: "0 3 * * *"})
	}

	for i := range jobs {
		if jobs[i].Kind == KindCycle && !validInterval(jobs[i].spec) {
			return nil, fmt.Errorf("job %s: interval must be whole minutes between 1m and 59m", jobs[i].Name)
		}
		sched, err := cron.ParseStandard(jobs[i].spec)
		if err != nil {
			return nil, fmt.Errorf("job %s: parse %q: %w", jobs[i].Name, jobs[i].spec, err)
		}
		jobs[i].schedule = sched
	}
	return jobs, nil
}

func validInterval(spec string) bool {
	var minutes int
	if _, err := fmt.Sscanf(spec, "*/%d", &minutes); err != nil {
		return false
	}
	return minutes >= 1 && minutes < 60
}

// Jobs returns the job table
func (s *Scheduler) Jobs() []Job {
	return s.jobs
}

// DueJobs returns the jobs firing in the minute containing t, evaluated in the scheduler time zone
func (s *Scheduler) DueJobs(t time.Time) []Job {
	lt := t.In(s.params.Location)
	minute := time.Date(lt.Year(), lt.Month(), lt.Day(), lt.Hour(), lt.Minute(), 0, 0, s.params.Location)

	var res []Job
	for _, j := range s.jobs {
		if j.schedule.Next(minute.Add(-time.Second)).Equal(minute) {
			res = append(res, j)
		}
	}
	return res
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.tickWorker(ctx)

	lgr.Printf("[INFO] scheduler started with %d jobs in %s", len(s.jobs), s.params.Location)
}

// Stop cancels the ticker and waits for running jobs
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) tickWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.params.TickInterval)
	defer ticker.Stop()

	last := s.now().Truncate(time.Minute).Add(-time.Minute)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			minute := s.now().Truncate(time.Minute)
			if !minute.After(last) {
				continue
			}
			s.fire(ctx, s.dueBetween(last, minute))
			last = minute
		}
	}
}

// dueBetween returns the jobs firing in any minute after from up to and including to.
// Minutes missed by a late tick or a stall are caught up, each job fires at most once per call.
func (s *Scheduler) dueBetween(from, to time.Time) []Job {
	if gap := to.Sub(from); gap > time.Minute {
		lgr.Printf("[WARN] scheduler missed %v, catching up", gap-time.Minute)
		if gap > maxCatchUp {
			from = to.Add(-maxCatchUp)
		}
	}

	var res []Job
	seen := make(map[string]bool)
	for m := from.Add(time.Minute); !m.After(to); m = m.Add(time.Minute) {
		for _, j := range s.DueJobs(m) {
			if seen[j.Name] {
				continue
			}
			seen[j.Name] = true
			res = append(res, j)
		}
	}
	return res
}

// fire runs each job in its own goroutine
func (s *Scheduler) fire(ctx context.Context, jobs []Job) {
	for _, j := range jobs {
		s.wg.Add(1)
		go func(job Job) {
			defer s.wg.Done()
			s.run(ctx, job)
		}(j)
	}
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	lgr.Printf("[DEBUG] job %s fired", job.Name)
	var err error
	switch job.Kind {
	case KindCycle:
		_, err = s.runner.RunCycle(ctx, job.Region, job.Search)
	case KindFullBatch:
		_, err = s.runner.FullBatch(ctx)
	case KindBriefing:
		_, err = s.runner.Briefings(ctx, job.Slot)
	case KindHousekeeping:
		err = s.runner.Housekeeping(ctx, s.params.Retention)
	}
	if err != nil {
		lgr.Printf("[WARN] job %s failed: %v", job.Name, err)
	}
}
