package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of recurring work, typically a strategy comparison.
type Job interface {
	// Run executes the job. ctx is canceled when the scheduler stops.
	Run(ctx context.Context) error
}

// JobFunc is a function type that implements the Job interface.
type JobFunc func(ctx context.Context) error

// Run implements the Job interface for JobFunc.
func (f JobFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Entry describes a scheduled job.
type Entry struct {
	ID       string
	Expr     string
	Next     time.Time
	Prev     time.Time
	Runs     int64
	Failures int64
}

// Scheduler runs named jobs on cron expressions.
type Scheduler interface {
	// ScheduleCron schedules job on a cron expression. Five fields
	// ("minute hour dom month dow"), six fields with leading seconds, and
	// descriptors such as "@hourly" or "@every 30s" are accepted.
	ScheduleCron(id string, cronExpr string, job Job) error

	// ScheduleRepeating runs job every interval, rounded down to whole
	// seconds with a minimum of one second.
	ScheduleRepeating(id string, job Job, interval time.Duration) error

	// RunNow executes a scheduled job synchronously, outside its schedule.
	RunNow(ctx context.Context, id string) error

	// Cancel removes a job. It reports whether the job existed.
	Cancel(id string) bool

	// List returns the scheduled jobs sorted by id.
	List() []Entry

	// Lifecycle
	Start() error
	Stop() <-chan struct{}
}

// Config holds scheduler configuration.
type Config struct {
	// Location is the time zone for cron expressions (default: time.Local).
	Location *time.Location

	// Logger receives job failures and panics (default: discard).
	Logger *slog.Logger

	// OnError is called after a job returns an error.
	OnError func(id string, err error)

	// SkipIfStillRunning skips a run while the previous run of the same job
	// is still executing.
	SkipIfStillRunning bool
}

type entry struct {
	id       string
	expr     string
	job      Job
	cronID   cron.EntryID
	runs     atomic.Int64
	failures atomic.Int64
}

type scheduler struct {
	config Config
	cron   *cron.Cron
	parser cron.Parser
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	entries map[string]*entry
	started bool
	stopped bool
}

// New creates a scheduler with default configuration.
func New() Scheduler {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	cl := cronLogger{logger: logger}

	wrappers := []cron.JobWrapper{cron.Recover(cl)}
	if cfg.SkipIfStillRunning {
		wrappers = append(wrappers, cron.SkipIfStillRunning(cl))
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &scheduler{
		config: cfg,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cl),
			cron.WithChain(wrappers...),
		),
		parser:  parser,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[string]*entry),
	}
}

// ValidateCronExpression validates a cron expression without scheduling it.
func ValidateCronExpression(cronExpr string) error {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(cronExpr); err != nil {
		return fmt.Errorf("invalid cron expression '%s': %w", cronExpr, err)
	}
	return nil
}

// ScheduleCron schedules a job using a cron expression.
func (s *scheduler) ScheduleCron(id string, cronExpr string, job Job) error {
	if cronExpr == "" {
		return fmt.Errorf("cron expression cannot be empty")
	}
	schedule, err := s.parser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid cron expression '%s': %w", cronExpr, err)
	}
	return s.add(id, cronExpr, schedule, job)
}

// ScheduleRepeating schedules a job at a fixed interval.
func (s *scheduler) ScheduleRepeating(id string, job Job, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	return s.add(id, "@every "+interval.String(), cron.Every(interval), job)
}

func (s *scheduler) add(id, expr string, schedule cron.Schedule, job Job) error {
	if job == nil {
		return fmt.Errorf("job cannot be nil")
	}
	if id == "" {
		return fmt.Errorf("job ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return fmt.Errorf("cannot schedule job: scheduler has been stopped")
	}
	if _, exists := s.entries[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	e := &entry{id: id, expr: expr, job: job}
	e.cronID = s.cron.Schedule(schedule, cron.FuncJob(func() {
		_ = s.execute(s.ctx, e)
	}))
	s.entries[id] = e
	return nil
}

// execute runs a job and records the outcome.
func (s *scheduler) execute(ctx context.Context, e *entry) error {
	e.runs.Add(1)
	err := e.job.Run(ctx)
	if err != nil {
		e.failures.Add(1)
		s.logger.Error("scheduled job failed", "job", e.id, "error", err)
		if s.config.OnError != nil {
			s.config.OnError(e.id, err)
		}
	}
	return err
}

// RunNow executes a job immediately.
func (s *scheduler) RunNow(ctx context.Context, id string) error {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job with ID %s not found", id)
	}
	return s.execute(ctx, e)
}

// Cancel removes a scheduled job.
func (s *scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return false
	}
	s.cron.Remove(e.cronID)
	delete(s.entries, id)
	return true
}

// List returns all scheduled jobs.
func (s *scheduler) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		ce := s.cron.Entry(e.cronID)
		list = append(list, Entry{
			ID:       e.id,
			Expr:     e.expr,
			Next:     ce.Next,
			Prev:     ce.Prev,
			Runs:     e.runs.Load(),
			Failures: e.failures.Load(),
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Start begins running jobs in the background.
func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return fmt.Errorf("scheduler has been stopped")
	}
	if s.started {
		return fmt.Errorf("scheduler already started")
	}
	s.started = true
	s.cron.Start()
	return nil
}

// Stop prevents new runs, cancels the context of running jobs, and returns
// a channel that closes once they have returned.
func (s *scheduler) Stop() <-chan struct{} {
	done := make(chan struct{})

	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.cancel()
	cronDone := s.cron.Stop()

	go func() {
		<-cronDone.Done()
		close(done)
	}()
	return done
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
