package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/gridflow/internal/testutil"
)

func noop() Job {
	return JobFunc(func(ctx context.Context) error { return nil })
}

func TestValidateCronExpression(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"*/5 * * * *", false},
		{"0 */5 * * * *", false},
		{"@hourly", false},
		{"@every 10s", false},
		{"not a cron", true},
		{"61 * * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := ValidateCronExpression(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCronExpression(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestScheduleCronErrors(t *testing.T) {
	s := New()
	defer func() { <-s.Stop() }()

	testutil.AssertError(t, s.ScheduleCron("a", "", noop()))
	testutil.AssertError(t, s.ScheduleCron("a", "bogus", noop()))
	testutil.AssertError(t, s.ScheduleCron("", "@hourly", noop()))
	testutil.AssertError(t, s.ScheduleCron("a", "@hourly", nil))
	testutil.AssertError(t, s.ScheduleRepeating("a", noop(), 0))

	testutil.AssertNoError(t, s.ScheduleCron("a", "@hourly", noop()))
	testutil.AssertError(t, s.ScheduleCron("a", "@daily", noop()))
}

func TestListAndCancel(t *testing.T) {
	s := New()
	defer func() { <-s.Stop() }()

	testutil.AssertNoError(t, s.ScheduleCron("b", "@daily", noop()))
	testutil.AssertNoError(t, s.ScheduleRepeating("a", noop(), time.Hour))
	testutil.AssertNoError(t, s.Start())

	list := s.List()
	testutil.AssertEqual(t, len(list), 2)
	testutil.AssertEqual(t, list[0].ID, "a")
	testutil.AssertEqual(t, list[0].Expr, "@every 1h0m0s")
	testutil.AssertEqual(t, list[1].Expr, "@daily")
	if list[0].Next.IsZero() {
		t.Error("started scheduler should report next run")
	}

	testutil.AssertEqual(t, s.Cancel("a"), true)
	testutil.AssertEqual(t, s.Cancel("a"), false)
	testutil.AssertEqual(t, len(s.List()), 1)
}

func TestRunNow(t *testing.T) {
	var errored int32
	boom := errors.New("boom")
	s := NewWithConfig(Config{
		OnError: func(id string, err error) { atomic.AddInt32(&errored, 1) },
	})
	defer func() { <-s.Stop() }()

	var runs int32
	testutil.AssertNoError(t, s.ScheduleCron("job", "@daily", JobFunc(func(ctx context.Context) error {
		if atomic.AddInt32(&runs, 1) == 2 {
			return boom
		}
		return nil
	})))

	testutil.AssertNoError(t, s.RunNow(context.Background(), "job"))
	testutil.AssertErrorIs(t, s.RunNow(context.Background(), "job"), boom)
	testutil.AssertError(t, s.RunNow(context.Background(), "missing"))

	entry := s.List()[0]
	testutil.AssertEqual(t, entry.Runs, int64(2))
	testutil.AssertEqual(t, entry.Failures, int64(1))
	testutil.AssertEqual(t, atomic.LoadInt32(&errored), int32(1))
}

func TestScheduledJobRuns(t *testing.T) {
	s := New()

	ran := make(chan struct{}, 1)
	testutil.AssertNoError(t, s.ScheduleRepeating("tick", JobFunc(func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}), time.Second))
	testutil.AssertNoError(t, s.Start())

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	select {
	case <-s.Stop():
	case <-time.After(time.Second):
		t.Fatal("stop did not complete")
	}
}

func TestLifecycle(t *testing.T) {
	s := New()
	testutil.AssertNoError(t, s.Start())
	testutil.AssertError(t, s.Start())

	<-s.Stop()
	testutil.AssertError(t, s.Start())
	testutil.AssertError(t, s.ScheduleCron("late", "@daily", noop()))
}

func TestStopCancelsRunningJobs(t *testing.T) {
	s := New()
	started := make(chan struct{})
	var once sync.Once
	testutil.AssertNoError(t, s.ScheduleRepeating("long", JobFunc(func(ctx context.Context) error {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return ctx.Err()
	}), time.Second))
	testutil.AssertNoError(t, s.Start())

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	select {
	case <-s.Stop():
	case <-time.After(time.Second):
		t.Fatal("stop should cancel running jobs")
	}
}
