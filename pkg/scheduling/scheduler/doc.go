/*
Package scheduler runs recurring jobs, such as strategy comparisons, on cron
expressions.

	s := scheduler.New()
	defer func() { <-s.Stop() }()

	err := s.ScheduleCron("nightly", "0 3 * * *", scheduler.JobFunc(func(ctx context.Context) error {
		_, err := compare.Run(ctx, g, base, compare.Options{})
		return err
	}))

	s.Start()

Expressions use the robfig/cron parser with an optional leading seconds
field, so both "30 3 * * *" and "0 30 3 * * *" work, as do descriptors
like "@hourly" and "@every 10s". Panics inside jobs are recovered and logged.
*/
package scheduler
