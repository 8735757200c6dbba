// Package metrics provides Prometheus instrumentation for gridflow components.
//
// # Quick Start
//
// Wrap a counter with metrics and expose them over HTTP:
//
//	counter, _ := counting.NewWithMetrics(cfg, "thumbnails")
//	n, err := counter.Count(ctx, g)
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":9090", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation, as tests do:
//
//	reg := prometheus.NewRegistry()
//	r := metrics.NewRegistry(reg)
//
// # Available Metrics
//
//   - gridflow_count_runs_total: counting runs started, by strategy
//   - gridflow_count_run_failures_total: runs that returned an error
//   - gridflow_count_run_duration_seconds: wall time of a run
//   - gridflow_count_regions_scanned_total: row bands or tiles scanned
//   - gridflow_count_samples_scanned_total: samples visited
//   - gridflow_count_matches_total: samples satisfying the predicate
//   - gridflow_count_workers: workers used by the most recent run
//   - gridflow_count_worker_regions: regions scanned per worker
//   - gridflow_tilepool_dispensed_total: tile ids handed out, by pool
//   - gridflow_compare_runs_total: strategy comparisons
//   - gridflow_compare_mismatches_total: comparisons where strategies disagreed
//
// # Labels
//
//   - strategy: "rows", "tiles" or "dynamic"
//   - pool_name: user-provided name of the tile pool
//   - comparison_name: user-provided name of the comparison job
package metrics
