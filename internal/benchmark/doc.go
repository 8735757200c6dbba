// Package benchmark holds cross-package benchmarks of the counting
// strategies and their scheduling primitives.
package benchmark
