// Package version provides build and version information.
package version

// Version is the current library version.
const Version = "1.2.0"

// Milestones:
// 1.2.0 - HTTP conversion service, worker pool, Prometheus metrics
// 1.1.0 - text table I/O, CLI front-end, degree/radian boundary handling
// 1.0.0 - conversion core: vector kernels, Kepler solver, four converters
