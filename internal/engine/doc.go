package engine

// Package engine drives the refresh cycle: it pulls snapshots, rebuilds the
// pivot grids, pushes them to a View and dispatches user mutations. While the
// server reports an active solver the engine polls on a fixed interval.
