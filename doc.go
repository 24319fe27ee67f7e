// Package gridastar provides an incremental A* search over a uniform grid,
// built for visualisers that paint the frontier as it grows.
//
// It exposes three layers:
//
//   - Grid: a cols x rows arena of nodes with precomputed orthogonal adjacency.
//   - Session: the grid plus one search run. Step expands exactly one node per
//     call so a host scheduler (timer, render loop, test) decides the pace.
//   - Editor: pointer gestures that paint obstacles and drag the source or the
//     destination around while the session is idle.
//
// Frame snapshots everything a renderer reads per tick. Solve and SolveAll
// drive sessions to completion when nobody needs to watch.
package gridastar
