// Package wavefront provides a concurrent shortest-path search over 2D
// traversability grids.
//
// It exposes two main entry points:
//
//   - FindPath: run a single search with the given options.
//   - Pathfinder: a reusable configuration that can serve concurrent callers.
//
// Searches are breadth-first wavefront expansions over 4-connected cells with
// uniform cost. An optional bounding corridor keeps the wave from spreading in
// every direction on large open maps, and the multi-threaded mode runs two
// waves toward each other and stitches them together at a handshake cell.
package wavefront
