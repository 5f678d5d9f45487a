// Package render turns materialized grids and sliding-window results into
// artifacts: PNG heatmaps (gonum/plot), interactive HTML heatmaps and 3D
// surfaces (go-echarts), CSV tables and animated GIF frame sequences.
//
// Renderers take plain [][]float64 values where NaN marks a missing cell,
// so they stay independent of the big-integer core. Every writer goes
// through an fsutil.FileSystem so tests can capture output in memory.
package render
