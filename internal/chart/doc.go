// Package chart maps normalized series onto a bounded drawing surface.
//
// The projection is a pure transformation: given a series, its cadence, and
// target dimensions it produces pixel coordinates for a polyline, an
// optional filled-area outline, and evenly spaced axis ticks with
// cadence-aware labels. The output is plain data safe to hand to any
// renderer (SVG, canvas, terminal plot) and is not retained between calls.
package chart
