// Package geom provides the value types shared by the layout engine:
// rectangles, sizes and edge insets.
//
// All coordinates are float64 in a top-left origin space where Y grows
// downward, matching the scroll model of a vertical feed. Every type is a
// plain value; methods never mutate the receiver.
//
// # Degenerate rectangles
//
// Items whose source size has no area are laid out with zero height. Such
// rectangles still take part in unions and intersection tests: a zero-height
// rectangle intersects any rectangle whose vertical span contains its Y
// coordinate. This keeps zero-height elements reachable by range queries.
package geom
