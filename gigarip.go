// Package gigarip downloads zoomable tiled images that are published
// without a manifest of their dimensions or maximum resolution, and
// reassembles them into a single full-resolution image file. The tile
// grid and maximum zoom level are discovered purely from the presence
// or absence of individual tile resources.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or mechanism
// (e.g., http/, fs/, goquery/, imaging/).
package gigarip
