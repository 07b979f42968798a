// Package geometry provides angle helpers and generators for the polygons
// used as robot footprints. Polygons are ordered lists of r2 points.
package geometry
