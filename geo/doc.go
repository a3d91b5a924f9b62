// Package geo provides the small set of projection and distance primitives
// that every other package in this module builds on: an equirectangular
// projection, great-circle approximating distance between two points,
// shoelace area over a closed boundary, and the vector angle between two
// incident street segments' approach/depart directions.
//
// Everything here is a pure function of its inputs. Nothing in this package
// retains state across calls; each function picks its own local average
// latitude from the points it is given, rather than caching one globally.
package geo
