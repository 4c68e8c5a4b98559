// Package siteinv inventories a single web domain. It crawls the site
// breadth-first from a seed URL, classifies every reachable resource by
// content type, and reports counts, per-type path trees, and per-URL errors.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package siteinv
