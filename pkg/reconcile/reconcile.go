// Package reconcile computes the minimal set of writes that converge the
// persisted store to a freshly observed package. There is one reconciler
// per entity kind:
//
//   - Package: create a new package, or patch its readme
//   - ResolveURLs and Links: resolve URL identities and link them to the package
//   - Dependencies: diff declared dependency edges against the cached ones
//
// Reconcilers read an immutable cache.Snapshot and never perform I/O. URL
// resolution writes into the run's cache.URLAccumulator, and link touches
// are recorded in the run's cache.TouchLog. The output of a whole run is a
// Changeset wrapped in a Result.
package reconcile
