package reconcile

// ResolveRemoved exposes resolveRemoved so the inconsistency path can be
// exercised without a corrupted snapshot.
var ResolveRemoved = resolveRemoved
