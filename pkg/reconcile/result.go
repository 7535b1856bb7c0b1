package reconcile

import (
	"fmt"
	"strings"
	"time"
)

// Result represents the outcome of one reconciliation run.
type Result struct {
	// Source is the upstream the records came from
	Source string `json:"source" yaml:"source"`

	// Changeset contains all changes that were detected
	Changeset *Changeset `json:"changeset" yaml:"changeset"`

	// Metadata about the run
	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`
}

// ResultMetadata contains metadata about the run.
type ResultMetadata struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	DryRun    bool          `json:"dry_run" yaml:"dry_run"`
	Stats     Statistics    `json:"stats" yaml:"stats"`
}

// Statistics counts what a run saw.
type Statistics struct {
	PackagesProcessed int `json:"packages_processed" yaml:"packages_processed"`
	PackagesCreated   int `json:"packages_created" yaml:"packages_created"`
	PackagesUpdated   int `json:"packages_updated" yaml:"packages_updated"`

	// PackagesSkipped counts records that carried no import id.
	PackagesSkipped int `json:"packages_skipped" yaml:"packages_skipped"`

	// PackagesUncached counts packages whose edges were not computed
	// because they are not yet in the cache.
	PackagesUncached int `json:"packages_uncached" yaml:"packages_uncached"`

	// DependenciesUnresolved counts declared dependencies on unknown packages.
	DependenciesUnresolved int `json:"dependencies_unresolved" yaml:"dependencies_unresolved"`
}

// HasChanges returns true if any changes were detected.
func (r *Result) HasChanges() bool {
	return r.Changeset != nil && r.Changeset.HasChanges()
}

// Filtered returns a copy of the result with its changeset filtered.
func (r *Result) Filtered(strategy ApplyStrategy) *Result {
	out := *r
	if r.Changeset != nil {
		out.Changeset = r.Changeset.Filter(strategy)
	}
	return &out
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	prefix := "Reconciliation completed."
	if r.Metadata.DryRun {
		prefix = "Dry run completed."
	}
	if !r.HasChanges() {
		return prefix + " No changes detected."
	}
	return fmt.Sprintf("%s %s", prefix, r.Changeset.String())
}

// Report generates a detailed report of the run.
func (r *Result) Report() string {
	var b strings.Builder
	st := r.Metadata.Stats

	fmt.Fprintf(&b, "Reconciliation Report\n=====================\n")
	if r.Metadata.RunID != "" {
		fmt.Fprintf(&b, "Run: %s\n", r.Metadata.RunID)
	}
	fmt.Fprintf(&b, "Source: %s\nDuration: %s\nDry run: %t\n\n", r.Source, r.Metadata.Duration, r.Metadata.DryRun)
	fmt.Fprintf(&b, "Statistics:\n-----------\n")
	fmt.Fprintf(&b, "Packages Processed: %d\n", st.PackagesProcessed)
	fmt.Fprintf(&b, "Packages Created: %d\n", st.PackagesCreated)
	fmt.Fprintf(&b, "Packages Updated: %d\n", st.PackagesUpdated)
	fmt.Fprintf(&b, "Packages Skipped: %d\n", st.PackagesSkipped)
	fmt.Fprintf(&b, "Packages Not Cached: %d\n", st.PackagesUncached)
	fmt.Fprintf(&b, "Unresolved Dependencies: %d\n\n", st.DependenciesUnresolved)

	if r.Changeset != nil {
		b.WriteString(r.Changeset.String())
		b.WriteString("\n")
	}
	return b.String()
}
