// Package writer hands reconciliation results to the persistence side.
// Writers receive the filtered result of a run and emit its change-set;
// they never execute anything against a database.
package writer

import (
	"context"
	stderrors "errors"

	"github.com/agentstation/pkgsync/pkg/reconcile"
)

// Writer emits the change-set of a run.
type Writer interface {
	Write(ctx context.Context, result *reconcile.Result) error
}

// WriterFunc allows functions to implement Writer.
type WriterFunc func(context.Context, *reconcile.Result) error

// Write implements the Writer interface.
func (f WriterFunc) Write(ctx context.Context, result *reconcile.Result) error {
	return f(ctx, result)
}

// Multi fans a result out to every writer. All writers are attempted; their
// errors are joined.
type Multi []Writer

// Write implements the Writer interface.
func (m Multi) Write(ctx context.Context, result *reconcile.Result) error {
	var errs []error
	for _, w := range m {
		if err := w.Write(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
