// Package store provides persistence for analysis reports.
//
// The archive is optional: the CLI runs without one, and the HTTP server
// only persists reports when a backend is configured. Two implementations
// exist:
//   - memory: in-process storage for development and tests
//   - mongo: MongoDB-backed storage for shared deployments
package store

import (
	"context"

	"github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/report"
)

// ReportStore is the interface for report archive backends.
type ReportStore interface {
	// Put stores a report under its run ID.
	Put(ctx context.Context, r *report.Report) error

	// Get retrieves a report by run ID. Returns an error with code
	// ErrCodeReportNotFound when no such report exists.
	Get(ctx context.Context, id string) (*report.Report, error)

	// List returns the run IDs of all stored reports, newest first.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NotFound builds the standard not-found error for a run ID.
func NotFound(id string) error {
	return errors.New(errors.ErrCodeReportNotFound, "no report with id %s", id)
}
