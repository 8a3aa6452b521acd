// Package results provides persistence of finished solver runs
package results

//go:generate mockgen -destination=mock/mock_repository.go -package=resultsmock github.com/FlatBartender/bis-solver/internal/repositories/results Repository

import (
	"context"

	"github.com/FlatBartender/bis-solver/internal/report"
)

// Repository stores run results for later display
type Repository interface {
	// Save stores a result, assigning it a new run ID when it has none
	// Returns errors.InvalidArgument for a nil result
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a result by run ID
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if the run doesn't exist or expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns the most recent run IDs, newest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a run
	// Returns errors.NotFound if the run doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

type SaveInput struct {
	Result *report.Result
}

type SaveOutput struct {
	ID string
}

type GetInput struct {
	ID string
}

type GetOutput struct {
	Result *report.Result
}

type ListInput struct {
	// Limit caps the returned IDs, 0 means 20
	Limit int
}

type ListOutput struct {
	IDs []string
}

type DeleteInput struct {
	ID string
}

type DeleteOutput struct{}
