// Package driven defines the outbound ports the application depends on.
package driven

import (
	"context"
	"errors"
)

// ErrMalformedResponse marks a backend response whose body could not be
// interpreted. Callers treat it as "no data" rather than a transport failure.
var ErrMalformedResponse = errors.New("malformed response")

// KnowledgeBase defines the driven port for reading metrics from the hosted
// knowledge base collection.
type KnowledgeBase interface {
	// CountRecords returns the total number of rows in the collection.
	CountRecords(ctx context.Context) (int, error)
	// LatestModification returns the raw modification timestamp of the most
	// recently modified row, or "" when the collection is empty or the field
	// is absent.
	LatestModification(ctx context.Context) (string, error)
}
