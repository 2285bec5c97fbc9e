// Package fetcher issues the single GET request of an invocation and turns
// the response into a domain.Response.
package fetcher

import (
	"context"
	"purl/pkg/domain"
)

// Fetcher is the abstraction over the outbound request.
//
//go:generate mockgen -package mockfetcher -source=interface.go -destination=mock/mockfetcher.go *
type Fetcher interface {
	// Fetch issues one GET to URL and returns the fully read response.
	Fetch(ctx context.Context, URL string) (*domain.Response, error)
}
