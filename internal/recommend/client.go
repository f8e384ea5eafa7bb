// Package recommend fetches learning-resource recommendations for a profile.
package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/techtonix/compass/internal/apiclient"
)

// FailureKind classifies a failed fetch.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureTransport
	FailureStatus
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTransport:
		return "backend unreachable"
	case FailureStatus:
		return "backend error"
	case FailureDecode:
		return "unreadable response"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// FetchError reports why a fetch failed. No partial results accompany it.
type FetchError struct {
	Kind       FailureKind
	StatusCode int // set for FailureStatus
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FailureStatus {
		return fmt.Sprintf("smart search: %s (HTTP %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("smart search: %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf returns the FailureKind of err, FailureNone for nil and
// FailureTransport for errors not produced by Fetch.
func KindOf(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return FailureTransport
}

const searchPath = "/smart-search"

// Client queries the smart-search endpoint. It does not retry or cache.
type Client struct {
	api *apiclient.Client
}

func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

type searchResponse struct {
	Items []Item `json:"items"`
}

// Fetch issues one smart-search request. The server's ordering and count
// are passed through; q.Limit is a request, not a guarantee. A missing or
// null items field yields an empty, non-nil slice.
func (c *Client) Fetch(ctx context.Context, q Query) ([]Item, error) {
	if q.Skills == nil {
		q.Skills = []string{}
	}
	if q.Interests == nil {
		q.Interests = []string{}
	}

	resp, err := c.api.Post(ctx, searchPath, q)
	if err != nil {
		return nil, &FetchError{Kind: FailureTransport, Err: err}
	}

	var out searchResponse
	if err := apiclient.DecodeJSON(resp, &out); err != nil {
		var se *apiclient.StatusError
		if errors.As(err, &se) {
			return nil, &FetchError{Kind: FailureStatus, StatusCode: se.StatusCode, Err: err}
		}
		return nil, &FetchError{Kind: FailureDecode, Err: err}
	}
	if out.Items == nil {
		return []Item{}, nil
	}
	return out.Items, nil
}
