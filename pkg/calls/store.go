package calls

import (
	"context"
	"sort"
)

// StoreInterface defines the storage operations for call records
//
// Save appends a record and fails with a *PersistenceError when the medium cannot be
// read or written. ListAll returns records newest first, ties kept in insertion order.
// GetByID returns (nil, nil) when the id is absent. UpdateStatus is a no-op for an
// unknown id.
type StoreInterface interface {
	Save(ctx context.Context, call *Call) error
	ListAll(ctx context.Context) ([]*Call, error)
	GetByID(ctx context.Context, id string) (*Call, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// Transport places calls with the external calling provider
type Transport interface {
	PlaceCall(ctx context.Context, req *PlaceCallRequest) (*PlaceCallResult, error)
}

// Oracle reports the live status of a call
type Oracle interface {
	CheckStatus(ctx context.Context, id string) (Status, error)
}

// TranscriptSource fetches transcript text. ok is false when no transcript exists yet.
type TranscriptSource interface {
	FetchTranscript(ctx context.Context, id string) (text string, ok bool, err error)
}

// SortByRecency orders calls by timestamp, newest first. The sort is stable so calls
// sharing a timestamp keep their insertion order.
func SortByRecency(calls []*Call) {
	sort.SliceStable(calls, func(i, j int) bool {
		return calls[i].Timestamp.After(calls[j].Timestamp)
	})
}
