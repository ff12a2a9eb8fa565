package calls_test

import (
	"context"
	"sync"

	"github.com/ethanbaker/calldash/pkg/calls"
)

// fakeStore is a slice backed store with injectable failures
type fakeStore struct {
	mutex   sync.Mutex
	records []*calls.Call

	saveErr   error
	getErr    error
	listErr   error
	updateErr error
	updates   int
}

func (s *fakeStore) Save(ctx context.Context, call *calls.Call) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records = append(s.records, call.Clone())
	return nil
}

func (s *fakeStore) ListAll(ctx context.Context) ([]*calls.Call, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]*calls.Call, 0, len(s.records))
	for _, c := range s.records {
		out = append(out, c.Clone())
	}
	calls.SortByRecency(out)
	return out, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*calls.Call, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, c := range s.records {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return nil, nil
}

func (s *fakeStore) UpdateStatus(ctx context.Context, id string, status calls.Status) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates++
	for _, c := range s.records {
		if c.ID == id {
			c.Status = status
		}
	}
	return nil
}

// fakeTransport records placed calls
type fakeTransport struct {
	err    error
	placed []*calls.PlaceCallRequest
}

func (t *fakeTransport) PlaceCall(ctx context.Context, req *calls.PlaceCallRequest) (*calls.PlaceCallResult, error) {
	if t.err != nil {
		return nil, t.err
	}
	t.placed = append(t.placed, req)
	return &calls.PlaceCallResult{ProviderID: "prov-" + req.ID, InitialStatus: calls.StatusInProgress}, nil
}

// fakeOracle answers with a fixed status and counts how often it was asked
type fakeOracle struct {
	status calls.Status
	err    error
	checks int
}

func (o *fakeOracle) CheckStatus(ctx context.Context, id string) (calls.Status, error) {
	o.checks++
	if o.err != nil {
		return "", o.err
	}
	return o.status, nil
}

// fakeSource serves transcripts from a map
type fakeSource struct {
	texts   map[string]string
	err     error
	fetches int
}

func (s *fakeSource) FetchTranscript(ctx context.Context, id string) (string, bool, error) {
	s.fetches++
	if s.err != nil {
		return "", false, s.err
	}
	text, ok := s.texts[id]
	return text, ok, nil
}
