package calls

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Speaker prefixes recognized when displaying a transcript
const (
	AgentSpeaker    = "Agent"
	CustomerSpeaker = "Customer"
)

// Transcript is the dialogue text of a call. Available is false when the source has
// nothing for the call yet, which is distinct from an empty transcript.
type Transcript struct {
	CallID    string `json:"callId"`
	Text      string `json:"transcript"`
	Available bool   `json:"available"`
}

// Line is a single display line of a transcript
type Line struct {
	Speaker string `json:"speaker,omitempty"` // Agent, Customer or empty
	Text    string `json:"text"`
}

// Lines splits the transcript into non-blank lines, tagging the ones that start with a
// known speaker prefix
func (t *Transcript) Lines() []Line {
	if t == nil || !t.Available {
		return nil
	}

	var lines []Line
	for _, raw := range strings.Split(t.Text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		line := Line{Text: raw}
		for _, speaker := range []string{AgentSpeaker, CustomerSpeaker} {
			if rest, ok := strings.CutPrefix(raw, speaker+":"); ok {
				line = Line{Speaker: speaker, Text: strings.TrimSpace(rest)}
				break
			}
		}
		lines = append(lines, line)
	}

	return lines
}

// TranscriptResolver looks up transcripts for stored calls. It never writes to the store.
// Produced transcripts are kept for the life of the resolver and never evicted.
type TranscriptResolver struct {
	store  StoreInterface
	source TranscriptSource

	mutex    sync.RWMutex
	produced map[string]string
}

// NewTranscriptResolver creates a resolver reading calls from store and text from source
func NewTranscriptResolver(store StoreInterface, source TranscriptSource) (*TranscriptResolver, error) {
	if store == nil {
		return nil, fmt.Errorf("a valid store must be provided")
	}
	if source == nil {
		return nil, fmt.Errorf("a valid transcript source must be provided")
	}

	return &TranscriptResolver{
		store:    store,
		source:   source,
		produced: make(map[string]string),
	}, nil
}

// Resolve returns the transcript for a call. Once a transcript has been produced for an
// id the same text is returned on every later call.
func (r *TranscriptResolver) Resolve(ctx context.Context, id string) (*Transcript, error) {
	call, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if call == nil {
		return nil, &NotFoundError{ID: id}
	}

	r.mutex.RLock()
	text, cached := r.produced[id]
	r.mutex.RUnlock()
	if cached {
		return &Transcript{CallID: id, Text: text, Available: true}, nil
	}

	text, ok, err := r.source.FetchTranscript(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript for call '%s': %w", id, err)
	}
	if !ok {
		return &Transcript{CallID: id}, nil
	}

	r.mutex.Lock()
	if existing, exists := r.produced[id]; exists {
		text = existing
	} else {
		r.produced[id] = text
	}
	r.mutex.Unlock()

	return &Transcript{CallID: id, Text: text, Available: true}, nil
}
