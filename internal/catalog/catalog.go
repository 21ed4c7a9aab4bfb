// Package catalog stores schools as an append-only log of events in
// JetStream and rebuilds the catalog by reducing the log on read.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/nats"
	"github.com/mark3labs/campus/internal/school"
	"github.com/nats-io/nats.go/jetstream"
)

// Event actions.
const (
	ActionCreate = "create"
)

// maxPublishAttempts bounds retries when another writer appended to the
// stream between our read and our publish.
const maxPublishAttempts = 3

// errCodeWrongLastSequence is the JetStream API error code for a failed
// expected-last-sequence check.
const errCodeWrongLastSequence jetstream.ErrorCode = 10071

// Event is a single entry of the event log.
type Event struct {
	ID        string          `json:"id"`        // Entity id
	Timestamp time.Time       `json:"timestamp"` // When the event occurred
	Type      string          `json:"type"`      // Event type: school
	Action    string          `json:"action"`    // Action type: create
	Data      json.RawMessage `json:"data"`      // Action payload
}

// Store is a school.Repository backed by the JetStream event log.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream

	// mu serializes writers of this process.
	mu sync.Mutex
}

// NewStore creates a Store on the given JetStream context and stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{js: js, stream: stream}
}

// State is the catalog reconstructed from events.
type State struct {
	Schools map[string]*school.School
	LastSeq uint64 // Stream sequence of the last applied event
}

// Apply reduces one event into the state.
func (st *State) Apply(event Event) {
	switch event.Type {
	case nats.EventTypeSchool:
		st.applySchoolEvent(event)
	}
}

func (st *State) applySchoolEvent(event Event) {
	switch event.Action {
	case ActionCreate:
		var s school.School
		if err := json.Unmarshal(event.Data, &s); err != nil {
			logger.Warn("Skipping school event %s with bad payload: %v", event.ID, err)
			return
		}
		if s.ID == "" {
			s.ID = event.ID
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = event.Timestamp
		}
		if _, exists := st.Schools[s.ID]; exists {
			return
		}
		st.Schools[s.ID] = &s
	}
}

// PublishEvent appends an event to the log. When expectLastSeq is non-nil the
// publish only succeeds if the stream has not moved past that sequence.
func (s *Store) PublishEvent(ctx context.Context, event Event, expectLastSeq *uint64) (*jetstream.PubAck, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Type, event.ID)
	opts := []jetstream.PublishOpt{jetstream.WithMsgID(event.Type + "." + event.Action + "." + event.ID)}
	if expectLastSeq != nil {
		opts = append(opts, jetstream.WithExpectLastSequence(*expectLastSeq))
	}

	logger.Debug("Publishing event: type=%s action=%s id=%s", event.Type, event.Action, event.ID)

	ack, err := s.js.Publish(ctx, subject, data, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}
	return ack, nil
}

// LoadState reads the whole school log and reduces it.
func (s *Store) LoadState(ctx context.Context) (*State, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: nats.SubjectForType(nats.EventTypeSchool),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	state := &State{Schools: make(map[string]*school.School)}

	const batchSize = 1000
	malformed := 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			if meta, err := msg.Metadata(); err == nil && meta.Sequence.Stream > state.LastSeq {
				state.LastSeq = meta.Sequence.Stream
			}

			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				malformed++
				_ = msg.Ack()
				continue
			}
			if event.ID == "" {
				event.ID = strconv.FormatUint(state.LastSeq, 10)
			}

			state.Apply(event)
			_ = msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	if malformed > 0 {
		logger.Warn("Skipped %d malformed events while loading catalog", malformed)
	}
	logger.Debug("Catalog loaded: %d schools, last seq %d", len(state.Schools), state.LastSeq)
	return state, nil
}

// Create appends a school creation event. Names are unique ignoring case.
func (s *Store) Create(ctx context.Context, sc school.School) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal school: %w", err)
	}

	for attempt := 1; ; attempt++ {
		state, err := s.LoadState(ctx)
		if err != nil {
			return err
		}
		for _, existing := range state.Schools {
			if school.SameName(existing.Name, sc.Name) {
				return school.ErrDuplicateName
			}
		}

		lastSeq := state.LastSeq
		_, err = s.PublishEvent(ctx, Event{
			ID:        sc.ID,
			Timestamp: sc.CreatedAt,
			Type:      nats.EventTypeSchool,
			Action:    ActionCreate,
			Data:      data,
		}, &lastSeq)
		if err == nil {
			return nil
		}
		if !isWrongLastSequence(err) || attempt == maxPublishAttempts {
			return err
		}
		logger.Debug("Catalog moved during create of %s, retrying", sc.ID)
	}
}

// Get returns the school with id.
func (s *Store) Get(ctx context.Context, id string) (school.School, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return school.School{}, err
	}
	sc, ok := state.Schools[id]
	if !ok {
		return school.School{}, school.ErrNotFound
	}
	return *sc, nil
}

// List returns all schools ordered by creation time.
func (s *Store) List(ctx context.Context) ([]school.School, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]school.School, 0, len(state.Schools))
	for _, sc := range state.Schools {
		out = append(out, *sc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// FindByName returns the school whose name matches ignoring case.
func (s *Store) FindByName(ctx context.Context, name string) (school.School, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return school.School{}, err
	}
	for _, sc := range state.Schools {
		if school.SameName(sc.Name, name) {
			return *sc, nil
		}
	}
	return school.School{}, school.ErrNotFound
}

func isWrongLastSequence(err error) bool {
	var apiErr *jetstream.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == errCodeWrongLastSequence
}
