// Package store keeps installation state (accounts, enabled apps, setup
// completion) as an append-only event log in JetStream.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/nats"
	"github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/crypto/bcrypt"
)

var log = logger.Named("store")

// Event is one entry in the installation event log.
type Event struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      string          `json:"type"`   // account, app, setup
	Action    string          `json:"action"` // create, enable, disable, complete
	Meta      json.RawMessage `json:"meta,omitempty"`
	Data      string          `json:"data"`
}

// Store publishes and replays installation events.
type Store struct {
	js       jetstream.JetStream
	stream   jetstream.Stream
	hashCost int

	// Owned resources when created by Open
	nc *natsgo.Conn
	ns *server.Server
}

// Option configures a Store.
type Option func(*Store)

// WithHashCost sets the bcrypt cost for new passwords. Tests use
// bcrypt.MinCost to stay fast.
func WithHashCost(cost int) Option {
	return func(s *Store) { s.hashCost = cost }
}

// NewStore creates a Store over an existing JetStream context and stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream, opts ...Option) *Store {
	s := &Store{
		js:       js,
		stream:   stream,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts an embedded server under dataDir and returns a Store that owns it.
// Close releases the server and connection.
func Open(ctx context.Context, dataDir string, opts ...Option) (*Store, error) {
	storeDir := filepath.Join(dataDir, "jetstream")
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	ns, err := nats.StartEmbeddedNATS(storeDir)
	if err != nil {
		return nil, fmt.Errorf("starting event store: %w", err)
	}

	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("connecting to event store: %w", err)
	}

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		_ = nats.Shutdown(nc, ns)
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		_ = nats.Shutdown(nc, ns)
		return nil, fmt.Errorf("setting up stream: %w", err)
	}

	s := NewStore(js, stream, opts...)
	s.nc = nc
	s.ns = ns
	return s, nil
}

// Close shuts down resources created by Open. It is a no-op for stores
// created with NewStore.
func (s *Store) Close() error {
	if s.nc == nil && s.ns == nil {
		return nil
	}
	err := nats.Shutdown(s.nc, s.ns)
	s.nc, s.ns = nil, nil
	return err
}

// PublishEvent appends an event to the log.
func (s *Store) PublishEvent(ctx context.Context, event Event) (*jetstream.PubAck, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Type)
	log.Debug("Publishing event: type=%s action=%s", event.Type, event.Action)

	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		log.Error("Failed to publish event to subject %s: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	return ack, nil
}

// State is the installation state reduced from the event log.
type State struct {
	Accounts map[string]*Account `json:"accounts"` // Account ID -> Account
	Apps     map[string]bool     `json:"apps"`     // App slug -> enabled
	Complete bool                `json:"complete"`
}

// Account is a user account created during setup.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoleAdmin marks an administrator account.
const RoleAdmin = "ADMIN"

func newState() *State {
	return &State{
		Accounts: make(map[string]*Account),
		Apps:     make(map[string]bool),
	}
}

// Apply reduces one event into the state.
func (st *State) Apply(event Event) {
	switch event.Type {
	case nats.EventTypeAccount:
		if event.Action != "create" {
			return
		}
		var acct Account
		if err := json.Unmarshal(event.Meta, &acct); err != nil {
			log.Warn("Skipping account event %s with bad meta: %v", event.ID, err)
			return
		}
		acct.ID = event.ID
		acct.CreatedAt = event.Timestamp
		st.Accounts[acct.ID] = &acct

	case nats.EventTypeApp:
		switch event.Action {
		case "enable":
			st.Apps[event.Data] = true
		case "disable":
			delete(st.Apps, event.Data)
		}

	case nats.EventTypeSetup:
		if event.Action == "complete" {
			st.Complete = true
		}
	}
}

// AdminCount returns the number of administrator accounts.
func (st *State) AdminCount() int {
	n := 0
	for _, acct := range st.Accounts {
		if acct.Role == RoleAdmin {
			n++
		}
	}
	return n
}

// LoadState replays the whole event log.
func (s *Store) LoadState(ctx context.Context) (*State, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: nats.SubjectAll,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	return replay(consumer.FetchNoWait), nil
}

// replay folds fetched batches into a fresh state until a short batch or a
// fetch error ends the log.
func replay(fetch func(batch int) (jetstream.MessageBatch, error)) *State {
	state := newState()

	const batchSize = 1000
	total := 0
	for {
		msgs, err := fetch(batchSize)
		if err != nil {
			log.Debug("Finished reading events after %d (fetch: %v)", total, err)
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			total++

			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				meta, _ := msg.Metadata()
				if meta != nil {
					log.Warn("Skipping malformed event (seq=%d): %v", meta.Sequence.Stream, err)
				}
				_ = msg.Ack()
				continue
			}

			if event.ID == "" {
				if meta, err := msg.Metadata(); err == nil {
					event.ID = fmt.Sprintf("%d", meta.Sequence.Stream)
				}
			}

			state.Apply(event)
			_ = msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	log.Debug("State loaded: %d events, %d accounts, %d apps", total, len(state.Accounts), len(state.Apps))
	return state
}

// MarkComplete records that setup finished.
func (s *Store) MarkComplete(ctx context.Context) error {
	_, err := s.PublishEvent(ctx, Event{
		Type:   nats.EventTypeSetup,
		Action: "complete",
		Data:   "Setup completed",
	})
	if err != nil {
		return fmt.Errorf("failed to record setup completion: %w", err)
	}
	return nil
}
