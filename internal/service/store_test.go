package service

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"messaging-back/internal/apperrors"
	"messaging-back/internal/model"
	"messaging-back/internal/msg/outbox"
	"messaging-back/internal/repository"
)

// memStore is an in-memory stand-in for every chat repository plus the transaction manager.
// WithTx snapshots the state and restores it when fn fails.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	clock time.Time

	conversations map[uuid.UUID]model.Conversation
	participants  map[uuid.UUID][]model.Participant
	meta          map[uuid.UUID]model.ConversationMeta
	messages      []model.Message
	receipts      map[[2]uuid.UUID]model.Receipt
	events        []outbox.Payload

	failAppend error
}

type snapshot struct {
	conversations map[uuid.UUID]model.Conversation
	participants  map[uuid.UUID][]model.Participant
	meta          map[uuid.UUID]model.ConversationMeta
	messages      []model.Message
	receipts      map[[2]uuid.UUID]model.Receipt
	events        []outbox.Payload
}

func newMemStore() *memStore {
	return &memStore{
		clock:         time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		conversations: make(map[uuid.UUID]model.Conversation),
		participants:  make(map[uuid.UUID][]model.Participant),
		meta:          make(map[uuid.UUID]model.ConversationMeta),
		receipts:      make(map[[2]uuid.UUID]model.Receipt),
	}
}

// tick must be called with mu held.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *memStore) WithTx(ctx context.Context, fn func(ctx context.Context, ext repository.RepoExtension) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := snapshot{
		conversations: maps.Clone(s.conversations),
		participants:  maps.Clone(s.participants),
		meta:          maps.Clone(s.meta),
		messages:      slices.Clone(s.messages),
		receipts:      maps.Clone(s.receipts),
		events:        slices.Clone(s.events),
	}
	s.mu.Unlock()

	if err := fn(ctx, nil); err != nil {
		s.mu.Lock()
		s.conversations = snap.conversations
		s.participants = snap.participants
		s.meta = snap.meta
		s.messages = snap.messages
		s.receipts = snap.receipts
		s.events = snap.events
		s.mu.Unlock()

		return err
	}

	return nil
}

func (s *memStore) InsertConversation(_ context.Context, _ repository.RepoExtension, conversation *model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation.CreatedAt = s.tick()
	s.conversations[conversation.ID] = model.Conversation{
		ID:        conversation.ID,
		ServiceID: conversation.ServiceID,
		CreatedAt: conversation.CreatedAt,
	}

	return nil
}

func (s *memStore) InsertParticipant(_ context.Context, _ repository.RepoExtension, participant *model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant.JoinedAt = s.clock
	s.participants[participant.ConversationID] = append(s.participants[participant.ConversationID], *participant)

	return nil
}

func (s *memStore) EnsureMeta(_ context.Context, _ repository.RepoExtension, conversationID uuid.UUID, lastMessageAt time.Time) (*model.ConversationMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, ok := s.meta[conversationID]
	if !ok {
		meta = model.ConversationMeta{ConversationID: conversationID, LastMessageAt: lastMessageAt}
		s.meta[conversationID] = meta
	}

	return &meta, nil
}

func (s *memStore) UpsertMeta(_ context.Context, _ repository.RepoExtension, meta *model.ConversationMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.meta[meta.ConversationID]
	if !ok || !current.LastMessageAt.After(meta.LastMessageAt) {
		s.meta[meta.ConversationID] = *meta
	}

	return nil
}

func (s *memStore) SelectConversation(_ context.Context, _ repository.RepoExtension, conversationID uuid.UUID) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[conversationID]
	if !ok {
		return nil, apperrors.ErrConversationNotFound
	}

	return s.hydrate(c), nil
}

func (s *memStore) SelectUserConversations(_ context.Context, _ repository.RepoExtension, userID uuid.UUID) ([]model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Conversation, 0)

	for id, ps := range s.participants {
		if slices.ContainsFunc(ps, func(p model.Participant) bool { return p.UserID == userID }) {
			out = append(out, *s.hydrate(s.conversations[id]))
		}
	}

	slices.SortFunc(out, func(a, b model.Conversation) int {
		if c := b.Meta.LastMessageAt.Compare(a.Meta.LastMessageAt); c != 0 {
			return c
		}

		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out, nil
}

func (s *memStore) SelectParticipantIDs(_ context.Context, _ repository.RepoExtension, conversationID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ps := s.participants[conversationID]
	if len(ps) == 0 {
		return nil, apperrors.ErrConversationNotFound
	}

	ids := make([]uuid.UUID, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.UserID)
	}

	return ids, nil
}

func (s *memStore) InsertMessage(_ context.Context, _ repository.RepoExtension, message *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message.CreatedAt = s.tick()
	s.messages = append(s.messages, *message)

	return nil
}

func (s *memStore) SelectMessage(_ context.Context, _ repository.RepoExtension, messageID uuid.UUID) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.messages {
		if m.ID == messageID {
			return &m, nil
		}
	}

	return nil, apperrors.ErrMessageNotFound
}

func (s *memStore) SelectMessages(_ context.Context, _ repository.RepoExtension, conversationID uuid.UUID, page model.MessagePage) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cursor *model.Message

	if page.Before != nil {
		for _, m := range s.messages {
			if m.ID == *page.Before {
				cursor = &m
			}
		}
	}

	out := make([]model.Message, 0)

	for _, m := range s.messages {
		if m.ConversationID != conversationID {
			continue
		}

		if cursor != nil && !m.CreatedAt.Before(cursor.CreatedAt) {
			continue
		}

		out = append(out, m)
	}

	if len(out) > page.Limit {
		out = out[len(out)-page.Limit:]
	}

	return out, nil
}

func (s *memStore) UpsertReceipt(_ context.Context, _ repository.RepoExtension, receipt *model.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.receipts[[2]uuid.UUID{receipt.MessageID, receipt.UserID}] = *receipt

	return nil
}

func (s *memStore) SelectReceipts(_ context.Context, _ repository.RepoExtension, messageID uuid.UUID) ([]model.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Receipt, 0)

	for key, r := range s.receipts {
		if key[0] == messageID {
			out = append(out, r)
		}
	}

	return out, nil
}

func (s *memStore) Append(_ context.Context, _ repository.RepoExtension, payload outbox.Payload, idempotencyKey *string) (*model.OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAppend != nil {
		return nil, s.failAppend
	}

	data, err := outbox.Encode(payload)
	if err != nil {
		return nil, err
	}

	s.events = append(s.events, payload)

	return &model.OutboxEvent{
		ID:             uuid.New(),
		Topic:          payload.Topic(),
		Payload:        data,
		Status:         model.OutboxStatusPending,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// hydrate must be called with mu held.
func (s *memStore) hydrate(c model.Conversation) *model.Conversation {
	c.Participants = slices.Clone(s.participants[c.ID])

	if meta, ok := s.meta[c.ID]; ok {
		c.Meta = &meta
	}

	return &c
}

func (s *memStore) messageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.messages)
}

func (s *memStore) eventsOf(topic string) []outbox.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]outbox.Payload, 0)

	for _, e := range s.events {
		if e.Topic() == topic {
			out = append(out, e)
		}
	}

	return out
}

func (s *memStore) metaOf(conversationID uuid.UUID) (model.ConversationMeta, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meta[conversationID]

	return m, ok
}
