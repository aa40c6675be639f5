package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/chatkeeper/internal/models"
	"github.com/dmitrijs2005/chatkeeper/internal/storage"
)

// DeletedPlaceholder is the tombstone content written into a fully deleted
// message. The view filter checks for this exact literal, so the write path
// and the read path must share it.
const DeletedPlaceholder = "This message was deleted."

// chatKeyPrefix namespaces conversation lists inside the store.
const chatKeyPrefix = "chat_"

// MessageStore owns the ordered message list of each conversation.
//
// Every mutation re-reads the full persisted list, transforms it and writes
// it back under the store lock, so two logically distinct operations on the
// same key cannot lose each other's updates. Mutations targeting an absent
// message id are defined no-ops and skip the write-back entirely.
type MessageStore struct {
	store *storage.Store
	mu    sync.Mutex
}

func NewMessageStore(store *storage.Store) *MessageStore {
	return &MessageStore{store: store}
}

// Append adds msg to the end of the conversation and returns the updated
// stored list.
func (s *MessageStore) Append(ctx context.Context, conversationKey string, msg models.Message) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.readAll(ctx, conversationKey)
	list = append(list, msg)
	s.store.Set(ctx, chatKeyPrefix+conversationKey, list)
	return list
}

// Edit replaces the content of the message with the given id, marks it
// edited and refreshes its timestamp to the edit time. It is a silent no-op
// when the id is absent or newContent is blank.
func (s *MessageStore) Edit(ctx context.Context, conversationKey, messageID, newContent string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.readAll(ctx, conversationKey)
	if strings.TrimSpace(newContent) == "" {
		return list
	}

	changed := false
	for i := range list {
		if list[i].ID == messageID {
			list[i].Content = newContent
			list[i].Edited = true
			list[i].Timestamp = models.Timestamp(time.Now())
			changed = true
		}
	}
	if changed {
		s.store.Set(ctx, chatKeyPrefix+conversationKey, list)
	}
	return list
}

// SoftDelete hides the message with the given id from both parties: both
// deletion flags are set and the content is replaced by the tombstone.
// The record itself stays in storage. No-op when the id is absent.
func (s *MessageStore) SoftDelete(ctx context.Context, conversationKey, messageID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.readAll(ctx, conversationKey)
	changed := false
	for i := range list {
		if list[i].ID == messageID {
			list[i].DeletedBySender = true
			list[i].DeletedByReceiver = true
			list[i].Content = DeletedPlaceholder
			changed = true
		}
	}
	if changed {
		s.store.Set(ctx, chatKeyPrefix+conversationKey, list)
	}
	return list
}

// View returns the renderable sequence for the conversation: all messages
// in storage order except fully deleted ones. The filter is structural and
// identical for both parties.
func (s *MessageStore) View(ctx context.Context, conversationKey string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	var visible []models.Message
	for _, m := range s.readAll(ctx, conversationKey) {
		if m.DeletedBySender && m.DeletedByReceiver && m.Content == DeletedPlaceholder {
			continue
		}
		visible = append(visible, m)
	}
	return visible
}

// All returns the raw stored list, tombstones included.
func (s *MessageStore) All(ctx context.Context, conversationKey string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll(ctx, conversationKey)
}

func (s *MessageStore) readAll(ctx context.Context, conversationKey string) []models.Message {
	var list []models.Message
	s.store.Get(ctx, chatKeyPrefix+conversationKey, &list)
	return list
}
