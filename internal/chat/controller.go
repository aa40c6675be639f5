package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/chatkeeper/internal/common"
	"github.com/dmitrijs2005/chatkeeper/internal/logging"
	"github.com/dmitrijs2005/chatkeeper/internal/models"
	"github.com/dmitrijs2005/chatkeeper/internal/session"
)

// Controller binds the session manager, conversation addressing and the
// message store into the operations a UI invokes. It holds the selected
// peer and the single-slot "message being edited" pointer; every operation
// returns the refreshed renderable view so the UI can re-render from it.
type Controller struct {
	sessions *session.Manager
	messages *MessageStore
	log      logging.Logger

	mu        sync.Mutex
	peer      *models.Session
	editingID string
}

func NewController(sessions *session.Manager, messages *MessageStore, log logging.Logger) *Controller {
	return &Controller{
		sessions: sessions,
		messages: messages,
		log:      log.With("component", "chat"),
	}
}

// SelectPeer makes peer the open conversation, discarding any in-progress
// edit, and returns its current view.
func (c *Controller) SelectPeer(ctx context.Context, peer models.Session) ([]models.Message, error) {
	cur, ok := c.sessions.Current()
	if !ok {
		return nil, common.ErrNoActiveSession
	}

	c.mu.Lock()
	c.peer = &peer
	c.editingID = ""
	c.mu.Unlock()

	return c.messages.View(ctx, ConversationKey(cur.ID, peer.ID)), nil
}

// Peer returns the selected conversation partner, if any.
func (c *Controller) Peer() (models.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.peer == nil {
		return models.Session{}, false
	}
	return *c.peer, true
}

// View returns the current renderable view, or nil when no conversation is
// open.
func (c *Controller) View(ctx context.Context) []models.Message {
	key, ok := c.target()
	if !ok {
		return nil
	}
	return c.messages.View(ctx, key)
}

// Send appends a message with the given text to the open conversation.
// A blank text, a missing session or no selected peer make it a no-op.
func (c *Controller) Send(ctx context.Context, text string) ([]models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return c.View(ctx), nil
	}
	cur, ok := c.sessions.Current()
	if !ok {
		return nil, nil
	}
	peer, ok := c.Peer()
	if !ok {
		return nil, nil
	}

	msg, err := models.NewMessage(cur.ID, peer.ID, text)
	if err != nil {
		return nil, err
	}

	key := ConversationKey(cur.ID, peer.ID)
	c.messages.Append(ctx, key, msg)
	c.log.Debug(ctx, "message sent", "id", msg.ID)
	return c.messages.View(ctx, key), nil
}

// RequestEdit points the edit slot at the given message. The UI offers the
// edit control only on the session's own messages.
func (c *Controller) RequestEdit(messageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editingID = messageID
}

// CancelEdit discards the edit slot.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editingID = ""
}

// EditingID returns the id in the edit slot, empty when nothing is being
// edited.
func (c *Controller) EditingID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// SaveEdit applies newText to the message in the edit slot and clears the
// slot. With nothing being edited it only returns the current view.
func (c *Controller) SaveEdit(ctx context.Context, newText string) ([]models.Message, error) {
	key, ok := c.target()
	if !ok {
		return nil, nil
	}

	c.mu.Lock()
	id := c.editingID
	c.editingID = ""
	c.mu.Unlock()

	if id == "" {
		return c.messages.View(ctx, key), nil
	}

	c.messages.Edit(ctx, key, id, newText)
	return c.messages.View(ctx, key), nil
}

// DeleteMessage removes the message from both parties' views.
func (c *Controller) DeleteMessage(ctx context.Context, messageID string) ([]models.Message, error) {
	key, ok := c.target()
	if !ok {
		return nil, nil
	}
	c.messages.SoftDelete(ctx, key, messageID)
	return c.messages.View(ctx, key), nil
}

// target resolves the storage key of the open conversation.
func (c *Controller) target() (string, bool) {
	cur, ok := c.sessions.Current()
	if !ok {
		return "", false
	}
	peer, ok := c.Peer()
	if !ok {
		return "", false
	}
	return ConversationKey(cur.ID, peer.ID), true
}
