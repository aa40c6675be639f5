package models

import (
	"errors"
	"time"
)

// ErrSameParticipant is returned when a message would be addressed to its
// own sender.
var ErrSameParticipant = errors.New("sender and receiver must differ")

// Message is one chat message as stored in a conversation list.
//
// The two deletion flags are always set together: deletion is symmetric,
// hiding the message from both parties at once. A message with both flags
// set carries the tombstone placeholder as its content.
type Message struct {
	ID                string `json:"id"`
	SenderID          string `json:"senderId"`
	ReceiverID        string `json:"receiverId"`
	Content           string `json:"content"`
	Timestamp         string `json:"timestamp"`
	Edited            bool   `json:"edited,omitempty"`
	DeletedBySender   bool   `json:"deletedBySender"`
	DeletedByReceiver bool   `json:"deletedByReceiver"`
}

// NewMessage builds a freshly sent message: new id, current timestamp,
// not edited, not deleted.
func NewMessage(senderID, receiverID, content string) (Message, error) {
	if senderID == receiverID {
		return Message{}, ErrSameParticipant
	}
	return Message{
		ID:         NewID("msg"),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  Timestamp(time.Now()),
	}, nil
}
