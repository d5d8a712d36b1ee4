// Package domain contains the persisted record shapes of the platform and
// their validators. Records are created and mutated by the persistence
// layer; this package only validates shapes flowing to and from it.
package domain

import (
	"time"
	"unicode/utf8"
)

type MessageKind string

const (
	MessageText   MessageKind = "text"
	MessageImage  MessageKind = "image"
	MessageSystem MessageKind = "system"
)

func IsMessageKind(k MessageKind) bool {
	switch k {
	case MessageText, MessageImage, MessageSystem:
		return true
	}
	return false
}

// MaxContentLength bounds chat message content, in characters.
const MaxContentLength = 5000

type ChatMessage struct {
	ID         string
	SenderID   string
	ReceiverID string
	Content    string
	Kind       MessageKind
	CreatedAt  time.Time
	ReadAt     *time.Time
}

func ValidateChatMessage(m ChatMessage) Violations {
	var vs Violations
	if !IsIdentifier(m.SenderID) {
		vs.Add("sender_id", "must be a well-formed identifier")
	}
	if !IsIdentifier(m.ReceiverID) {
		vs.Add("receiver_id", "must be a well-formed identifier")
	}
	if m.SenderID == m.ReceiverID {
		vs.Add("receiver_id", "users cannot message themselves")
	}
	if m.Content == "" {
		vs.Add("content", "must not be empty")
	} else if utf8.RuneCountInString(m.Content) > MaxContentLength {
		vs.Add("content", "content exceeds maximum length of 5000 characters")
	}
	if !IsMessageKind(m.Kind) {
		vs.Add("message_kind", "must be one of text, image, system")
	}
	return vs
}
