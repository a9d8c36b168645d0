package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies WebSocket messages in both directions
type MessageType string

const (
	// Client → Server
	MessageTypeAction  MessageType = "action"
	MessageTypeDeal    MessageType = "deal"
	MessageTypeAdvance MessageType = "advance"
	MessageTypeStep    MessageType = "step"

	// Server → Client
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// ErrorData is sent when a client message could not be handled
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
