package amqp

import (
	"encoding/json"
	"time"
)

// ChangeMessage announces that the transaction list changed. It carries the
// affected ids only; consumers reload the list if they need more.
type ChangeMessage struct {
	Kind      string    `json:"kind"`
	IDs       []string  `json:"ids"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage creates a change message stamped with the current time.
func NewChangeMessage(kind string, ids []string, count int) *ChangeMessage {
	if ids == nil {
		ids = []string{}
	}
	return &ChangeMessage{
		Kind:      kind,
		IDs:       ids,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON creates a message from JSON bytes
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
