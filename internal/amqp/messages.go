package amqp

import (
	"encoding/json"
	"time"
)

// Message actions. Upsert tells the worker to fetch the entry and append
// it to the sheet; delete tells it to clear the exported row.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// EntrySyncMessage is a lightweight pointer to an entry that needs
// exporting. It carries only the ID and version; the worker fetches the
// full entry from the database.
type EntrySyncMessage struct {
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntrySyncMessage creates an upsert message for the given entry.
func NewEntrySyncMessage(id, version int64) *EntrySyncMessage {
	return &EntrySyncMessage{
		ID:        id,
		Version:   version,
		Action:    ActionUpsert,
		Timestamp: time.Now(),
	}
}

// NewEntryDeleteMessage creates a delete message for the given entry.
func NewEntryDeleteMessage(id int64) *EntrySyncMessage {
	return &EntrySyncMessage{
		ID:        id,
		Action:    ActionDelete,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *EntrySyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntrySyncMessageFromJSON creates a message from JSON bytes. Messages
// published before the action field existed default to upsert.
func EntrySyncMessageFromJSON(data []byte) (*EntrySyncMessage, error) {
	var msg EntrySyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Action == "" {
		msg.Action = ActionUpsert
	}
	return &msg, nil
}
