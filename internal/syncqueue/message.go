package syncqueue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const TypeTransactionDeleted = "transaction.deleted"

// Message asks the remote copy to drop an entity deleted locally.
type Message struct {
	Type      string    `json:"type"`
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewDeleteMessage(id uuid.UUID) *Message {
	return &Message{
		Type:      TypeTransactionDeleted,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}
