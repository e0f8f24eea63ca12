package pubsub

import "time"

// ReminderDueEvent is the payload handed to the push/email transport when a
// scheduled slot fires. The downstream consumer owns actual delivery.
type ReminderDueEvent struct {
	UserID    string    `json:"user_id"`
	NoteID    string    `json:"note_id"`
	Text      string    `json:"text"`
	Source    string    `json:"source,omitempty"`
	SlotIndex int       `json:"slot_index"`
	FiredAt   time.Time `json:"fired_at"`
}
