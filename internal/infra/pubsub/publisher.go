package pubsub

import (
	"context"
	"io"
)

const TopicReminderDue = "reminder.due"

type Publisher interface {
	PublishReminderDue(ctx context.Context, event *ReminderDueEvent) error
	io.Closer
}
