package application

import "context"

// Publisher puts a JSON message on the notification queue.
// *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
