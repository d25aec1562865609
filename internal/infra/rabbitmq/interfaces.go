package rabbitmq

import "context"

type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

var _ PublisherInterface = (*Publisher)(nil)