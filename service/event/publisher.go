package event

import (
	"context"
	"log"

	"github.com/viant/versionary/service/messaging"
)

// Publisher pushes changes to a queue
type Publisher struct {
	queue messaging.Queue[Change]
}

func NewPublisher(queue messaging.Queue[Change]) *Publisher {
	return &Publisher{queue: queue}
}

// Publish sends change; a nil publisher is a no-op. Delivery failures are
// logged, the change itself is already committed.
func (p *Publisher) Publish(ctx context.Context, change *Change) {
	if p == nil || p.queue == nil {
		return
	}
	if err := p.queue.Publish(ctx, change); err != nil {
		log.Printf("failed to publish %v %v: %v", change.Type, change.Locator, err)
	}
}

// Consume returns the next change, acknowledging its message
func (p *Publisher) Consume(ctx context.Context) (*Change, error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
