package event

import (
	"context"
	"errors"
	"log"
)

// Listener dispatches consumed changes to a handler on its own goroutine
type Listener struct {
	publisher *Publisher
	handler   func(*Change)
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewListener(publisher *Publisher, handler func(*Change)) *Listener {
	return &Listener{publisher: publisher, handler: handler}
}

// Start begins consuming until Stop is called
func (l *Listener) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})
	go func() {
		defer close(l.done)
		for {
			change, err := l.publisher.Consume(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				log.Printf("failed to consume change: %v", err)
				continue
			}
			if change != nil {
				l.handler(change)
			}
		}
	}()
}

// Stop cancels consumption and waits for the goroutine to exit
func (l *Listener) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
}
