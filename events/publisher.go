package events

import "context"

type Publisher interface {
	PublishProjection(ctx context.Context, msg *ProjectionComputed) error
	Close() error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishProjection(context.Context, *ProjectionComputed) error { return nil }
func (NoopPublisher) Close() error                                                 { return nil }
