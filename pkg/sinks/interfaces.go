package sinks

import "context"

// Sink delivers verdict events to a downstream target (SQS, SNS, HTTP, etc).
type Sink interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}
