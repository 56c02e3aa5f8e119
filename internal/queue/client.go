package queue

import (
	"context"

	"lettergen/internal/document"
)

// Client sends letter generation requests to a queue backend.
type Client interface {
	Send(ctx context.Context, req document.Request) error
}
