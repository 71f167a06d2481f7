// Package buildqueue feeds the static-site build trigger. Events are
// consumed asynchronously by an external build runner.
package buildqueue

import (
	"context"
	"fmt"
	"strings"
)

// Event is the kind of change a build consumer must react to.
type Event string

const (
	EventUpdate Event = "UPDATE"
	EventDelete Event = "DELETE"
)

func ParseEvent(s string) (Event, error) {
	ev := Event(strings.ToUpper(s))
	switch ev {
	case EventUpdate, EventDelete:
		return ev, nil
	default:
		return "", fmt.Errorf("invalid build event: %q", s)
	}
}

// Message is a single build-queue entry. PublishedAt is set for UPDATE
// events only.
type Message struct {
	Event       Event  `json:"event"`
	Collection  string `json:"eventCollection"`
	ItemID      string `json:"eventItemId"`
	PublishedAt int64  `json:"publishedAt,omitempty"`
}

// Queue is the build-trigger collaborator.
type Queue interface {
	Enqueue(ctx context.Context, msg Message) error
}
