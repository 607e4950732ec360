package events

import (
	"context"
	"errors"
	"testing"
)

func TestPublishContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var seen []string
	d.Subscribe(EventUsersBlocked, func(context.Context, Event) error {
		seen = append(seen, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventUsersBlocked, func(context.Context, Event) error {
		seen = append(seen, "second")
		return nil
	})

	ev := New(EventUsersBlocked, Actor{OperatorID: "op"}, "user", []string{"1"}, nil)
	if err := d.Publish(context.Background(), ev); err != nil {
		t.Fatalf("publish must not fail: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected both handlers, got %v", seen)
	}
	if ev.ID == "" || ev.Timestamp.IsZero() {
		t.Fatalf("event not stamped: %+v", ev)
	}
}

func TestSubscribeAll(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	count := 0
	SubscribeAll(d, func(context.Context, Event) error { count++; return nil })
	for _, typ := range AllTypes {
		_ = d.Publish(context.Background(), Event{Type: typ})
	}
	if count != len(AllTypes) {
		t.Fatalf("expected %d deliveries, got %d", len(AllTypes), count)
	}
}
