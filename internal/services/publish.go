package services

import (
	"context"

	"beerservice/internal/events"
	applog "beerservice/internal/log"
)

// publish never fails the caller; a broker outage only costs the notification.
func publish(ctx context.Context, p events.Publisher, typ, key string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, events.New(typ, key, payload)); err != nil {
		applog.Error(nil, "event.publish.fail", err, map[string]any{"type": typ, "key": key})
	}
}
