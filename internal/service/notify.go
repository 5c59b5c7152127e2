package service

import (
	"context"
	"log/slog"

	"estately/internal/middleware"
	"estately/internal/notifications"
)

// OwnerNotifier delivers events to a single user. Delivery is best effort.
type OwnerNotifier interface {
	PublishUser(ctx context.Context, userID uint, ev notifications.Event) error
}

func notifyOwner(ctx context.Context, n OwnerNotifier, ownerID uint, ev notifications.Event) {
	if n == nil {
		return
	}
	if err := n.PublishUser(ctx, ownerID, ev); err != nil {
		middleware.Logger.WarnContext(ctx, "owner notification failed",
			slog.Uint64("owner_id", uint64(ownerID)),
			slog.String("type", ev.Type),
			slog.String("error", err.Error()),
		)
	}
}
