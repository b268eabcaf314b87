package ports

import (
	"context"

	"parcel/internal/core/domain/model/notification"
)

// Notifier is the notification sink. Delivery is fire-and-forget and at-least-once:
// implementations log failures instead of returning them to the business flow.
type Notifier interface {
	Notify(ctx context.Context, n notification.Notification)
}
