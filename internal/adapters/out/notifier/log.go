package notifier

import (
	"context"
	"log/slog"

	"parcel/internal/core/domain/model/notification"
)

// LogNotifier writes notifications to the log instead of publishing them.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (l *LogNotifier) Notify(ctx context.Context, n notification.Notification) {
	l.logger.InfoContext(ctx, "notification",
		"recipient_id", n.RecipientID,
		"category", string(n.Category),
		"title", n.Title,
		"related_type", string(n.RelatedType),
		"related_id", n.RelatedID,
	)
}
