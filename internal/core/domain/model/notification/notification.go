// Package notification describes the messages the core emits. Delivery belongs to the
// notification sink adapter; this package only shapes what is sent and to whom.
package notification

import (
	"errors"
	"strings"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

// Category groups notifications in the recipient's inbox.
type Category string

const (
	CategoryOrder      Category = "ORDER"
	CategorySettlement Category = "SETTLEMENT"
	CategorySystem     Category = "SYSTEM"
)

// RelatedType names the kind of entity RelatedID points at.
type RelatedType string

const (
	RelatedOrder           RelatedType = "ORDER"
	RelatedSettlementBatch RelatedType = "SETTLEMENT_BATCH"
)

// Notification is one message addressed to one account.
type Notification struct {
	RecipientID kernel.ID
	Title       string
	Body        string
	Category    Category
	RelatedType RelatedType
	RelatedID   kernel.ID
}

func New(
	recipientID kernel.ID, title, body string, category Category, relatedType RelatedType, relatedID kernel.ID,
) (Notification, error) {
	var titleErr error
	if strings.TrimSpace(title) == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if err := errors.Join(recipientID.Validate(), relatedID.Validate(), titleErr); err != nil {
		return Notification{}, err
	}

	return Notification{
		RecipientID: recipientID,
		Title:       title,
		Body:        body,
		Category:    category,
		RelatedType: relatedType,
		RelatedID:   relatedID,
	}, nil
}
