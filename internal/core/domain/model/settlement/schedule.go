package settlement

import (
	"slices"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

// Schedule lists the weekdays on which batches are created for a shop.
type Schedule struct {
	shopID   kernel.ID
	weekdays []time.Weekday
}

func NewSchedule(shopID kernel.ID, weekdays []time.Weekday) (*Schedule, error) {
	if err := shopID.Validate(); err != nil {
		return nil, err
	}

	days := make([]time.Weekday, 0, len(weekdays))
	for _, d := range weekdays {
		if d < time.Sunday || d > time.Saturday {
			return nil, errs.NewValueIsOutOfRangeError("weekday", int(d), int(time.Sunday), int(time.Saturday))
		}
		if !slices.Contains(days, d) {
			days = append(days, d)
		}
	}
	slices.Sort(days)

	return &Schedule{shopID: shopID, weekdays: days}, nil
}

func (s *Schedule) ShopID() kernel.ID {
	return s.shopID
}

func (s *Schedule) Weekdays() []time.Weekday {
	return slices.Clone(s.weekdays)
}

// RunsOn reports whether batch creation is due on the given day.
func (s *Schedule) RunsOn(day time.Weekday) bool {
	return slices.Contains(s.weekdays, day)
}
