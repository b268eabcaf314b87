package kernel

import (
	"strings"

	"parcel/internal/pkg/errs"
)

var (
	ErrCityIsRequired = errs.NewValueIsRequiredError("city")
	ErrWardIsRequired = errs.NewValueIsRequiredError("ward")
)

// Zone is a coverage area: an administrative city code plus a ward code inside it.
// Codes are compared case-sensitively after trimming.
type Zone struct {
	city string
	ward string
}

func NewZone(city, ward string) (Zone, error) {
	city = strings.TrimSpace(city)
	ward = strings.TrimSpace(ward)

	if city == "" {
		return Zone{}, ErrCityIsRequired
	}
	if ward == "" {
		return Zone{}, ErrWardIsRequired
	}

	return Zone{city: city, ward: ward}, nil
}

// MustNewZone is intended for tests and static fixtures.
func MustNewZone(city, ward string) Zone {
	z, err := NewZone(city, ward)
	if err != nil {
		panic(err)
	}
	return z
}

func (z Zone) City() string {
	return z.city
}

func (z Zone) Ward() string {
	return z.ward
}

func (z Zone) IsZero() bool {
	return z.city == "" && z.ward == ""
}

func (z Zone) Validate() error {
	if z.city == "" {
		return ErrCityIsRequired
	}
	if z.ward == "" {
		return ErrWardIsRequired
	}
	return nil
}

func (z Zone) Equal(other Zone) bool {
	return z.city == other.city && z.ward == other.ward
}

func (z Zone) SameCity(other Zone) bool {
	return z.city == other.city
}

func (z Zone) String() string {
	return z.city + "/" + z.ward
}
