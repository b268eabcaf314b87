package shipper

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
)

// Profile is the concrete working identity of a shipper account, optionally tied to the
// office the shipper operates from. One account may hold several profiles.
type Profile struct {
	id        kernel.ID
	accountID kernel.ID
	officeID  *kernel.ID
}

func RestoreProfile(id, accountID kernel.ID, officeID *kernel.ID) (*Profile, error) {
	if err := errors.Join(id.Validate(), accountID.Validate()); err != nil {
		return nil, err
	}
	return &Profile{id: id, accountID: accountID, officeID: officeID}, nil
}

func (p *Profile) ID() kernel.ID {
	return p.id
}

func (p *Profile) AccountID() kernel.ID {
	return p.accountID
}

func (p *Profile) OfficeID() *kernel.ID {
	return p.officeID
}

// WorksAt reports whether the profile is tied to the given office.
func (p *Profile) WorksAt(officeID kernel.ID) bool {
	return p.officeID != nil && *p.officeID == officeID
}
