package domain

import (
	"fmt"
	"strings"
	"time"
)

type Donor struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	BloodType             BloodType  `json:"blood_type"`
	Location              string     `json:"location"`
	ContactNumber         string     `json:"contact_number"`
	LastDonation          *time.Time `json:"last_donation,omitempty"`
	TotalDonations        int        `json:"total_donations"`
	AvailableForEmergency bool       `json:"available_for_emergency"`
	CreatedAt             time.Time  `json:"created_at"`
}

// Validate checks the donor draft before it is written. The blood type
// check runs first so an unset type gets its dedicated error.
func (d *Donor) Validate() error {
	if strings.TrimSpace(string(d.BloodType)) == "" {
		return ErrMissingBloodType
	}
	if !ValidBloodType(d.BloodType) {
		return ErrInvalidBloodType
	}
	for _, f := range []struct{ name, value string }{
		{"name", d.Name},
		{"location", d.Location},
		{"contact_number", d.ContactNumber},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if d.TotalDonations < 0 {
		return fmt.Errorf("%w: total_donations must not be negative", ErrInvalidField)
	}
	return nil
}
