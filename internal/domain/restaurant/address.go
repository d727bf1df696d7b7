package restaurant

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain"
)

// Address is an immutable postal address. All fields are required.
type Address struct {
	street     string
	number     string
	city       string
	state      string
	postalCode string
}

// NewAddress validates and creates an Address. Construction is all-or-nothing.
func NewAddress(street, number, city, state, postalCode string) (Address, error) {
	fields := []struct{ name, value string }{
		{"street", street},
		{"number", number},
		{"city", city},
		{"state", state},
		{"postal code", postalCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return Address{}, fmt.Errorf("%s is required: %w", f.name, domain.ErrInvalidAddress)
		}
	}
	return Address{street: street, number: number, city: city, state: state, postalCode: postalCode}, nil
}

// ReconstructAddress creates an Address without validation (storage hydration).
func ReconstructAddress(street, number, city, state, postalCode string) Address {
	return Address{street: street, number: number, city: city, state: state, postalCode: postalCode}
}

func (a Address) Street() string     { return a.street }
func (a Address) Number() string     { return a.number }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) PostalCode() string { return a.postalCode }

// IsZero reports whether no address has been assigned.
func (a Address) IsZero() bool { return a == Address{} }
