package domain

import (
	"time"
)

// Gender is a client's registered gender.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

var validGenders = map[Gender]bool{
	GenderMale:   true,
	GenderFemale: true,
	GenderOther:  true,
}

// IsValid checks if the gender is a recognized value.
func (g Gender) IsValid() bool {
	return validGenders[g]
}

// Client represents a bank client who owns one or more accounts.
// Identification is unique across clients.
type Client struct {
	ID             string
	Name           string
	Gender         Gender
	Age            int
	Identification string
	Address        string
	Phone          string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
