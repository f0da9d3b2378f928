package users

import "time"

// FarmDetails captures the caller's farm profile used to default
// advisory inputs.
type FarmDetails struct {
	SoilType     string   `json:"soilType,omitempty"`
	FarmSizeHa   float64  `json:"farmSizeHa,omitempty"`
	Location     string   `json:"location,omitempty"`
	PrimaryCrops []string `json:"primaryCrops,omitempty"`
}

type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FullName     string      `json:"fullName,omitempty"`
	IsAdmin      bool        `json:"isAdmin"`
	Farm         FarmDetails `json:"farm"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
