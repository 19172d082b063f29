package domain

import "time"

// Prize is a reward item belonging to exactly one shop owner.
type Prize struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// PrizeRequest is the input for adding a prize. Both name and image are
// required on creation; updates may keep the existing image.
type PrizeRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	ImageURL string `json:"imageUrl" validate:"required,max=500"`
}
