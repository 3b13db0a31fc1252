package domain

// OwnerSummary is the slice of the owning user exposed alongside a listing.
type OwnerSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Accommodation is a lodging listing created by a user.
type Accommodation struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Price       int          `json:"price"`
	Description *string      `json:"description"`
	OwnerID     int64        `json:"owner_id"`
	Owner       OwnerSummary `json:"owner"`
}

// AccommodationFields is the set of mutable listing fields. Create and update
// both go through ApplyTo so the writable surface is fixed at compile time.
type AccommodationFields struct {
	Name        string
	Location    string
	Price       int
	Description *string
}

// ApplyTo copies the mutable fields onto a.
func (f AccommodationFields) ApplyTo(a *Accommodation) {
	a.Name = f.Name
	a.Location = f.Location
	a.Price = f.Price
	a.Description = f.Description
}
