package models

// Household represents a group of users sharing a home and its expenses.
type Household struct {
	// ID is the unique identifier for the household (UUID format).
	ID string

	// Name is the display name (e.g., "Maple Street Flat").
	Name string

	// CreatedBy is the user ID of the member who created the household.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the household was created.
	CreatedAt int64

	// Members is populated by reads that join household_members.
	Members []Member
}

// Member is a user's membership in a household.
type Member struct {
	UserID   string
	Name     string
	Email    string
	JoinedAt int64
}

// HasMember reports whether userID is among the loaded members.
func (h *Household) HasMember(userID string) bool {
	for _, m := range h.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
