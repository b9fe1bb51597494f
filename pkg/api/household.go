package api

type Household struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CreatedBy string   `json:"createdBy"`
	CreatedAt int64    `json:"createdAt"`
	Members   []Member `json:"members,omitempty"`
}

type Member struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	JoinedAt int64  `json:"joinedAt"`
}

type CreateHouseholdRequest struct {
	Name string `json:"name"`
}

type CreateHouseholdResponse struct {
	Household *Household `json:"household"`
}

type GetHouseholdRequest struct {
	HouseholdID string `json:"householdId"`
}

type GetHouseholdResponse struct {
	Household *Household `json:"household"`
}

type ListHouseholdsRequest struct{}

type ListHouseholdsResponse struct {
	Households []*Household `json:"households"`
}

// AddMemberRequest invites an existing account, looked up by email.
type AddMemberRequest struct {
	HouseholdID string `json:"householdId"`
	Email       string `json:"email"`
}

type AddMemberResponse struct {
	Household *Household `json:"household"`
}

type RemoveMemberRequest struct {
	HouseholdID string `json:"householdId"`
	UserID      string `json:"userId"`
}

type RemoveMemberResponse struct{}
