package domain

import "time"

// Headcounts is the party composition a registrant declares. Dine-in meal
// quantities are validated against these counts per person category.
type Headcounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
	Elders   int `json:"elders"`
}

// ForSize returns the headcount for a product size category. Infants have no
// matching product size and never constrain meal selection.
func (h Headcounts) ForSize(size ProductSize) int {
	switch size {
	case SizeAdult:
		return h.Adults
	case SizeChildren:
		return h.Children
	case SizeElder:
		return h.Elders
	}
	return 0
}

// Total returns the total number of people in the party.
func (h Headcounts) Total() int {
	return h.Adults + h.Children + h.Infants + h.Elders
}

// Guest represents a non-member registrant sponsored by a member.
// swagger:model Guest
type Guest struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	SponsorMemberID string     `json:"sponsor_member_id"`
	Headcounts      Headcounts `json:"headcounts"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Registrant is a tagged union: exactly one of Guest or MemberID is set.
// Modeling it structurally keeps "guest xor member" out of runtime checks
// in the order path.
type Registrant struct {
	Guest    *Guest `json:"guest,omitempty"`
	MemberID string `json:"member_id,omitempty"`
}

// GuestRegistrant returns a Registrant for the guest flow.
func GuestRegistrant(g *Guest) Registrant {
	return Registrant{Guest: g}
}

// MemberRegistrant returns a Registrant for the member flow.
func MemberRegistrant(memberID string) Registrant {
	return Registrant{MemberID: memberID}
}

// IsMember reports whether the registrant is an account-linked member.
func (r Registrant) IsMember() bool {
	return r.MemberID != ""
}
