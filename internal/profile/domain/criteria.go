package domain

// MaidSearchCriteria narrows worker profile searches. Zero values mean the
// dimension is not filtered.
type MaidSearchCriteria struct {
	Nationality        string
	Verification       Verification
	MinExperienceYears int
	Limit              int
	Offset             int
}
