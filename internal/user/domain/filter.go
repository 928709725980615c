package domain

// Filter holds optional criteria for listing users. Zero-valued fields are
// ignored when building the query.
type Filter struct {
	Role   Role
	Status Status
	Limit  int
	Offset int
}
