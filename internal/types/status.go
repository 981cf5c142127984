package types

// Status is a type for the lifecycle status of a persisted resource.
// This is used to implement soft deletes and to determine if a row should be
// included in queries by default.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

func (s Status) String() string {
	return string(s)
}
