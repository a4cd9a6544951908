package models

// Division is an organizational unit scoping which work assignments and
// executors are visible to a user.
type Division struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
