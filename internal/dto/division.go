package dto

// DivisionResponse is the public shape of a division.
type DivisionResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
