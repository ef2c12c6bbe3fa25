package models

// Doctor is read-only directory data fetched per booking workflow instance.
type Doctor struct {
	ID          string `json:"id"`
	DisplayName string `json:"full_name"`
}
