package model

// Entity is the single persisted resource managed by the service.
// ID is assigned by the store on creation and never changes afterwards.
type Entity struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
