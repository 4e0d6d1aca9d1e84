package model

// Other is a named counterparty the owning user keeps a running balance with.
// Balance is positive when the counterparty owes the user net. At most one
// row exists per (owner, name) pair; rows are created lazily and never
// deleted.
type Other struct {
	ID      int     `json:"id"`
	Owner   string  `json:"userId"`
	Name    string  `json:"username"`
	Balance float64 `json:"balance"`
}
