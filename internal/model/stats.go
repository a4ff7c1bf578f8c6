package model

// OwnerStats summarizes how much of each resource an account currently owns.
type OwnerStats struct {
	Stores           int64 `json:"stores"`
	Branches         int64 `json:"branches"`
	Products         int64 `json:"products"`
	InventoryRecords int64 `json:"inventory_records"`
}
