package dto

import "time"

// ReallocationCommand is the validated form of a reallocate request handed
// to the engine. SourceOrderID nil means "pull from general stock".
type ReallocationCommand struct {
	ProductID          string
	LogoType           string
	SourceOrderID      *string
	TargetOrderID      string
	TargetClientName   string
	TargetDeliveryDate *time.Time
	Quantity           int
}

// ReallocationResult reports the net effect of one committed reallocation.
type ReallocationResult struct {
	TargetOrderID       string
	SourceOrderID       *string
	Moved               int
	BackordersCleared   int
	ReplacementsCreated int
}
