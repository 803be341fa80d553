package availability

type AvailabilityRequest struct {
	ProductID string  `json:"productId"`
	LogoType  string  `json:"logoType"`
	OrderID   *string `json:"orderId"`
}

type AvailabilityResponse struct {
	ProductID          string  `json:"productId"`
	LogoType           string  `json:"logoType"`
	OrderID            *string `json:"orderId"`
	InStock            int     `json:"inStock"`
	AwaitingProduction int     `json:"awaitingProduction"`
}

// StatusCounts carries per-status unit counts for one product/variant and
// owning order (nil order means general stock).
type StatusCounts struct {
	InStock            int
	AwaitingProduction int
}
