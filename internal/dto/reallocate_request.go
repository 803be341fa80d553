package dto

type ReallocateRequest struct {
	ProductID               string  `json:"productId"`
	LogoType                string  `json:"logoType"`
	SourceOrderID           *string `json:"sourceOrderId"`
	TargetOrderID           string  `json:"targetOrderId"`
	TargetOrderClientName   *string `json:"targetOrderClientName"`
	TargetOrderDeliveryDate *string `json:"targetOrderDeliveryDate"`
	Quantity                int     `json:"quantity"`
}
