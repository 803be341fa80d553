package dto

import "time"

type ReallocateResponse struct {
	TraceID             string    `json:"traceId"`
	Status              string    `json:"status"`
	Message             string    `json:"message"`
	Moved               int       `json:"moved"`
	BackordersCleared   int       `json:"backordersCleared"`
	ReplacementsCreated int       `json:"replacementsCreated"`
	Timestamp           time.Time `json:"timestamp"`
}

type ReallocateErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}
