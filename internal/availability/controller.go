package availability

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "radagast/internal/errors"
)

type Controller struct {
	useCase QueryUseCase
	logger  *zap.Logger
}

func NewController(useCase QueryUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateAvailabilityRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	resp, err := c.useCase.GetAvailability(r.Context(), req)
	if err != nil {
		c.logger.Error("availability query failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) validateAvailabilityRequest(req AvailabilityRequest) error {
	if req.ProductID == "" {
		msg := "productId is required"
		return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "productId",
			Message: msg,
		})
	}

	if req.LogoType == "" {
		msg := "logoType is required"
		return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "logoType",
			Message: msg,
		})
	}

	return nil
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
