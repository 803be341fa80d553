package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"radagast/internal/dto"
	apperrors "radagast/internal/errors"
)

const maxReallocationQuantity = 10000

type ReallocateUseCase interface {
	Reallocate(ctx context.Context, cmd dto.ReallocationCommand) (*dto.ReallocationResult, error)
}

type ReallocateController struct {
	useCase ReallocateUseCase
	logger  *zap.Logger
}

func NewReallocateController(useCase ReallocateUseCase, logger *zap.Logger) *ReallocateController {
	return &ReallocateController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *ReallocateController) Reallocate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.ReallocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	cmd, err := c.buildCommand(req)
	if err != nil {
		ve, _ := apperrors.IsValidationError(err)
		logger.Warn("validation failed", zap.String("message", ve.Message))
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	result, err := c.useCase.Reallocate(r.Context(), cmd)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.ReallocateResponse{
		TraceID:             traceID,
		Status:              "success",
		Message:             "item reallocated",
		Moved:               result.Moved,
		BackordersCleared:   result.BackordersCleared,
		ReplacementsCreated: result.ReplacementsCreated,
		Timestamp:           time.Now().UTC(),
	})
}

func (c *ReallocateController) buildCommand(req dto.ReallocateRequest) (dto.ReallocationCommand, error) {
	var details []apperrors.ValidationDetail

	if req.ProductID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId is required",
		})
	}

	if req.LogoType == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "logoType",
			Message: "logoType is required",
		})
	}

	if req.TargetOrderID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "targetOrderId",
			Message: "targetOrderId is required",
		})
	}

	if req.Quantity < 1 || req.Quantity > maxReallocationQuantity {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be between 1 and 10000",
		})
	}

	var deliveryDate *time.Time
	if req.TargetOrderDeliveryDate != nil && *req.TargetOrderDeliveryDate != "" {
		parsed, err := parseDeliveryDate(*req.TargetOrderDeliveryDate)
		if err != nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   "targetOrderDeliveryDate",
				Message: "targetOrderDeliveryDate must be an ISO date",
			})
		} else {
			deliveryDate = &parsed
		}
	}

	if len(details) > 0 {
		return dto.ReallocationCommand{}, apperrors.NewValidationError("validation failed", details...)
	}

	clientName := ""
	if req.TargetOrderClientName != nil {
		clientName = *req.TargetOrderClientName
	}

	return dto.ReallocationCommand{
		ProductID:          req.ProductID,
		LogoType:           req.LogoType,
		SourceOrderID:      req.SourceOrderID,
		TargetOrderID:      req.TargetOrderID,
		TargetClientName:   clientName,
		TargetDeliveryDate: deliveryDate,
		Quantity:           req.Quantity,
	}, nil
}

func parseDeliveryDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}

func (c *ReallocateController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		logger.Warn("insufficient stock",
			zap.Int("requested", ise.Requested),
			zap.Int("found", ise.Found),
		)
		c.writeErrorResponse(w, traceID, http.StatusConflict, "INSUFFICIENT_STOCK", ise.Error())
		return
	}

	if _, ok := apperrors.IsDeadlockError(err); ok {
		logger.Warn("reallocation conflict", zap.Error(err))
		c.writeErrorResponse(w, traceID, http.StatusConflict, "CONFLICT", err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *ReallocateController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string) {
	c.writeJSON(w, statusCode, dto.ReallocateErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *ReallocateController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *ReallocateController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
