package adaptor

import (
	"errors"
	"net/http"

	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking  *BookingHandler
	Calendar *CalendarHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:  NewBookingHandler(service.Booking, log),
		Calendar: NewCalendarHandler(service.Calendar, log),
	}
}

// handleServiceError maps engine rejections onto HTTP statuses. Typed rejections
// carry the classification; anything else is a 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var rejection *usecase.Rejection
	if errors.As(err, &rejection) {
		switch rejection.Kind {
		case usecase.KindValidation:
			log.Warn(operation+" rejected - validation",
				zap.Error(err),
				zap.String("operation", operation))
			utils.ResponseBadRequest(w, rejection.Error(), nil)

		case usecase.KindAvailabilityConflict, usecase.KindPersistenceConflict:
			log.Warn(operation+" rejected - conflict",
				zap.Error(err),
				zap.String("operation", operation))
			utils.ResponseConflict(w, rejection.Error())

		case usecase.KindInvalidTransition:
			log.Warn(operation+" rejected - invalid transition",
				zap.Error(err),
				zap.String("operation", operation))
			utils.ResponseConflict(w, rejection.Error())

		case usecase.KindNotFound:
			log.Warn(operation+" failed - not found",
				zap.Error(err),
				zap.String("operation", operation))
			utils.ResponseNotFound(w, rejection.Error())

		default:
			log.Error("Failed to "+operation,
				zap.Error(err),
				zap.String("operation", operation))
			utils.ResponseInternalError(w, "Internal server error")
		}
		return
	}

	log.Error("Failed to "+operation,
		zap.Error(err),
		zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}
