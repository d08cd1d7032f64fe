package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gymdesk/gymdesk-backend/internal/model"
	"github.com/gymdesk/gymdesk-backend/internal/response"
	"github.com/gymdesk/gymdesk-backend/internal/service"
	"github.com/gymdesk/gymdesk-backend/internal/validator"
)

// EnrollmentHandler exposes the booking engine over HTTP.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// outcomeStatus maps each business outcome to its HTTP representation.
// Window and capacity rejections are expected results, not faults, so they
// ride a 409 with a typed code rather than a 5xx.
func outcomeStatus(outcome service.Outcome) (int, response.ErrCode) {
	switch outcome {
	case service.OutcomeAlreadyEnrolled:
		return http.StatusConflict, response.ErrAlreadyEnrolled
	case service.OutcomeNotEnrolled:
		return http.StatusConflict, response.ErrNotEnrolled
	case service.OutcomeClassFull:
		return http.StatusConflict, response.ErrClassFull
	case service.OutcomeEnrollClosed:
		return http.StatusConflict, response.ErrEnrollWindowClosed
	case service.OutcomeCancelClosed:
		return http.StatusConflict, response.ErrCancelWindowClosed
	default:
		return http.StatusOK, ""
	}
}

// ToggleEnrollment godoc
// POST /api/v1/admin/classes/:id/enrollment
// Enrolls a member into the class's upcoming occurrence, or frees their
// seat when unsubscribe is set. Safe to retry on transport errors.
func (h *EnrollmentHandler) ToggleEnrollment(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ToggleEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.enrollmentService.Toggle(c.Request.Context(), classID, req.MemberID, req.Unsubscribe)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if status, code := outcomeStatus(result.Outcome); code != "" {
		response.Fail(c, status, code)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}
