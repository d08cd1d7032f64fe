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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ClassHandler handles class catalog management and roster views.
type ClassHandler struct {
	classService  *service.ClassService
	rosterService *service.RosterService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService, rosterService *service.RosterService) *ClassHandler {
	return &ClassHandler{classService: classService, rosterService: rosterService}
}

// GetBoard godoc
// GET /api/v1/admin/board
// Returns every class joined with its upcoming occurrence and roster.
func (h *ClassHandler) GetBoard(c *gin.Context) {
	boards, err := h.rosterService.Board(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": boards})
}

// GetClassRoster godoc
// GET /api/v1/admin/classes/:id/roster
func (h *ClassHandler) GetClassRoster(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	board, err := h.rosterService.ClassRoster(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": board})
}

// ListClasses godoc
// GET /api/v1/admin/classes
// Lists raw class definitions without roster projection.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// CreateClass godoc
// POST /api/v1/admin/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class := &model.Class{
		Name:      req.Name,
		Weekday:   *req.Weekday,
		StartTime: *req.StartTime,
		Capacity:  req.Capacity,
	}

	if err := h.classService.Create(c.Request.Context(), class); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// UpdateClass godoc
// PUT /api/v1/admin/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if _, err := h.classService.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	class := &model.Class{
		ID:        id,
		Name:      req.Name,
		Weekday:   *req.Weekday,
		StartTime: *req.StartTime,
		Capacity:  req.Capacity,
	}

	if err := h.classService.Update(c.Request.Context(), class); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	// Fetch updated to get the current updated_at timestamp
	updated, _ := h.classService.GetByID(c.Request.Context(), id)

	response.Success(c, http.StatusOK, gin.H{"class": updated})
}

// DeleteClass godoc
// DELETE /api/v1/admin/classes/:id
// Owner only. Ledger rows for the class cascade away with it.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "class deleted successfully"})
}
