package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lodgeline/rent-service/internal/dtos"
	"github.com/lodgeline/rent-service/internal/services"
	"github.com/lodgeline/rent-service/internal/utils"
)

type RentEntryController struct {
	entryService      services.RentEntryService
	assignmentService services.AssignmentService
	validate          *validator.Validate
}

func NewRentEntryController(es services.RentEntryService, as services.AssignmentService) *RentEntryController {
	return &RentEntryController{
		entryService:      es,
		assignmentService: as,
		validate:          validator.New(),
	}
}

// GET /api/v1/rent-entries
func (c *RentEntryController) ListRentEntriesHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, err := c.entryService.ListEntries(r.Context(), owner)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/rent-entries/{id}
func (c *RentEntryController) GetRentEntryHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, err := c.entryService.GetEntry(r.Context(), owner, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/rent-entries
//
// Accepts two payload shapes. With month set, it creates a single manual
// entry. With month omitted, it runs the assignment flow for the given
// tenant and property and returns the generated schedule.
func (c *RentEntryController) CreateRentEntryHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateRentEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	if req.IsAssignment() {
		resp, err := c.assignmentService.AssignTenantToProperty(r.Context(), owner, req.PropertyID, req.TenantID)
		if err != nil {
			utils.HandleAppError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, resp)
		return
	}

	if req.Year == 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "year is required for a manual rent entry", nil, nil)
		return
	}
	if req.RentAmountCents <= 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "rent_amount_cents is required for a manual rent entry", nil, nil)
		return
	}

	resp, err := c.entryService.CreateManualEntry(r.Context(), owner, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// PUT /api/v1/rent-entries/{id}
func (c *RentEntryController) UpdateRentEntryHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateRentEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.entryService.UpdateEntry(r.Context(), owner, id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// PATCH /api/v1/rent-entries/{id}/mark-paid
func (c *RentEntryController) MarkPaidHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	// An empty body means "paid in full today".
	var req dtos.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.entryService.MarkPaid(r.Context(), owner, id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// DELETE /api/v1/rent-entries/{id}
func (c *RentEntryController) DeleteRentEntryHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if err := c.entryService.DeleteEntry(r.Context(), owner, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Rent entry deleted successfully"})
}

// GET /api/v1/rent-entries/statistics
func (c *RentEntryController) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, err := c.entryService.Statistics(r.Context(), owner)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/rent-entries/regenerate
func (c *RentEntryController) RegenerateHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	resp, err := c.entryService.Regenerate(r.Context(), owner, req.TenantID, req.PropertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
