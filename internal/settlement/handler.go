package settlement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kharchasplit/kharchasplit-server/pkg/middleware"
	"github.com/kharchasplit/kharchasplit-server/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListHistory)
	r.Get("/active", h.ListActive)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/confirm", h.Confirm)

	return r
}

// Create handles POST /settlements
// @Summary      Propose a settlement
// @Description  The acting user (debtor) claims to have paid part or all of what they owe another member
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body CreateSettlementRequest true "Settlement proposal"
// @Success      201 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing acting user")
		return
	}

	var req CreateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	settlement, err := h.service.Create(r.Context(), actorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotSettleSelf), errors.Is(err, ErrNonPositiveAmount):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrInsufficientBalance):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalError(w, "Failed to create settlement")
		}
		return
	}

	response.JSON(w, http.StatusCreated, settlement.ToResponse())
}

// Confirm handles POST /settlements/{id}/confirm
// @Summary      Confirm a settlement
// @Description  The creditor confirms receipt; the settlement becomes PAID and reduces the pair's balance
// @Tags         settlements
// @Produce      json
// @Param        id path int true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /settlements/{id}/confirm [post]
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing acting user")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid settlement ID")
		return
	}

	settlement, err := h.service.Confirm(r.Context(), id, actorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSettlementNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotCreditor):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrInvalidStatusChange):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to confirm settlement")
		}
		return
	}

	response.JSON(w, http.StatusOK, settlement.ToResponse())
}

// GetByID handles GET /settlements/{id}
// @Summary      Get settlement by ID
// @Tags         settlements
// @Produce      json
// @Param        id path int true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid settlement ID")
		return
	}

	settlement, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSettlementNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get settlement")
		return
	}

	response.JSON(w, http.StatusOK, settlement.ToResponse())
}

// ListActive handles GET /settlements/active?group_id=
// @Summary      List settlements needing action
// @Description  Pending settlements in a group where the acting user is debtor or creditor
// @Tags         settlements
// @Produce      json
// @Param        group_id query int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /settlements/active [get]
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing acting user")
		return
	}

	groupID, err := strconv.ParseInt(r.URL.Query().Get("group_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid or missing group_id")
		return
	}

	settlements, err := h.service.ListActiveForUser(r.Context(), groupID, actorID)
	if err != nil {
		response.InternalError(w, "Failed to list settlements")
		return
	}

	response.JSON(w, http.StatusOK, toResponses(settlements))
}

// ListHistory handles GET /settlements
// @Summary      List settlement history
// @Description  All settlements the acting user is party to, across groups, newest first
// @Tags         settlements
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Router       /settlements [get]
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing acting user")
		return
	}

	settlements, err := h.service.ListByUserID(r.Context(), actorID)
	if err != nil {
		response.InternalError(w, "Failed to list settlements")
		return
	}

	response.JSON(w, http.StatusOK, toResponses(settlements))
}

func toResponses(settlements []*Settlement) []*SettlementResponse {
	responses := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		responses[i] = s.ToResponse()
	}
	return responses
}
