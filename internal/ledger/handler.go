package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kharchasplit/kharchasplit-server/pkg/response"
)

// Handler handles HTTP requests for balance queries
type Handler struct {
	service *Service
}

// NewHandler creates a new ledger handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/groups/{groupId}", h.GroupBalances)
	r.Get("/groups/{groupId}/users/{userId}", h.UserBalances)

	return r
}

// GroupBalances handles GET /balances/groups/{groupId}
// @Summary      Get group balances
// @Description  Recompute and return the netted pairwise balances for a group
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]PairwiseBalance}
// @Failure      400 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /balances/groups/{groupId} [get]
func (h *Handler) GroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.GroupBalances(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrNonMember) {
			response.UnprocessableEntity(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, balances)
}

// UserBalances handles GET /balances/groups/{groupId}/users/{userId}
// @Summary      Get a user's balances in a group
// @Description  Return the pairwise balances the user is a party to
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        userId path int true "User ID"
// @Success      200 {object} response.APIResponse{data=[]PairwiseBalance}
// @Failure      400 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /balances/groups/{groupId}/users/{userId} [get]
func (h *Handler) UserBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	balances, err := h.service.UserBalances(r.Context(), groupID, userID)
	if err != nil {
		if errors.Is(err, ErrNonMember) {
			response.UnprocessableEntity(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, balances)
}
