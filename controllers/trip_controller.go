package controllers

import (
	"encoding/json"
	"net/http"

	"tripmate_server/models"
	"tripmate_server/services"

	"github.com/gorilla/mux"
)

// TripController handles trip proposals, membership and search.
type TripController struct {
	TripService *services.TripService
	Ranking     *services.RankingService
}

// NewTripController initializes the trip controller
func NewTripController(tripService *services.TripService, ranking *services.RankingService) *TripController {
	return &TripController{TripService: tripService, Ranking: ranking}
}

// identityPayload is the caller identity as supplied by the auth provider.
type identityPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

func (p identityPayload) toIdentity() models.Identity {
	return models.Identity{UserID: p.UserID, DisplayName: p.DisplayName, AvatarURL: p.AvatarURL}
}

// HandleCreateTrip creates a trip proposal and its paired group.
func (c *TripController) HandleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Owner identityPayload          `json:"owner"`
		Trip  services.CreateTripInput `json:"trip"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.Owner.UserID == "" || request.Owner.DisplayName == "" {
		http.Error(w, `{"error": "Missing owner identity"}`, http.StatusBadRequest)
		return
	}

	trip, err := c.TripService.CreateTrip(r.Context(), request.Owner.toIdentity(), request.Trip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// HandleGetTrip fetches one trip proposal.
func (c *TripController) HandleGetTrip(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]

	trip, err := c.TripService.GetTrip(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// HandleSearchTrips lists trips ranked by hotness, or by relevance when a
// query is given. The category policy is selectable per call site.
func (c *TripController) HandleSearchTrips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	policy := r.URL.Query().Get("categoryPolicy")
	if policy == "" {
		policy = models.CategoryBoost
	}
	if policy != models.CategoryBoost && policy != models.CategoryExclude {
		http.Error(w, `{"error": "categoryPolicy must be boost or exclude"}`, http.StatusBadRequest)
		return
	}

	trips, err := c.TripService.ListTrips(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Ranking.Rank(trips, query, policy))
}

// HandleListGroups lists the chat groups the user belongs to.
func (c *TripController) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "Missing userId"}`, http.StatusBadRequest)
		return
	}

	groups, err := c.TripService.ListGroupsForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// HandleRequestJoin files a join request.
func (c *TripController) HandleRequestJoin(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]

	var request identityPayload
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.TripService.RequestJoin(r.Context(), tripID, request.toIdentity()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "requested"})
}

// HandleCancelRequest withdraws the caller's join request.
func (c *TripController) HandleCancelRequest(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]

	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.TripService.CancelRequest(r.Context(), tripID, request.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// HandleApproveRequest approves a pending join request.
func (c *TripController) HandleApproveRequest(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]

	var request struct {
		CallerID    string `json:"callerId"`
		RequesterID string `json:"requesterId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.CallerID == "" || request.RequesterID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.TripService.ApproveRequest(r.Context(), tripID, request.CallerID, request.RequesterID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

// HandleRejectRequest declines a pending join request.
func (c *TripController) HandleRejectRequest(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]

	var request struct {
		CallerID    string `json:"callerId"`
		RequesterID string `json:"requesterId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.CallerID == "" || request.RequesterID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.TripService.RejectRequest(r.Context(), tripID, request.CallerID, request.RequesterID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// HandleLeaveTrip removes the caller from the trip.
func (c *TripController) HandleLeaveTrip(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]

	var request identityPayload
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.TripService.LeaveTrip(r.Context(), tripID, request.toIdentity()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "left"})
}

// HandleRemoveMember kicks a member, owner only.
func (c *TripController) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]

	var request struct {
		CallerID string `json:"callerId"`
		TargetID string `json:"targetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.CallerID == "" || request.TargetID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.TripService.RemoveMember(r.Context(), tripID, request.CallerID, request.TargetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// HandleEndTrip ends the trip; a trip with only its owner is deleted.
func (c *TripController) HandleEndTrip(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]

	var request struct {
		CallerID string `json:"callerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.CallerID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.TripService.EndTrip(r.Context(), tripID, request.CallerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

// HandleToggleLike toggles the caller's like on the trip.
func (c *TripController) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]

	var request identityPayload
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	liked, err := c.TripService.ToggleLike(r.Context(), tripID, request.toIdentity())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// HandleAddComment appends a comment to the proposal.
func (c *TripController) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]

	var request struct {
		identityPayload
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	comment, err := c.TripService.AddComment(r.Context(), tripID, request.toIdentity(), request.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
