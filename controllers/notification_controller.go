package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tripmate_server/services"
)

// NotificationController handles notification listing and read state.
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController initializes the notification controller
func NewNotificationController(service *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: service}
}

// HandleListNotifications - fetch the user's notifications, latest first
func (c *NotificationController) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "Missing userId"}`, http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, `{"error": "Invalid limit"}`, http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	notifications, err := c.NotificationService.ListNotifications(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// HandleUnreadCounts - the chat/general badge pair
func (c *NotificationController) HandleUnreadCounts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "Missing userId"}`, http.StatusBadRequest)
		return
	}

	counts, err := c.NotificationService.GetUnreadCounts(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// HandleMarkRead - flip one notification to read
func (c *NotificationController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID    string `json:"userId"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" || request.CreatedAt == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.NotificationService.MarkRead(r.Context(), request.UserID, request.CreatedAt); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// HandleMarkAllRead - flip the current unread set in one batch
func (c *NotificationController) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	marked, err := c.NotificationService.MarkAllRead(r.Context(), request.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"marked": marked})
}

// HandleMarkChatRead - invoked when the user opens a group's chat window
func (c *NotificationController) HandleMarkChatRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		GroupID string `json:"groupId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" || request.GroupID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	marked, err := c.NotificationService.MarkChatRead(r.Context(), request.UserID, request.GroupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"marked": marked})
}

// HandleDeleteNotification - recipient removes one notification
func (c *NotificationController) HandleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID    string `json:"userId"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" || request.CreatedAt == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.NotificationService.DeleteNotification(r.Context(), request.UserID, request.CreatedAt); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
