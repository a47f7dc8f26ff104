package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"tripmate_server/models"
	"tripmate_server/services"

	socketio "github.com/googollee/go-socket.io"
	"github.com/gorilla/mux"
)

// GroupChatController handles the group message stream and the lifecycle
// observation hook.
type GroupChatController struct {
	ChatService *services.GroupChatService
	TripService *services.TripService
	Lifecycle   *services.LifecycleService
	Socket      *socketio.Server // nil in tests
}

// NewGroupChatController initializes the group chat controller
func NewGroupChatController(chat *services.GroupChatService, trips *services.TripService, lifecycle *services.LifecycleService, socket *socketio.Server) *GroupChatController {
	return &GroupChatController{ChatService: chat, TripService: trips, Lifecycle: lifecycle, Socket: socket}
}

// HandleSendMessage - append a new message to the group stream
func (c *GroupChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	var request struct {
		Sender   identityPayload         `json:"sender"`
		Content  string                  `json:"content,omitempty"`
		Location *models.LocationPayload `json:"location,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Sender.UserID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), groupID, request.Sender.toIdentity(), request.Content, request.Location)
	if err != nil {
		writeError(w, err)
		return
	}

	c.broadcast(groupID, "newMessage", message)
	writeJSON(w, http.StatusCreated, message)
}

// HandleListMessages - fetch the latest messages, oldest first
func (c *GroupChatController) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]
	viewerID := r.URL.Query().Get("userId")
	if viewerID == "" {
		http.Error(w, `{"error": "Missing userId"}`, http.StatusBadRequest)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, `{"error": "Invalid limit"}`, http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	messages, err := c.ChatService.ListMessages(r.Context(), groupID, viewerID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// HandleGetLastMessage - fetch the newest message, or null for a quiet group
func (c *GroupChatController) HandleGetLastMessage(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	message, err := c.ChatService.GetLastMessage(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message)
}

// HandleEditMessage - rewrite the caller's own text message
func (c *GroupChatController) HandleEditMessage(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	var request struct {
		CreatedAt string `json:"createdAt"`
		UserID    string `json:"userId"`
		Content   string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.CreatedAt == "" || request.UserID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.EditMessage(r.Context(), groupID, request.CreatedAt, request.UserID, request.Content); err != nil {
		writeError(w, err)
		return
	}

	c.broadcast(groupID, "messageEdited", map[string]string{"createdAt": request.CreatedAt, "content": request.Content})
	writeJSON(w, http.StatusOK, map[string]string{"status": "edited"})
}

// HandleDeleteMessage - tombstone the caller's own message
func (c *GroupChatController) HandleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	var request struct {
		CreatedAt string `json:"createdAt"`
		UserID    string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.CreatedAt == "" || request.UserID == "" {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.SoftDeleteMessage(r.Context(), groupID, request.CreatedAt, request.UserID); err != nil {
		writeError(w, err)
		return
	}

	c.broadcast(groupID, "messageDeleted", map[string]string{"createdAt": request.CreatedAt})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleObserveGroup is the lifecycle hook: the hosting layer calls it once
// per group snapshot the owner observes. It returns the group and, as a
// side effect, fires any due start-date system message exactly once.
func (c *GroupChatController) HandleObserveGroup(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]
	observerID := r.URL.Query().Get("userId")
	if observerID == "" {
		http.Error(w, `{"error": "Missing userId"}`, http.StatusBadRequest)
		return
	}

	group, err := c.TripService.GetGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := c.Lifecycle.CheckGroup(r.Context(), group, observerID); err != nil {
		log.Printf("⚠️ Lifecycle check failed for group %s: %v", groupID, err)
	}
	writeJSON(w, http.StatusOK, group)
}

func (c *GroupChatController) broadcast(groupID, event string, payload interface{}) {
	if c.Socket == nil {
		return
	}
	c.Socket.BroadcastToRoom("/", groupID, event, payload)
}
