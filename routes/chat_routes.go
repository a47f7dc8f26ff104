package routes

import (
	"tripmate_server/controllers"
	"tripmate_server/services"

	socketio "github.com/googollee/go-socket.io"
	"github.com/gorilla/mux"
)

// RegisterGroupChatRoutes registers group chat and lifecycle routes
func RegisterGroupChatRoutes(r *mux.Router, chat *services.GroupChatService, trips *services.TripService, lifecycle *services.LifecycleService, socket *socketio.Server) {
	controller := controllers.NewGroupChatController(chat, trips, lifecycle, socket)

	groupRouter := r.PathPrefix("/api/groups").Subrouter()
	groupRouter.HandleFunc("/{groupId}/messages", controller.HandleSendMessage).Methods("POST")
	groupRouter.HandleFunc("/{groupId}/messages", controller.HandleListMessages).Methods("GET")
	groupRouter.HandleFunc("/{groupId}/messages/last", controller.HandleGetLastMessage).Methods("GET")
	groupRouter.HandleFunc("/{groupId}/messages/edit", controller.HandleEditMessage).Methods("POST")
	groupRouter.HandleFunc("/{groupId}/messages/delete", controller.HandleDeleteMessage).Methods("POST")
	groupRouter.HandleFunc("/{groupId}/observe", controller.HandleObserveGroup).Methods("POST")
}
