package routes

import (
	"tripmate_server/controllers"
	"tripmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes registers notification and read-state routes
func RegisterNotificationRoutes(r *mux.Router, service *services.NotificationService) {
	controller := controllers.NewNotificationController(service)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()
	notificationRouter.HandleFunc("", controller.HandleListNotifications).Methods("GET")
	notificationRouter.HandleFunc("/unread-counts", controller.HandleUnreadCounts).Methods("GET")
	notificationRouter.HandleFunc("/read", controller.HandleMarkRead).Methods("POST")
	notificationRouter.HandleFunc("/read-all", controller.HandleMarkAllRead).Methods("POST")
	notificationRouter.HandleFunc("/read-chat", controller.HandleMarkChatRead).Methods("POST")
	notificationRouter.HandleFunc("/delete", controller.HandleDeleteNotification).Methods("POST")
}
