package routes

import (
	"tripmate_server/controllers"
	"tripmate_server/services"

	"github.com/gorilla/mux"
)

// RegisterTripRoutes registers trip proposal, membership and search routes
func RegisterTripRoutes(r *mux.Router, tripService *services.TripService, ranking *services.RankingService) {
	controller := controllers.NewTripController(tripService, ranking)

	tripRouter := r.PathPrefix("/api/trips").Subrouter()
	tripRouter.HandleFunc("", controller.HandleCreateTrip).Methods("POST")
	tripRouter.HandleFunc("", controller.HandleSearchTrips).Methods("GET")
	tripRouter.HandleFunc("/groups", controller.HandleListGroups).Methods("GET")
	tripRouter.HandleFunc("/{tripId}", controller.HandleGetTrip).Methods("GET")
	tripRouter.HandleFunc("/{tripId}/join-requests", controller.HandleRequestJoin).Methods("POST")
	tripRouter.HandleFunc("/{tripId}/join-requests/cancel", controller.HandleCancelRequest).Methods("POST")
	tripRouter.HandleFunc("/{tripId}/join-requests/approve", controller.HandleApproveRequest).Methods("POST")
	tripRouter.HandleFunc("/{tripId}/join-requests/reject", controller.HandleRejectRequest).Methods("POST")
	tripRouter.HandleFunc("/{tripId}/leave", controller.HandleLeaveTrip).Methods("POST")
	tripRouter.HandleFunc("/{tripId}/members/remove", controller.HandleRemoveMember).Methods("POST")
	tripRouter.HandleFunc("/{tripId}/end", controller.HandleEndTrip).Methods("POST")
	tripRouter.HandleFunc("/{tripId}/like", controller.HandleToggleLike).Methods("POST")
	tripRouter.HandleFunc("/{tripId}/comments", controller.HandleAddComment).Methods("POST")
}
