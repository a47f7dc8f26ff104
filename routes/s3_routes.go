package routes

import (
	"tripmate_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for trip image upload/read URLs
func RegisterS3Routes(r *mux.Router) {
	imageRouter := r.PathPrefix("/api/images").Subrouter()
	imageRouter.HandleFunc("/upload-url", controllers.GeneratePresignedURL).Methods("POST")
	imageRouter.HandleFunc("/read-url", controllers.GetPresignedReadURL).Methods("POST")
}
