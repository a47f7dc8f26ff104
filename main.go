package main

import (
	"log"
	"net/http"
	"os"

	"tripmate_server/routes"
	"tripmate_server/services"
	"tripmate_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	tripService := &services.TripService{Dynamo: dynamoService}
	chatService := &services.GroupChatService{Dynamo: dynamoService}
	notificationService := &services.NotificationService{Dynamo: dynamoService}
	lifecycleService := &services.LifecycleService{Dynamo: dynamoService}
	rankingService := &services.RankingService{}

	// Realtime broadcast channel
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()
	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterRoutes(r)
	routes.RegisterTripRoutes(r, tripService, rankingService)
	routes.RegisterGroupChatRoutes(r, chatService, tripService, lifecycleService, socketServer)
	routes.RegisterNotificationRoutes(r, notificationService)
	routes.RegisterS3Routes(r)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
