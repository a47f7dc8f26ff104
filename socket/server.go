package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server. Clients join one room
// per trip group; the controllers broadcast chat events into those rooms.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, groupID string) {
		if groupID == "" {
			log.Println("❌ Invalid groupId in join request")
			return
		}
		c.Join(groupID)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, groupID string) {
		if groupID != "" {
			c.Leave(groupID)
		}
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("👋 Socket disconnected:", reason)
	})

	return server
}
