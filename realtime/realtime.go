package realtime

import (
	"log"
	"sync"

	"api/services"

	"github.com/gorilla/websocket"
)

var (
	experimentClients = make(map[string]map[*websocket.Conn]bool) // Map of experiment ID to connected dashboard clients
	broadcast         = make(chan ResponseUpdate)                 // Broadcast channel for updates
	mutex             sync.Mutex                                  // Mutex to protect experimentClients map
)

// ResponseUpdate notifies experimenter dashboards of a newly recorded response
type ResponseUpdate struct {
	ExperimentID string                  `json:"experiment_id"`
	SessionID    string                  `json:"session_id"`
	PlayerName   string                  `json:"player_name"`
	Result       services.ResponseResult `json:"result"`
}

// RegisterClient adds a WebSocket client to a specific experiment
func RegisterClient(experimentID string, conn *websocket.Conn) {
	mutex.Lock()
	if experimentClients[experimentID] == nil {
		experimentClients[experimentID] = make(map[*websocket.Conn]bool)
	}
	experimentClients[experimentID][conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from a specific experiment
func UnregisterClient(experimentID string, conn *websocket.Conn) {
	mutex.Lock()
	if clients, exists := experimentClients[experimentID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(experimentClients, experimentID)
		}
	}
	mutex.Unlock()
}

// BroadcastResponseUpdate sends updates to all clients watching an experiment
func BroadcastResponseUpdate(update ResponseUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		if clients, exists := experimentClients[update.ExperimentID]; exists {
			for client := range clients {
				if err := client.WriteJSON(update); err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
