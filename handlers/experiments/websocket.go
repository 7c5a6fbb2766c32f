package experiments

import (
	"log"
	"net/http"

	"api/database"
	"api/models"
	"api/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ExperimentWebSocket handles WebSocket connections for an experiment's live
// response feed. Dashboard clients receive every recorded response as it lands.
func ExperimentWebSocket(c *gin.Context) {
	experimentID := c.Param("id")

	var experiment models.Experiment
	if err := database.DB.First(&experiment, "id = ?", experimentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrExperimentNotFound})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	realtime.RegisterClient(experimentID, conn)
	defer func() {
		realtime.UnregisterClient(experimentID, conn)
		conn.Close()
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error: %v", err)
			break
		}
	}
}
