package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/cuotacontrol/cuotacontrol-api/middleware"
)

// WSHandler notifica cambios de colección a los clientes del owner para que
// refresquen su snapshot. Es fire-and-forget: el mensaje sólo dice qué
// colección cambió, el cliente vuelve a pedir los datos por REST.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive para hosting cloud detrás de proxies
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		ownerID, _ := s.Get("owner_id")
		log.Printf("🔌 Client disconnected: %v", ownerID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS sube la conexión a WebSocket; el owner viene del JWT ya validado
// por el middleware (query param token).
func (h *WSHandler) HandleWS(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		"owner_id": ownerID,
	})
	if err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

type changeEvent struct {
	Collection string `json:"collection"`
	Action     string `json:"action"`
}

// NotifyChange avisa a todas las sesiones del owner que una colección cambió.
func (h *WSHandler) NotifyChange(ownerID, collection, action string) {
	msg, err := json.Marshal(changeEvent{Collection: collection, Action: action})
	if err != nil {
		return
	}

	err = h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, exists := s.Get("owner_id")
		return exists && id == ownerID
	})
	if err != nil {
		log.Printf("⚠️ Error broadcasting to owner %s: %v", ownerID, err)
	}
}
