package live

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event types pada live feed
const (
	EventNewTable         = "new_table"
	EventUpdateTable      = "update_table"
	EventDeleteTable      = "delete_table"
	EventNewSection       = "new_section"
	EventDeleteSection    = "delete_section"
	EventNewOrder         = "new_order"
	EventNewTableOrder    = "new_table_order"
	EventUpdateOrder      = "update_order"
	EventUpdateTableOrder = "update_table_order"
	EventCompleteOrder    = "complete_order"
	EventDeleteOrder      = "delete_order"
	EventDeleteTableOrder = "delete_table_order"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub menampung semua client dashboard dan menyiarkan perubahan
// table/section/order ke semuanya. Feed bersifat receive-only untuk client.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]string),
		log:     log,
	}
}

// Serve meng-upgrade request menjadi websocket dan mendaftarkan client.
// Frame yang dikirim client diabaikan; koneksi dilepas saat read gagal.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorf("Error upgrading websocket: %v", err)
		return
	}

	role, _ := c.Get("role")
	roleStr, _ := role.(string)
	h.register(conn, roleStr)

	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
	h.log.Infof("Live feed client connected (role=%s), total %d", role, len(h.clients))
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// ClientCount -> jumlah client yang sedang terhubung.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast mengirim frame {type, ...payload} ke semua client.
func (h *Hub) Broadcast(eventType string, payload map[string]interface{}) {
	frame := map[string]interface{}{"type": eventType}
	for k, v := range payload {
		frame[k] = v
	}

	data, err := json.Marshal(frame)
	if err != nil {
		h.log.Errorf("Error marshaling live event %s: %v", eventType, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Errorf("Error sending %s to client: %v", eventType, err)
		}
	}
}
