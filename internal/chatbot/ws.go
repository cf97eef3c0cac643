package chatbot

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type incomingMessage struct {
	Message string `json:"message"`
}

// WSHandler answers each client frame with the same reply the POST endpoint
// would produce. Frames may be JSON ({"message": ...}) or raw text. Every
// message is handled independently; the socket carries no conversation state.
func WSHandler(responder *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		for {
			_, payload, err := ws.ReadMessage()
			if err != nil {
				break
			}

			text := ""
			var incoming incomingMessage
			if err := json.Unmarshal(payload, &incoming); err == nil {
				text = strings.TrimSpace(incoming.Message)
			} else {
				text = strings.TrimSpace(string(payload))
			}

			if text == "" {
				if err := ws.WriteJSON(Reply{Response: "Missatge buit."}); err != nil {
					break
				}
				continue
			}

			reply := responder.Respond(c.Request.Context(), text)
			if err := ws.WriteJSON(reply); err != nil {
				break
			}
		}
	}
}
