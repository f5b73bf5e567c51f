package liveControllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"storefront-api/live"
	"storefront-api/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GET /ws/products
//
// Registers the client as a catalog observer, pushes the current listing
// right away, then serves newProduct/deleteProduct commands until the client
// goes away. Command failures are answered on the socket, never fatal.
func ProductsWebSocket(hub *live.Hub, catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			zap.S().Warnw("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		hub.Register(conn)
		defer hub.Unregister(conn)

		ctx := c.Request.Context()
		if products, err := catalog.Snapshot(ctx); err != nil {
			hub.SendError(conn, "failed to load products")
		} else if err := hub.SendProducts(conn, products); err != nil {
			return
		}

		for {
			var evt live.Event
			if err := conn.ReadJSON(&evt); err != nil {
				return
			}

			switch evt.Event {
			case live.EventNewProduct:
				var input services.NewProduct
				if err := json.Unmarshal(evt.Payload, &input); err != nil {
					hub.SendError(conn, "invalid product payload")
					continue
				}
				if _, err := catalog.Create(ctx, input); err != nil {
					hub.SendError(conn, err.Error())
				}
			case live.EventDeleteProduct:
				var id string
				if err := json.Unmarshal(evt.Payload, &id); err != nil {
					hub.SendError(conn, "invalid product id payload")
					continue
				}
				if err := catalog.Delete(ctx, id); err != nil {
					hub.SendError(conn, err.Error())
				}
			default:
				hub.SendError(conn, "unknown event: "+evt.Event)
			}
		}
	}
}
