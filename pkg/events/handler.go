package events

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"culturevault/pkg/response"
)

type Handler struct {
	repo   EventRepository
	hub    *Hub
	logger interface {
		Printf(string, ...interface{})
	}
}

func NewHandler(repo EventRepository, hub *Hub) *Handler {
	return &Handler{
		repo:   repo,
		hub:    hub,
		logger: log.New(log.Writer(), "[events] ", log.LstdFlags),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/events", h.listEvents)
	router.GET("/ws/events", h.streamEvents)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, validate origin properly
		return true
	},
}

// @Summary      List audit events
// @Description  Returns the append-only audit log, oldest first. Filterable by asset and event type.
// @Tags         events
// @Produce      json
// @Param        asset_id    query     int     false  "Filter by asset ID"
// @Param        event_type  query     string  false  "Filter by event type"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Page size (default 20)"
// @Success      200  {object}  response.APIResponse{data=events.EventList}
// @Failure      400  {object}  response.APIResponse "Invalid filter"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /events [get]
func (h *Handler) listEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var filters EventFilters
	if raw := c.Query("asset_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid asset_id filter", nil)
			return
		}
		filters.AssetID = &id
	}
	if raw := c.Query("event_type"); raw != "" {
		filters.EventType = &raw
	}

	items, total, err := h.repo.ListEvents(c.Request.Context(), filters, limit, (page-1)*limit)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "events listed", EventList{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// streamEvents upgrades to WebSocket and pushes committed events as they happen.
func (h *Handler) streamEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade error: %v", err)
		return
	}

	sub := h.hub.add(conn)
	h.logger.Printf("feed subscriber connected (%d active)", h.hub.SubscriberCount())

	go h.readLoop(sub)
	go h.writeLoop(sub)
}

// readLoop drains the connection so close frames and pongs are processed.
// Subscribers are not expected to send anything.
func (h *Handler) readLoop(sub *subscriber) {
	defer func() {
		h.hub.remove(sub)
		sub.conn.Close()
		h.logger.Printf("feed subscriber disconnected (%d active)", h.hub.SubscriberCount())
	}()

	sub.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	sub.conn.SetPongHandler(func(string) error {
		sub.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writeLoop(sub *subscriber) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case e := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := sub.conn.WriteJSON(e); err != nil {
				h.logger.Printf("feed write error: %v", err)
				return
			}
		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-sub.done:
			return
		}
	}
}
