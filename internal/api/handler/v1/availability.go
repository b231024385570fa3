package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/eloquence-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eloquence-api/internal/domain"
	"github.com/vietanh2810/eloquence-api/internal/service"
)

const (
	feedSendBuffer   = 16
	feedWriteTimeout = 10 * time.Second
	feedPongTimeout  = 60 * time.Second
	feedPingInterval = feedPongTimeout * 9 / 10
	feedMaxReadBytes = 512
)

const feedSnapshot = "availability.snapshot"

var ErrFeedStopped = errors.New("availability feed stopped")

type AvailabilityService interface {
	Availability(ctx context.Context) (service.PublicAvailability, error)
	FeedSnapshot(ctx context.Context) (service.FeedSnapshot, error)
}

// FeedMessage is what websocket subscribers receive. Registrant details
// never leave the server through the public feed.
type FeedMessage struct {
	Type       string               `json:"type"`
	Seq        uint64               `json:"seq,omitempty"`
	Pool       domain.Pool          `json:"pool,omitempty"`
	Spectators *domain.Availability `json:"spectators,omitempty"`
	Candidates *domain.Availability `json:"candidates,omitempty"`
}

// snapshotFunc is called by the hub loop when a subscriber joins. Events
// numbered up to the returned sequence are not sent to that subscriber.
type snapshotFunc func() ([]byte, uint64, error)

type feedClient struct {
	conn  *websocket.Conn
	send  chan []byte
	after uint64
}

type feedSubscription struct {
	client   *feedClient
	snapshot snapshotFunc
	result   chan error
}

type feedEvent struct {
	seq     uint64
	pool    domain.Pool
	payload []byte
}

// AvailabilityHub fans registration events out to websocket subscribers.
// Subscribers that cannot keep up are dropped. Events carrying a sequence no
// newer than the last one seen for their pool are discarded.
type AvailabilityHub struct {
	clients    map[*feedClient]struct{}
	latest     map[domain.Pool]uint64
	broadcast  chan feedEvent
	register   chan feedSubscription
	unregister chan *feedClient
	done       chan struct{}
}

func NewAvailabilityHub() *AvailabilityHub {
	return &AvailabilityHub{
		clients:    make(map[*feedClient]struct{}),
		latest:     make(map[domain.Pool]uint64),
		broadcast:  make(chan feedEvent),
		register:   make(chan feedSubscription),
		unregister: make(chan *feedClient),
		done:       make(chan struct{}),
	}
}

// Run owns the subscriber set until ctx is cancelled.
func (h *AvailabilityHub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for client := range h.clients {
			h.drop(client)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case sub := <-h.register:
			sub.result <- h.add(sub)
		case client := <-h.unregister:
			h.drop(client)
		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

// add takes the snapshot while no event can be fanned out, so the subscriber
// sees the snapshot first and then exactly the events committed after it.
func (h *AvailabilityHub) add(sub feedSubscription) error {
	if sub.snapshot != nil {
		payload, seq, err := sub.snapshot()
		if err != nil {
			return err
		}
		sub.client.after = seq
		select {
		case sub.client.send <- payload:
		default:
			return errors.New("subscriber buffer is full")
		}
	}
	h.clients[sub.client] = struct{}{}

	return nil
}

func (h *AvailabilityHub) fanOut(event feedEvent) {
	if event.seq != 0 {
		if event.seq <= h.latest[event.pool] {
			return
		}
		h.latest[event.pool] = event.seq
	}

	for client := range h.clients {
		if event.seq != 0 && event.seq <= client.after {
			continue
		}
		select {
		case client.send <- event.payload:
		default:
			h.drop(client)
		}
	}
}

func (h *AvailabilityHub) drop(client *feedClient) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

// Publish implements service.EventPublisher.
func (h *AvailabilityHub) Publish(ctx context.Context, event domain.RegistrationEvent) error {
	message := FeedMessage{
		Type: string(event.Type),
		Seq:  event.Seq,
		Pool: event.Pool,
	}
	availability := event.Availability
	switch event.Pool {
	case domain.PoolSpectators:
		message.Spectators = &availability
	case domain.PoolCandidates:
		message.Candidates = &availability
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- feedEvent{seq: event.Seq, pool: event.Pool, payload: payload}:
		return nil
	case <-h.done:
		return ErrFeedStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// subscribe registers client. When snapshot is set, its payload is the first
// message the client receives.
func (h *AvailabilityHub) subscribe(ctx context.Context, client *feedClient, snapshot snapshotFunc) error {
	sub := feedSubscription{
		client:   client,
		snapshot: snapshot,
		result:   make(chan error, 1),
	}

	select {
	case h.register <- sub:
		return <-sub.result
	case <-h.done:
		return ErrFeedStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *AvailabilityHub) unsubscribe(client *feedClient) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

type AvailabilityHandler struct {
	svc      AvailabilityService
	hub      *AvailabilityHub
	upgrader websocket.Upgrader
}

func NewAvailabilityHandler(svc AvailabilityService, hub *AvailabilityHub, allowedOrigins []string) *AvailabilityHandler {
	return &AvailabilityHandler{
		svc: svc,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}

		return false
	}
}

// HandleGetAvailability godoc
// @Summary      Get availability
// @Description  Remaining places of both pools and the active food options.
// @Tags         availability
// @Produce      json
// @Success      200  {object}  service.PublicAvailability
// @Failure      500  {object}  response.Err
// @Router       /availability [get]
func (h *AvailabilityHandler) HandleGetAvailability(ctx *gin.Context) {
	availability, err := h.svc.Availability(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, availability)
}

// HandleAvailabilityFeed godoc
// @Summary      Live availability feed
// @Description  Websocket sending a snapshot then one message per admitted or deleted registration committed after it. Messages carry a sequence number that only grows per pool.
// @Tags         availability
// @Success      101  {string}  string  "Switching Protocols"
// @Router       /availability/ws [get]
func (h *AvailabilityHandler) HandleAvailabilityFeed(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &feedClient{
		conn: conn,
		send: make(chan []byte, feedSendBuffer),
	}
	reqCtx := ctx.Request.Context()
	err = h.hub.subscribe(reqCtx, client, func() ([]byte, uint64, error) {
		return h.snapshot(reqCtx)
	})
	if err != nil {
		zap.L().Error("failed to subscribe to availability feed", zap.Error(err))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "snapshot unavailable"),
			time.Now().Add(feedWriteTimeout))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h.hub)
}

func (h *AvailabilityHandler) snapshot(ctx context.Context) ([]byte, uint64, error) {
	snapshot, err := h.svc.FeedSnapshot(ctx)
	if err != nil {
		return nil, 0, err
	}

	payload, err := json.Marshal(FeedMessage{
		Type:       feedSnapshot,
		Seq:        snapshot.Seq,
		Spectators: &snapshot.Spectators,
		Candidates: &snapshot.Candidates,
	})
	if err != nil {
		return nil, 0, err
	}

	return payload, snapshot.Seq, nil
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(feedPingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only serves to notice the peer going away.
func (c *feedClient) readPump(hub *AvailabilityHub) {
	defer func() {
		hub.unsubscribe(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(feedMaxReadBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(feedPongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(feedPongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("availability feed client closed", zap.Error(err))
			}
			return
		}
	}
}
