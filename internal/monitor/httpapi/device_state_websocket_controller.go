package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"relay-server/internal/infra/async"
	"relay-server/internal/infra/httpserver"
	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/httpapi/internal"
	"relay-server/internal/monitor/usecases"

	"github.com/gorilla/websocket"
)

const (
	_writeWait    = 10 * time.Second
	_pongWait     = 60 * time.Second
	_pingInterval = 54 * time.Second
	_readLimit    = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type stateClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *stateClient) write(message any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(_writeWait))
	return c.conn.WriteJSON(message)
}

func (c *stateClient) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(_writeWait))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// DeviceStateWebSocketController pushes device state changes to presentation
// clients. Clients never send anything meaningful; inbound frames are drained.
type DeviceStateWebSocketController struct {
	broker       async.InternalBroker
	store        usecases.DeviceStateStore
	subscription async.Subscription
	clients      map[*websocket.Conn]*stateClient
	clientsMux   sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	done         chan struct{}
	shutdownOnce sync.Once
}

func NewDeviceStateWebSocketController(broker async.InternalBroker, store usecases.DeviceStateStore) (*DeviceStateWebSocketController, error) {
	subscription, err := broker.Subscribe(async.BrokerTopicName(usecases.DeviceStateTopic))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	wsc := &DeviceStateWebSocketController{
		broker:       broker,
		store:        store,
		subscription: subscription,
		clients:      make(map[*websocket.Conn]*stateClient),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}

	go wsc.run()

	return wsc, nil
}

var _ httpserver.Controller = (*DeviceStateWebSocketController)(nil)

func (wsc *DeviceStateWebSocketController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /ws/device/state", wsc.handleWebSocket())
}

func (wsc *DeviceStateWebSocketController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if wsc.ctx.Err() != nil {
			httpserver.ReplyWithError(w, http.StatusServiceUnavailable, "shutting down")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		slog.Info("new device state websocket connection established",
			slog.String("remote_addr", r.RemoteAddr))

		client := &stateClient{conn: conn}

		// the client lock is held until the current state is written so that
		// no pushed event overtakes it
		client.mu.Lock()
		wsc.clientsMux.Lock()
		wsc.clients[conn] = client
		total := len(wsc.clients)
		wsc.clientsMux.Unlock()
		slog.Debug("device state client registered", slog.Int("total_clients", total))

		state := wsc.store.Snapshot(r.Context())
		if state.HasSample() {
			_ = conn.SetWriteDeadline(time.Now().Add(_writeWait))
			if err := conn.WriteJSON(internal.FromSnapshot(usecases.SampleUpdatedEvent, state.Snapshot())); err != nil {
				slog.Error("failed to send current state to new client", slog.String("error", err.Error()))
			}
		}
		client.mu.Unlock()

		go wsc.handlePingPong(client)
		go wsc.handleClient(client)
	}
}

func (wsc *DeviceStateWebSocketController) handleClient(client *stateClient) {
	defer wsc.removeClient(client.conn)

	conn := client.conn
	conn.SetReadLimit(_readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(_pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(_pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("websocket read error", slog.String("error", err.Error()))
			} else {
				slog.Debug("websocket connection closed", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (wsc *DeviceStateWebSocketController) handlePingPong(client *stateClient) {
	ticker := time.NewTicker(_pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-wsc.ctx.Done():
			return
		case <-ticker.C:
			if err := client.ping(); err != nil {
				return
			}
		}
	}
}

func (wsc *DeviceStateWebSocketController) run() {
	defer close(wsc.done)

	for {
		select {
		case <-wsc.ctx.Done():
			return
		case msg, ok := <-wsc.subscription.Receiver:
			if !ok {
				return
			}
			event, ok := toStateEvent(msg)
			if !ok {
				continue
			}
			wsc.broadcast(event)
		}
	}
}

func toStateEvent(msg async.BrokerMessage) (internal.StateEvent, bool) {
	switch value := msg.Value.(type) {
	case domain.StateSnapshot:
		if msg.Event == usecases.SampleUpdatedEvent {
			return internal.FromSnapshot(msg.Event, value), true
		}
	case domain.ActuatorTransition:
		if msg.Event == usecases.ActuatorChangedEvent {
			return internal.FromTransition(msg.Event, value), true
		}
	}
	return internal.StateEvent{}, false
}

func (wsc *DeviceStateWebSocketController) broadcast(event internal.StateEvent) {
	wsc.clientsMux.RLock()
	clients := make([]*stateClient, 0, len(wsc.clients))
	for _, client := range wsc.clients {
		clients = append(clients, client)
	}
	wsc.clientsMux.RUnlock()

	for _, client := range clients {
		if err := client.write(event); err != nil {
			slog.Error("failed to write device state event",
				slog.String("event", event.Type),
				slog.String("error", err.Error()))
			wsc.removeClient(client.conn)
		}
	}
}

func (wsc *DeviceStateWebSocketController) removeClient(conn *websocket.Conn) {
	wsc.clientsMux.Lock()
	_, ok := wsc.clients[conn]
	delete(wsc.clients, conn)
	total := len(wsc.clients)
	wsc.clientsMux.Unlock()

	if ok {
		_ = conn.Close()
		slog.Debug("device state client unregistered", slog.Int("total_clients", total))
	}
}

// ClientCount returns the number of connected presentation clients.
func (wsc *DeviceStateWebSocketController) ClientCount() int {
	wsc.clientsMux.RLock()
	defer wsc.clientsMux.RUnlock()
	return len(wsc.clients)
}

func (wsc *DeviceStateWebSocketController) Shutdown() {
	wsc.shutdownOnce.Do(func() {
		slog.Info("shutting down device state websocket controller")
		wsc.cancel()
		<-wsc.done

		if err := wsc.broker.Unsubscribe(async.BrokerTopicName(usecases.DeviceStateTopic), wsc.subscription); err != nil {
			slog.Debug("unsubscribing device state controller", slog.Any("error", err))
		}

		wsc.clientsMux.Lock()
		for conn := range wsc.clients {
			_ = conn.Close()
			delete(wsc.clients, conn)
		}
		wsc.clientsMux.Unlock()
	})
}
