package transport

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	applog "github.com/saskaZs/fft-visualization/internal/log"
)

// spectrumFrame is the JSON payload broadcast to clients.
type spectrumFrame struct {
	Type       string    `json:"type"`
	Magnitudes []float64 `json:"magnitudes"`
}

// WebSocketTransport broadcasts magnitude frames to connected WebSocket
// clients. Frames are queued on a buffered channel and dropped when the
// queue is full, so the frame loop never blocks on the network.
type WebSocketTransport struct {
	addr      string
	upgrader  websocket.Upgrader
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
	broadcast chan spectrumFrame
	server    *http.Server

	// Guards broadcast against sends racing Close.
	sendMu sync.RWMutex
	closed bool
}

// NewWebSocketTransport creates the transport and starts its HTTP
// server; the spectrum is served on /spectrum.
func NewWebSocketTransport(addr string) *WebSocketTransport {
	wst := &WebSocketTransport{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local tooling, any origin
			},
		},
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan spectrumFrame, 256),
	}

	wst.start()
	return wst
}

func (wst *WebSocketTransport) start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/spectrum", wst.handleWebSocket)

	wst.server = &http.Server{
		Addr:    wst.addr,
		Handler: mux,
	}

	go func() {
		applog.Infof("Transport: WebSocket server listening on %s", wst.addr)
		if err := wst.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			applog.Errorf("Transport: server error: %v", err)
		}
	}()

	go wst.handleBroadcasts()
}

func (wst *WebSocketTransport) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wst.upgrader.Upgrade(w, r, nil)
	if err != nil {
		applog.Errorf("Transport: upgrade error: %v", err)
		return
	}

	wst.clientsMu.Lock()
	wst.clients[conn] = true
	total := len(wst.clients)
	wst.clientsMu.Unlock()
	applog.Infof("Transport: client connected, total: %d", total)

	// Reads are only used to detect disconnects; drain inbound
	// messages until the connection errors.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		wst.clientsMu.Lock()
		delete(wst.clients, conn)
		total := len(wst.clients)
		wst.clientsMu.Unlock()
		conn.Close()
		applog.Infof("Transport: client disconnected, total: %d", total)
	}()
}

func (wst *WebSocketTransport) handleBroadcasts() {
	for frame := range wst.broadcast {
		wst.clientsMu.Lock()
		for client := range wst.clients {
			if err := client.WriteJSON(frame); err != nil {
				applog.Errorf("Transport: error sending to client: %v", err)
				client.Close()
				delete(wst.clients, client)
			}
		}
		wst.clientsMu.Unlock()
	}
}

// Send queues one magnitude frame for broadcast. The slice is copied
// because the analyzer reuses its buffer every frame. A full queue
// drops the frame silently.
func (wst *WebSocketTransport) Send(magnitudes []float64) error {
	wst.sendMu.RLock()
	defer wst.sendMu.RUnlock()
	if wst.closed {
		return nil
	}

	frame := spectrumFrame{
		Type:       "spectrum",
		Magnitudes: make([]float64, len(magnitudes)),
	}
	copy(frame.Magnitudes, magnitudes)

	select {
	case wst.broadcast <- frame:
	default:
		// Queue full, drop this frame.
	}
	return nil
}

// Close shuts down the server, disconnects all clients and stops the
// broadcast goroutine. Safe to call more than once.
func (wst *WebSocketTransport) Close() error {
	applog.Infof("Transport: closing WebSocket server")

	// Stop accepting frames before closing the channel so Send can
	// never write to a closed channel.
	wst.sendMu.Lock()
	if !wst.closed {
		wst.closed = true
		close(wst.broadcast)
	}
	wst.sendMu.Unlock()

	wst.clientsMu.Lock()
	for client := range wst.clients {
		client.Close()
	}
	wst.clients = make(map[*websocket.Conn]bool)
	wst.clientsMu.Unlock()

	if wst.server != nil {
		return wst.server.Close()
	}
	return nil
}

// Ensure WebSocketTransport satisfies the interface.
var _ Transport = (*WebSocketTransport)(nil)
