package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"acheiBack/internal/models"
)

const (
	readLimit          = 1 << 20
	readDeadline       = 120 * time.Second
	writeDeadline      = 5 * time.Second
	pingInterval       = 15 * time.Second
	firstHelloDeadline = 30 * time.Second
)

type directMsg struct {
	userID int
	msg    models.Message
}

type unreg struct {
	userID int
	conn   *websocket.Conn
}

type Client struct {
	ID     int
	Socket *websocket.Conn
}

type WebSocketManager struct {
	clients    map[int]*websocket.Conn
	direct     chan directMsg
	register   chan Client
	unregister chan unreg
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[int]*websocket.Conn),
		direct:     make(chan directMsg),
		register:   make(chan Client),
		unregister: make(chan unreg),
	}
}

// Run owns the clients map; all connection bookkeeping goes through the channels.
func (ws *WebSocketManager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, conn := range ws.clients {
				_ = conn.Close()
			}
			return

		case client := <-ws.register:
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
			}

		case dm := <-ws.direct:
			if conn, ok := ws.clients[dm.userID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(dm.msg); err != nil {
					_ = conn.Close()
					delete(ws.clients, dm.userID)
				}
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// WebSocketHandler upgrades the connection. The first frame must carry the caller's
// access token: { "token": "<jwt>" }.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("websocket upgrade: %v", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	var hello struct {
		Token string `json:"token"`
	}
	if err := conn.ReadJSON(&hello); err != nil || hello.Token == "" {
		_ = writeClose(conn, websocket.ClosePolicyViolation, "hello required")
		_ = conn.Close()
		return
	}

	claims, err := app.tokenManager.ParseClaims(hello.Token)
	if err != nil {
		_ = writeClose(conn, websocket.ClosePolicyViolation, "invalid token")
		_ = conn.Close()
		return
	}
	conn.SetReadDeadline(time.Now().Add(readDeadline))

	app.wsManager.register <- Client{ID: claims.UserID, Socket: conn}

	go app.pingLoop(conn, claims.UserID)
	go app.readLoop(conn, claims.UserID)
}

func (app *application) pingLoop(conn *websocket.Conn, userID int) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			_ = writeClose(conn, websocket.CloseGoingAway, "ping error")
			app.wsManager.unregister <- unreg{userID: userID, conn: conn}
			return
		}
	}
}

func (app *application) readLoop(conn *websocket.Conn, userID int) {
	defer func() {
		app.wsManager.unregister <- unreg{userID: userID, conn: conn}
		_ = conn.Close()
	}()

	for {
		var frame struct {
			ChatID int    `json:"chat_id"`
			Text   string `json:"text"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			_ = writeClose(conn, websocket.CloseNormalClosure, "read error")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		msg, err := app.messageService.SendMessage(ctx, frame.ChatID, userID, frame.Text)
		cancel()
		if err != nil {
			app.errorLog.Printf("websocket message from user %d: %v", userID, err)
			continue
		}

		app.wsManager.direct <- directMsg{userID: msg.ReceiverID, msg: msg}
		app.wsManager.direct <- directMsg{userID: msg.SenderID, msg: msg}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
