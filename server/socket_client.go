// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	// Queries answered but not yet written before the client is dropped.
	socketBufferSize = 64

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	debugSocket = false
)

func newUpgrader(allowOrigin func(origin string) bool) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return allowOrigin(r.Header.Get("Origin"))
		},
		HandshakeTimeout: time.Second,
		ReadBufferSize:   maxMessageSize,
		WriteBufferSize:  4096,
	}
}

// SocketClient is a middleman between the websocket connection and the hub.
type SocketClient struct {
	ClientData
	conn *websocket.Conn
	send chan outbound
	once sync.Once
}

// Create a SocketClient from a connection
func NewSocketClient(conn *websocket.Conn) *SocketClient {
	return &SocketClient{
		conn: conn,
		send: make(chan outbound, socketBufferSize),
	}
}

func (client *SocketClient) Close() {
	close(client.send)
}

func (client *SocketClient) Data() *ClientData {
	return &client.ClientData
}

func (client *SocketClient) Destroy() {
	client.once.Do(func() {
		hub := client.Hub

		// Needs to go through when called on hub goroutine.
		select {
		case hub.unregister <- client:
		default:
			go func() {
				hub.unregister <- client
			}()
		}

		_ = client.conn.Close()
	})
}

func (client *SocketClient) Init() {
	go client.writePump()
	go client.readPump()
}

// Send queues an answer. A client that stops reading its answers is dropped,
// since queries are not worth keeping like game state.
func (client *SocketClient) Send(message outbound) {
	select {
	case client.send <- message:
	default:
		if debugSocket {
			log.Println("SocketClient is not responsive")
		}
		message.Pool()
		client.Destroy()
	}
}

func (client *SocketClient) readPump() {
	defer client.Destroy()
	hub := client.Hub
	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, r, err := client.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Println("close error:", err)
			}
			break
		}

		var message Message
		if err = json.NewDecoder(r).Decode(&message); err != nil {
			log.Println("unmarshal error:", err.Error())
			break
		}

		hub.inbound <- SignedInbound{Client: client, inbound: message.Data.(inbound)}
	}
}

func (client *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)

	defer func() {
		if err := recover(); err != nil {
			if debugSocket {
				log.Println("send error:", err)
			}
		}
		pingTicker.Stop()
		client.Destroy()
	}()

	for {
		select {
		case out, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = client.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			w, err := client.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				panic(err)
			}

			// Wrap with Message to marshal type
			if err = json.NewEncoder(w).Encode(Message{Data: out}); err != nil {
				panic(err)
			}

			out.Pool()

			if err = w.Close(); err != nil {
				panic(err)
			}
		case <-pingTicker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
