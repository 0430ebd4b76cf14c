// Package live pushes scene snapshots to websocket clients of the
// inspector, so a connected view follows mutations without polling.
package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mogaika/scenemath/utils"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[live] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[live] ws write ping error: %v", err)
				return
			}
		}
	}
}

// NewClient starts serving a freshly upgraded connection. The last
// broadcast snapshot is replayed so the client starts in sync.
func NewClient(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, 32)}
	registerClient(c)
	go c.writePump()

	globalLock.Lock()
	defer globalLock.Unlock()
	if lastSnapshot != nil {
		c.send <- lastSnapshot
	}
}

var broadcastList = make(map[*client]bool)
var globalLock sync.Mutex
var lastSnapshot []byte

func registerClient(c *client) {
	globalLock.Lock()
	defer globalLock.Unlock()
	broadcastList[c] = true
}

func unregisterClient(c *client) {
	globalLock.Lock()
	defer globalLock.Unlock()
	delete(broadcastList, c)
}

// Broadcast marshals a snapshot and fans it out to every connected
// client. Clients that cannot keep up drop intermediate snapshots.
func Broadcast(snapshot interface{}) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("[live] snapshot marshal error: %v\n%s", err, utils.SDump(snapshot))
		return
	}

	globalLock.Lock()
	defer globalLock.Unlock()
	lastSnapshot = data
	for c := range broadcastList {
		select {
		case c.send <- data:
		default:
		}
	}
}
