package main

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"helios/server/protocol"
)

const writeWait = 10 * time.Second

// Hub owns every live session and spawns one broadcast loop per connection.
type Hub struct {
	mu            sync.Mutex
	world         *World
	sessions      map[string]*session
	broadcastRate int
	metrics       *Metrics
}

// session ties one websocket connection to one ship. The ship itself lives
// in the world; the session holds only the id and looks the ship up per
// iteration, so a closed session can never reach a stale ship.
type session struct {
	shipID  string
	conn    *websocket.Conn
	writeMu sync.Mutex
	cancel  context.CancelFunc
}

// write sends one text frame under the session's write mutex so the
// broadcast loop and any future ad hoc sends never interleave.
func (s *session) write(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func newHub(world *World, broadcastRate int, metrics *Metrics) *Hub {
	return &Hub{
		world:         world,
		sessions:      make(map[string]*session),
		broadcastRate: broadcastRate,
		metrics:       metrics,
	}
}

// Connect creates a ship for a freshly upgraded connection, registers the
// session under the ship's id, and starts its broadcast loop.
func (h *Hub) Connect(ctx context.Context, conn *websocket.Conn) (*session, error) {
	shipID, err := h.world.AddShip()
	if err != nil {
		return nil, err
	}

	sessCtx, cancel := context.WithCancel(ctx)
	sess := &session{shipID: shipID, conn: conn, cancel: cancel}

	h.mu.Lock()
	h.sessions[shipID] = sess
	h.mu.Unlock()
	h.metrics.SessionOpened()

	go h.runBroadcast(sessCtx, sess)
	return sess, nil
}

// Disconnect tears one session down: stop its broadcast loop, drop the
// session entry, then remove the ship so no later command can find it. Safe
// to call more than once.
func (h *Hub) Disconnect(shipID string) {
	h.mu.Lock()
	sess, ok := h.sessions[shipID]
	if ok {
		delete(h.sessions, shipID)
	}
	h.mu.Unlock()

	if !ok {
		return
	}

	sess.cancel()
	h.world.RemoveShip(shipID)
	sess.conn.Close()
	h.metrics.SessionClosed()
	log.Printf("websocket closed, ship %s", shipID)
}

// SessionCount reports the number of open sessions.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// runRead consumes inbound frames until the connection drops, applying valid
// control commands to the session's ship. Malformed frames are logged and
// skipped; the connection stays up.
func (h *Hub) runRead(sess *session) {
	defer h.Disconnect(sess.shipID)

	for {
		_, payload, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}

		cmd, err := protocol.ParseCommand(payload)
		if err != nil {
			log.Printf("discarding malformed frame from %s: %v", sess.shipID, err)
			continue
		}
		if err := applyCommand(h.world, sess.shipID, cmd); err != nil {
			log.Printf("rejecting command from %s: %v", sess.shipID, err)
		}
	}
}

// runBroadcast pushes a fresh world frame to one client at the configured
// cadence until the session ends. Snapshots are copied out under the world
// lock before the send, so a slow client never blocks the clock or another
// session.
func (h *Hub) runBroadcast(ctx context.Context, sess *session) {
	ticker := time.NewTicker(time.Second / time.Duration(h.broadcastRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			own, ok := h.world.GetShip(sess.shipID)
			if !ok {
				return
			}

			msg := stateMessage{
				Planets: h.world.SnapshotPositions(),
				Ship:    own,
				Ships:   h.world.SnapshotShips(),
			}
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("failed to marshal state for %s: %v", sess.shipID, err)
				continue
			}

			if err := sess.write(data); err != nil {
				log.Printf("failed to send update to %s: %v", sess.shipID, err)
				h.Disconnect(sess.shipID)
				return
			}
			h.metrics.ObserveBroadcast(len(data))
		}
	}
}
