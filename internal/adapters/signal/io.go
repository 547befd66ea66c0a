package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/huddlelabs/huddle/internal/core"
	"github.com/huddlelabs/huddle/internal/domain"
	"github.com/huddlelabs/huddle/internal/events"
)

const writeWait = 5 * time.Second

func (ctl *SignalWSController) writePump(ctx context.Context, c *wsSignalConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, id domain.ConnID, c *wsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(id)).Msg("readPump closing")
		ctl.Orch.Disconnect(id)
		ctl.limiter.Forget(id)
		c.Close()
	}()

	readWait := ctl.PingPeriod * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("readPump read error")
				return
			}
			_ = c.conn.SetReadDeadline(time.Now().Add(readWait))
			ctl.dispatch(id, c, data)
		}
	}
}

// dispatch decodes the envelope, validates the typed payload, and hands
// it to the orchestrator. Malformed payloads answer the sender with a
// descriptive error event instead of being propagated.
func (ctl *SignalWSController) dispatch(id domain.ConnID, c *wsSignalConn, data []byte) {
	var env events.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad json")
		ctl.sendJSON(c, events.NewError("bad_payload"))
		return
	}

	switch env.Type {
	case events.TypeJoin:
		if !ctl.limiter.Allow(id) {
			log.Warn().Str("module", "signal").Str("conn", string(id)).Msg("join rate limit exceeded")
			ctl.sendJSON(c, events.NewError("too_many_join_attempts"))
			return
		}
		handle(ctl, id, c, data, ctl.Orch.Join)
	case events.TypeRelayCandidate:
		handle(ctl, id, c, data, ctl.Orch.RelayCandidate)
	case events.TypeRelaySessionDescription:
		handle(ctl, id, c, data, ctl.Orch.RelaySessionDescription)
	case events.TypeRoomAction:
		handle(ctl, id, c, data, ctl.Orch.RoomAction)
	case events.TypeRenamePeer:
		handle(ctl, id, c, data, ctl.Orch.RenamePeer)
	case events.TypePeerStatus:
		handle(ctl, id, c, data, ctl.Orch.PeerStatus)
	case events.TypePeerAction:
		handle(ctl, id, c, data, ctl.Orch.PeerAction)
	case events.TypeKick:
		handle(ctl, id, c, data, ctl.Orch.Kick)
	case events.TypeFileInfo:
		handle(ctl, id, c, data, ctl.Orch.FileInfo)
	case events.TypeFileAbort:
		handle(ctl, id, c, data, ctl.Orch.FileAbort)
	case events.TypeVideoSync:
		handle(ctl, id, c, data, ctl.Orch.VideoSync)
	case events.TypeWhiteboardSync, events.TypeWhiteboardAction:
		handle(ctl, id, c, data, func(id domain.ConnID, ev events.Whiteboard) {
			ctl.Orch.Whiteboard(id, ev, core.Frame(data))
		})
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
		ctl.sendJSON(c, events.NewError("unknown_event"))
	}
}

type validated interface {
	Validate() error
}

// handle unmarshals and validates one typed payload before invoking the
// orchestrator method for it.
func handle[T validated](ctl *SignalWSController, id domain.ConnID, c *wsSignalConn, data []byte, fn func(domain.ConnID, T)) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad payload")
		ctl.sendJSON(c, events.NewError("bad_payload"))
		return
	}
	if err := ev.Validate(); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("invalid payload")
		ctl.sendJSON(c, events.NewError(err.Error()))
		return
	}
	fn(id, ev)
}

func (ctl *SignalWSController) sendJSON(c *wsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
