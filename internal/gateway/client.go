// Package gateway implements the directory contract over a WebSocket
// connection to the chat gateway that owns the live resource graph.
//
// Requests carry a correlation ID and are answered out of order; a background
// read loop routes each response to the waiting caller. Move requests are the
// exception: they are written without a correlation ID and never answered,
// the gateway queues and applies them asynchronously.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/hpungsan/lineup/internal/directory"
)

// DefaultTimeout bounds how long a request waits for its response.
const DefaultTimeout = 30 * time.Second

// Client is a Directory backed by a gateway WebSocket connection.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	timeout time.Duration
	log     zerolog.Logger

	pendingMu sync.RWMutex
	pending   map[string]chan response

	closeOnce sync.Once
	closed    chan struct{}
}

var _ directory.Directory = (*Client)(nil)

// Dial connects to the gateway. An empty token skips authentication.
func Dial(url, token string, log zerolog.Logger) (*Client, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		return nil, fmt.Errorf("gateway dial %s: %w", url, err)
	}

	c := &Client{
		conn:    conn,
		timeout: DefaultTimeout,
		log:     log,
		pending: make(map[string]chan response),
		closed:  make(chan struct{}),
	}
	go c.readLoop()

	log.Debug().Str("url", url).Msg("gateway connected")
	return c, nil
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.timeout = d
}

// Close sends a close frame and tears down the connection.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}

// readLoop routes responses to pending requests until the connection dies.
func (c *Client) readLoop() {
	for {
		var res response
		if err := c.conn.ReadJSON(&res); err != nil {
			select {
			case <-c.closed:
			default:
				c.log.Debug().Err(err).Msg("gateway read loop ended")
			}
			return
		}
		if res.ID == "" {
			continue
		}

		c.pendingMu.RLock()
		ch, ok := c.pending[res.ID]
		c.pendingMu.RUnlock()
		if !ok {
			c.log.Debug().Str("id", res.ID).Msg("response for unknown request")
			continue
		}
		ch <- res
	}
}

// write serializes one frame onto the connection.
func (c *Client) write(req request) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(req)
}

// rpc issues a correlated request and decodes its result into out.
// A null result leaves out untouched, which callers use for "not found".
func (c *Client) rpc(ctx context.Context, op string, p params, out any) error {
	id := uuid.NewString()
	ch := make(chan response, 1)

	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	if err := c.write(request{ID: id, Op: op, Params: p}); err != nil {
		return fmt.Errorf("gateway %s: %w", op, err)
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.Error != nil {
			return res.Error
		}
		if out != nil && len(res.Result) > 0 && string(res.Result) != "null" {
			if err := json.Unmarshal(res.Result, out); err != nil {
				return fmt.Errorf("gateway %s: decode result: %w", op, err)
			}
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("gateway %s: timed out after %s", op, c.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Groups implements directory.Directory.
func (c *Client) Groups(ctx context.Context, workspace string) ([]directory.Group, error) {
	var groups []directory.Group
	err := c.rpc(ctx, "groups", params{Workspace: workspace}, &groups)
	return groups, err
}

// ResolveGroup implements directory.Directory.
// A token that matches nothing yields (nil, nil).
func (c *Client) ResolveGroup(ctx context.Context, workspace, token string) (*directory.Group, error) {
	var g *directory.Group
	p := params{Workspace: workspace, Token: directory.NormalizeToken(token)}
	if err := c.rpc(ctx, "resolve_group", p, &g); err != nil {
		return nil, err
	}
	return g, nil
}

// Items implements directory.Directory; the gateway returns items ordered by
// current position.
func (c *Client) Items(ctx context.Context, workspace, groupID string, kind directory.Kind) ([]directory.Item, error) {
	var items []directory.Item
	p := params{Workspace: workspace, GroupID: groupID, Kind: kind}
	err := c.rpc(ctx, "items", p, &items)
	return items, err
}

// ResolveItem implements directory.Directory.
// A token that matches nothing yields (nil, nil).
func (c *Client) ResolveItem(ctx context.Context, workspace, token string, kind directory.Kind) (*directory.Item, error) {
	var item *directory.Item
	p := params{Workspace: workspace, Token: directory.NormalizeToken(token), Kind: kind}
	if err := c.rpc(ctx, "resolve_item", p, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// Self implements directory.Directory.
func (c *Client) Self(ctx context.Context, workspace string) (*directory.Actor, error) {
	var actor *directory.Actor
	if err := c.rpc(ctx, "self", params{Workspace: workspace}, &actor); err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, fmt.Errorf("gateway self: no actor for workspace %q", workspace)
	}
	return actor, nil
}

// Move implements directory.Directory. The frame carries no correlation ID
// and the gateway never answers it: the call returns once the request is on
// the wire, and an error reports only a failure to issue.
func (c *Client) Move(ctx context.Context, workspace, itemID, groupID string, position int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pos := position
	req := request{Op: "move", Params: params{
		Workspace: workspace,
		ItemID:    itemID,
		GroupID:   groupID,
		Position:  &pos,
	}}

	c.log.Debug().
		Str("workspace", workspace).
		Str("item", itemID).
		Str("group", groupID).
		Int("position", position).
		Msg("issuing move")

	if err := c.write(req); err != nil {
		return fmt.Errorf("gateway move: %w", err)
	}
	return nil
}
