package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/hpungsan/lineup/internal/directory"
)

// request is one outbound frame. Correlated requests carry an ID; move
// frames omit it.
type request struct {
	ID     string `json:"id,omitempty"`
	Op     string `json:"op"`
	Params params `json:"params"`
}

// params is the union of all request parameters; unused fields stay off
// the wire.
type params struct {
	Workspace string         `json:"workspace,omitempty"`
	GroupID   string         `json:"group_id,omitempty"`
	Token     string         `json:"token,omitempty"`
	Kind      directory.Kind `json:"kind,omitempty"`
	ItemID    string         `json:"item_id,omitempty"`
	Position  *int           `json:"position,omitempty"`
}

// response is one inbound frame, matched to its request by ID.
type response struct {
	ID     string          `json:"id"`
	Error  *wireError      `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *wireError) Error() string {
	return fmt.Sprintf("gateway error %s: %s", e.Code, e.Message)
}
