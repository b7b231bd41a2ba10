package gateway

import (
	"encoding/json"
)

// Action selects the operation a request performs.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionRead   Action = "READ"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionLogin  Action = "LOGIN"
)

// Request is the body accepted by the gateway endpoint.
type Request struct {
	Action   Action         `json:"action"`
	Table    string         `json:"table"`
	ID       any            `json:"id,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Email    string         `json:"email,omitempty"`
	Password string         `json:"password,omitempty"`
}

// CreatedData is returned by a successful CREATE.
type CreatedData struct {
	ID int64 `json:"id"`
}

// Envelope wraps every gateway response.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Kind      string `json:"kind,omitempty"`
	Timestamp string `json:"timestamp"`
}

// DecodeData re-decodes Data into v, e.g. on the client side.
func (e *Envelope) DecodeData(v any) error {
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
