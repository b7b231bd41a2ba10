package gateway

import "telemim/internal/domain/gateway"

// execInput keeps the body raw: malformed JSON must still produce an envelope.
type execInput struct {
	RawBody []byte
}

type execOutput struct {
	Body gateway.Envelope
}
