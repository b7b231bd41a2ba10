package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/slog"

	"telemim/internal/domain/apperr"
	"telemim/internal/domain/sheet"
	"telemim/internal/domain/user"
)

var (
	ErrInvalidAction = errors.New(MsgInvalidAction)
	ErrTrailingData  = errors.New("unexpected data after JSON value")
)

// Dispatcher routes a raw request body to the matching operation and always
// answers with an envelope.
type Dispatcher struct {
	sheets sheet.Servicer
	users  user.Servicer
	format *Formatter
	log    *slog.Logger
}

func NewDispatcher(sheets sheet.Servicer, users user.Servicer, format *Formatter, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sheets: sheets,
		users:  users,
		format: format,
		log:    log.With("component", "dispatcher"),
	}
}

// Dispatch never fails: parse errors, domain errors and panics are all
// reported through the envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) (env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("panic while dispatching", "panic", r)
			env = d.format.Failure(apperr.KindStorageFault, fmt.Sprintf("error: %v", r))
		}
	}()

	req, err := DecodeRequest(body)
	if err != nil {
		d.log.Debug("malformed request body", "error", err)
		return d.format.Failure(apperr.KindValidation, "error: "+err.Error())
	}

	return d.Handle(ctx, req)
}

// Handle executes an already decoded request.
func (d *Dispatcher) Handle(ctx context.Context, req Request) Envelope {
	log := d.log.With("action", req.Action, "table", req.Table)

	switch req.Action {
	case ActionCreate:
		id, err := d.sheets.Create(ctx, req.Table, req.Data)
		if err != nil {
			return d.failure(log, err)
		}
		return d.format.Success(MsgCreated, CreatedData{ID: id})

	case ActionRead:
		records, err := d.sheets.Read(ctx, req.Table)
		if err != nil {
			return d.failure(log, err)
		}
		return d.format.Success(MsgRead, records)

	case ActionUpdate:
		if err := d.sheets.Update(ctx, req.Table, req.ID, req.Data); err != nil {
			return d.failure(log, err)
		}
		return d.format.Success(MsgUpdated, nil)

	case ActionDelete:
		if err := d.sheets.Delete(ctx, req.Table, req.ID); err != nil {
			return d.failure(log, err)
		}
		return d.format.Success(MsgDeleted, nil)

	case ActionLogin:
		rec, err := d.users.Login(ctx, user.Credentials{Email: req.Email, Password: req.Password})
		if err != nil {
			return d.failure(log, err)
		}
		return d.format.Success(MsgLoggedIn, rec)

	default:
		log.Debug("unknown action")
		return d.format.Failure(apperr.KindInvalidAction, MsgInvalidAction)
	}
}

func (d *Dispatcher) failure(log *slog.Logger, err error) Envelope {
	kind := apperr.KindOf(err)
	if kind != apperr.KindStorageFault {
		log.Debug("request rejected", "kind", kind, "error", err)
		return d.format.Failure(kind, err.Error())
	}

	log.Error("request failed", "error", err)
	return d.format.Failure(kind, "error: "+err.Error())
}

// DecodeRequest parses a request body keeping numbers as json.Number so
// identifiers survive without float rounding.
func DecodeRequest(body []byte) (Request, error) {
	var req Request
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Request{}, fmt.Errorf("decode request: %w", ErrTrailingData)
	}
	return req, nil
}
