package bridge

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Request is a plugin method invocation as sent by the shell.
type Request struct {
	CallbackID string          `json:"callbackId"`
	Method     string          `json:"method"`
	Options    json.RawMessage `json:"options,omitempty"`
}

// Response settles a Request.
type Response struct {
	CallbackID string     `json:"callbackId"`
	Success    bool       `json:"success"`
	Data       any        `json:"data,omitempty"`
	Error      *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a rejected call.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Call is a single in-flight plugin method call. It is settled at most once;
// later settlements are ignored.
type Call struct {
	ID       string
	Method   string
	Options  json.RawMessage
	Received time.Time

	once    sync.Once
	respond func(Response)
}

// NewCall creates a call that reports its settlement to respond. An empty
// id is replaced by a random one.
func NewCall(id, method string, options json.RawMessage, respond func(Response)) *Call {
	if id == "" {
		id = uuid.New().String()
	}
	return &Call{
		ID:       id,
		Method:   method,
		Options:  options,
		Received: time.Now(),
		respond:  respond,
	}
}

// Decode unmarshals the call options into v. Missing options decode as an
// empty object.
func (c *Call) Decode(v any) error {
	if len(c.Options) == 0 {
		return nil
	}
	if err := json.Unmarshal(c.Options, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadOptions, err)
	}
	return nil
}

// Resolve settles the call successfully with data.
func (c *Call) Resolve(data any) {
	if data == nil {
		data = struct{}{}
	}
	c.settle(Response{CallbackID: c.ID, Success: true, Data: data})
}

// Reject settles the call with err.
func (c *Call) Reject(err error) {
	c.settle(Response{
		CallbackID: c.ID,
		Error: &ErrorBody{
			Message: err.Error(),
			Code:    Code(err),
		},
	})
}

func (c *Call) settle(resp Response) {
	c.once.Do(func() {
		if c.respond != nil {
			c.respond(resp)
		}
	})
}
