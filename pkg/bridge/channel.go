package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// maxLineSize bounds a single request line.
const maxLineSize = 1 << 20

// Handler processes calls read from a Channel.
type Handler interface {
	Handle(call *Call)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(call *Call)

// Handle calls f.
func (f HandlerFunc) Handle(call *Call) { f(call) }

// Channel carries requests and responses as newline-delimited JSON.
type Channel struct {
	r io.Reader

	mu  sync.Mutex
	enc *json.Encoder
}

// NewChannel creates a Channel reading requests from r and writing
// responses to w.
func NewChannel(r io.Reader, w io.Writer) *Channel {
	return &Channel{r: r, enc: json.NewEncoder(w)}
}

// Serve reads requests until r is exhausted or ctx is done, dispatching each
// to h. Responses may be written after Serve returns if calls are still
// pending.
func (c *Channel) Serve(ctx context.Context, h Handler) error {
	scanner := bufio.NewScanner(c.r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lines := make(chan []byte)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			if len(line) == 0 {
				continue
			}
			c.dispatch(line, h)
		}
	}
}

func (c *Channel) dispatch(line []byte, h Handler) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		c.Send(Response{
			Error: &ErrorBody{
				Message: fmt.Sprintf("%v: %v", ErrBadOptions, err),
				Code:    Code(ErrBadOptions),
			},
		})
		return
	}
	h.Handle(NewCall(req.CallbackID, req.Method, req.Options, c.Send))
}

// Send writes resp as one JSON line.
func (c *Channel) Send(resp Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.enc.Encode(resp)
}
