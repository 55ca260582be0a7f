// Package offload keeps expensive decodes off the calling goroutine.
//
// Detection and small decodes are cheap enough to run inline. Multi-variant
// LZ-string attempts and large JSON re-indents on payloads past ~100KB are
// not, so a Pool runs those on worker goroutines behind a correlated
// request/response envelope. Every request carries its own ID and reply
// channel, so concurrent decodes cannot cross-match replies, and every wait
// is bounded by the caller's context or a default timeout.
package offload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stashlens/cli/pkg/codec"
)

// DefaultThreshold is the payload length above which DecodeValue routes
// through the pool instead of decoding inline. Strictly greater-than: a
// payload of exactly the threshold decodes inline.
const DefaultThreshold = 100_000

// DefaultTimeout bounds a Decode whose context carries no deadline, so a
// wedged worker surfaces as an error instead of a hang.
const DefaultTimeout = 30 * time.Second

// OpDecode is the only operation the pool serves.
const OpDecode = "DECODE"

// ErrClosed is returned for requests issued against a closed pool.
var ErrClosed = errors.New("offload: pool closed")

// Request is a decode job envelope. ID correlates the eventual Response.
type Request struct {
	ID        uuid.UUID `json:"id"`
	Op        string    `json:"type"`
	CodecName string    `json:"codecName"`
	Payload   string    `json:"payload"`
}

// Response is the reply to exactly one Request.
type Response struct {
	ID      uuid.UUID `json:"id"`
	Success bool      `json:"success"`
	Result  string    `json:"result,omitempty"`
	Error   string    `json:"error,omitempty"`
}

type job struct {
	req   Request
	reply chan Response
}

// Config configures a Pool. Zero values pick the defaults.
type Config struct {
	Workers   int
	Threshold int
	Timeout   time.Duration
}

// Pool owns a fixed set of worker goroutines sharing one codec registry.
// Construct with NewPool and release with Close; there is no package-level
// shared instance.
type Pool struct {
	registry  *codec.Registry
	jobs      chan job
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	threshold int
	timeout   time.Duration
}

// NewPool starts cfg.Workers goroutines (default 4) serving decode requests
// against reg.
func NewPool(reg *codec.Registry, cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	p := &Pool{
		registry:  reg,
		jobs:      make(chan job),
		done:      make(chan struct{}),
		threshold: cfg.Threshold,
		timeout:   cfg.Timeout,
	}
	for i := 0; i < cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Threshold returns the inline-vs-pool payload length cutoff.
func (p *Pool) Threshold() int { return p.threshold }

// Decode runs codecName's decoder on payload in the pool and waits for the
// correlated reply. The wait is bounded by ctx, or by the pool's timeout
// when ctx has no deadline; an unanswered request is a transport error, and
// a late reply to an abandoned request is dropped.
func (p *Pool) Decode(ctx context.Context, codecName, payload string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	j := job{
		req: Request{ID: uuid.New(), Op: OpDecode, CodecName: codecName, Payload: payload},
		// buffered so a worker replying after the caller gave up never blocks
		reply: make(chan Response, 1),
	}

	select {
	case p.jobs <- j:
	case <-p.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", fmt.Errorf("offload decode: %w", ctx.Err())
	}

	select {
	case resp := <-j.reply:
		if resp.ID != j.req.ID {
			return "", fmt.Errorf("offload decode: response %s does not match request %s", resp.ID, j.req.ID)
		}
		if !resp.Success {
			return "", fmt.Errorf("offload decode: %s", resp.Error)
		}
		return resp.Result, nil
	case <-ctx.Done():
		return "", fmt.Errorf("offload decode: %w", ctx.Err())
	}
}

// DecodeValue decodes value with c, routing through the pool only when the
// payload is strictly larger than the threshold.
func (p *Pool) DecodeValue(ctx context.Context, c codec.Codec, value string) (string, error) {
	if len(value) <= p.threshold {
		return c.Decode(value), nil
	}
	return p.Decode(ctx, c.Name(), value)
}

// Close stops the workers and fails any request issued afterwards. It is
// safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() { close(p.done) })
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case j := <-p.jobs:
			j.reply <- p.handle(j.req)
		}
	}
}

// handle performs one decode. An unknown codec name passes the payload
// through unchanged, matching the registry's no-codec behavior.
func (p *Pool) handle(req Request) Response {
	if req.Op != OpDecode {
		return Response{ID: req.ID, Success: false, Error: fmt.Sprintf("unsupported operation %q", req.Op)}
	}
	c, ok := p.registry.Get(req.CodecName)
	if !ok {
		return Response{ID: req.ID, Success: true, Result: req.Payload}
	}
	return Response{ID: req.ID, Success: true, Result: c.Decode(req.Payload)}
}
