package hub

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
	"github.com/DoyleJ11/ball-contest-support/internal/logging"
	"github.com/DoyleJ11/ball-contest-support/internal/match"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchExists   = errors.New("match already exists")
	ErrHubClosed     = errors.New("hub closed")
)

type HubMsg interface{ isHubMsg() }

type CreateMatch struct {
	Code   string
	Tuning config.Tuning
	Reply  chan CreateResult
}

type CreateResult struct {
	Match *match.Match
	Err   error
}

type GetMatch struct {
	Code  string
	Reply chan *match.Match
}

type EnsureMatch struct {
	Code   string
	Tuning config.Tuning // only used if creation happens
	Reply  chan *match.Match
}

type RemoveMatch struct {
	Code string
}

type ListMatches struct {
	Reply chan []string
}

type ShutdownHub struct{}

func (CreateMatch) isHubMsg() {}
func (GetMatch) isHubMsg()    {}
func (EnsureMatch) isHubMsg() {}
func (RemoveMatch) isHubMsg() {}
func (ListMatches) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox   chan HubMsg
	matches map[string]*match.Match
	cycle   time.Duration
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewHub starts the registry. Every match it creates ticks at controlCycle.
func NewHub(parent context.Context, controlCycle time.Duration, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		matches: make(map[string]*match.Match),
		cycle:   controlCycle,
		log:     logging.OrNop(logger),
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) Done() <-chan struct{} { return h.ctx.Done() }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateMatch:
				if h.matches[msg.Code] != nil {
					msg.Reply <- CreateResult{Err: ErrMatchExists}
					break
				}
				msg.Reply <- CreateResult{Match: h.start(msg.Code, msg.Tuning)}

			case GetMatch:
				msg.Reply <- h.matches[msg.Code] // may be nil

			case EnsureMatch:
				if m := h.matches[msg.Code]; m != nil {
					msg.Reply <- m
					break
				}
				msg.Reply <- h.start(msg.Code, msg.Tuning)

			case RemoveMatch:
				if m := h.matches[msg.Code]; m != nil {
					stop(m)
					delete(h.matches, msg.Code)
					h.log.Info("match removed", zap.String("match", msg.Code))
				}

			case ListMatches:
				codes := make([]string, 0, len(h.matches))
				for code := range h.matches {
					codes = append(codes, code)
				}
				sort.Strings(codes)
				msg.Reply <- codes

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) start(code string, t config.Tuning) *match.Match {
	m := match.New(h.ctx, match.Options{Code: code, Tuning: t, ControlCycle: h.cycle, Logger: h.log})
	h.matches[code] = m
	h.log.Info("match created", zap.String("match", code), zap.String("detector", string(t.Engine.Strategy)))
	return m
}

func (h *Hub) shutdown() {
	for _, m := range h.matches {
		stop(m)
	}
	clear(h.matches)
	h.cancel()
}

// stop asks a match to shut down without blocking on one that already has.
func stop(m *match.Match) {
	select {
	case m.Inbox() <- match.Shutdown{}:
	case <-m.Done():
	}
}

func (h *Hub) send(ctx context.Context, msg HubMsg) error {
	if h.ctx.Err() != nil {
		return ErrHubClosed
	}
	select {
	case h.inbox <- msg:
		return nil
	case <-h.ctx.Done():
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func await[T any](ctx context.Context, h *Hub, reply <-chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-h.ctx.Done():
		return zero, ErrHubClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Create starts a new match under code, failing if one is already running.
func (h *Hub) Create(ctx context.Context, code string, t config.Tuning) (*match.Match, error) {
	reply := make(chan CreateResult, 1)
	if err := h.send(ctx, CreateMatch{Code: code, Tuning: t, Reply: reply}); err != nil {
		return nil, err
	}
	res, err := await(ctx, h, reply)
	if err != nil {
		return nil, err
	}
	return res.Match, res.Err
}

// Ensure returns the match under code, starting it with t if none runs yet.
func (h *Hub) Ensure(ctx context.Context, code string, t config.Tuning) (*match.Match, error) {
	reply := make(chan *match.Match, 1)
	if err := h.send(ctx, EnsureMatch{Code: code, Tuning: t, Reply: reply}); err != nil {
		return nil, err
	}
	return await(ctx, h, reply)
}

func (h *Hub) Get(ctx context.Context, code string) (*match.Match, error) {
	reply := make(chan *match.Match, 1)
	if err := h.send(ctx, GetMatch{Code: code, Reply: reply}); err != nil {
		return nil, err
	}
	m, err := await(ctx, h, reply)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

func (h *Hub) List(ctx context.Context) ([]string, error) {
	reply := make(chan []string, 1)
	if err := h.send(ctx, ListMatches{Reply: reply}); err != nil {
		return nil, err
	}
	return await(ctx, h, reply)
}

func (h *Hub) Remove(ctx context.Context, code string) error {
	return h.send(ctx, RemoveMatch{Code: code})
}
