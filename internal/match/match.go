// Package match runs one coordination episode as an actor: observations come
// in through the inbox, a ticker drives the control cycle and every cycle's
// result is broadcast to subscribers.
package match

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
	"github.com/DoyleJ11/ball-contest-support/internal/logging"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

var ErrClosed = errors.New("match closed")

type Snapshot struct {
	Code    string
	Cycle   int
	Enabled bool
	Frame
}

type View struct {
	Cycle      int
	NumClients int
	Enabled    bool
	Latest     Snapshot
}

type Options struct {
	Code   string
	Tuning config.Tuning
	// ControlCycle is the ticker period. Zero disables the ticker and cycles
	// only run on Tick.
	ControlCycle time.Duration
	Logger       *zap.Logger
}

type Match struct {
	code     string
	inbox    chan Msg
	pipeline *Pipeline
	period   time.Duration
	log      *zap.Logger

	obs     world.Observation
	views   map[int][]world.Agent
	dirty   bool
	cycle   int
	latest  Snapshot
	clients map[string]chan Snapshot

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, opts Options) *Match {
	ctx, cancel := context.WithCancel(parent)
	m := &Match{
		code:     opts.Code,
		inbox:    make(chan Msg, 64),
		pipeline: NewPipeline(opts.Tuning),
		period:   opts.ControlCycle,
		log:      logging.OrNop(opts.Logger).With(zap.String("match", opts.Code)),
		clients:  make(map[string]chan Snapshot),
		ctx:      ctx,
		cancel:   cancel,
	}
	m.latest = Snapshot{Code: m.code, Enabled: m.pipeline.Enabled(), Frame: Frame{Status: m.pipeline.Status()}}
	go m.loop()
	return m
}

func (m *Match) Code() string { return m.code }

func (m *Match) Inbox() chan<- Msg { return m.inbox }

// Done is closed once the actor has stopped.
func (m *Match) Done() <-chan struct{} { return m.ctx.Done() }

// Send delivers msg unless the match or ctx is finished first.
func (m *Match) Send(ctx context.Context, msg Msg) error {
	if m.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case m.inbox <- msg:
		return nil
	case <-m.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State asks the actor for its current view.
func (m *Match) State(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := m.Send(ctx, GetState{Reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-m.ctx.Done():
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

func (m *Match) loop() {
	var tick <-chan time.Time
	if m.period > 0 {
		ticker := time.NewTicker(m.period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-m.ctx.Done():
			m.shutdown()
			return

		case <-tick:
			m.runCycle()

		case msg := <-m.inbox:
			switch msg := msg.(type) {
			case Observe:
				m.obs = msg.Obs
				m.views = msg.Views
				m.dirty = true

			case SetEnabled:
				if m.pipeline.Enabled() != msg.Enabled {
					m.pipeline.SetEnabled(msg.Enabled)
					m.dirty = true
					m.log.Info("support coordination toggled", zap.Bool("enabled", msg.Enabled))
				}

			case Tick:
				m.runCycle()

			case Join:
				m.clients[msg.ClientID] = msg.Outbox
				select {
				case msg.Outbox <- m.latest:
				default:
				}

			case Leave:
				if ch, ok := m.clients[msg.ClientID]; ok {
					close(ch)
					delete(m.clients, msg.ClientID)
				}

			case GetState:
				msg.Reply <- View{
					Cycle:      m.cycle,
					NumClients: len(m.clients),
					Enabled:    m.pipeline.Enabled(),
					Latest:     m.latest,
				}

			case Shutdown:
				m.shutdown()
				return
			}
		}
	}
}

// runCycle only does work when something changed since the last cycle; the
// pipeline is a pure function of its inputs so a repeat would be a no-op.
func (m *Match) runCycle() {
	if !m.dirty {
		return
	}
	m.dirty = false
	frame := m.pipeline.Cycle(m.obs, m.views)
	m.cycle++
	for _, ev := range frame.Events {
		m.log.Info("contest event",
			zap.String("event", string(ev.Type)),
			zap.Int("player", ev.Player),
			zap.String("state", string(ev.State)),
		)
	}
	if len(frame.Supporters) > 1 {
		m.log.Debug("agents disagree on supporter", zap.Ints("supporters", frame.Supporters))
	}
	m.latest = Snapshot{Code: m.code, Cycle: m.cycle, Enabled: m.pipeline.Enabled(), Frame: frame}
	m.broadcast(m.latest)
}

func (m *Match) shutdown() {
	for id, ch := range m.clients {
		close(ch)
		delete(m.clients, id)
	}
	m.cancel()
}

func (m *Match) broadcast(snap Snapshot) {
	for id, ch := range m.clients {
		select {
		case ch <- snap:
		default:
			m.log.Warn("dropping slow subscriber", zap.String("client", id))
			close(ch)
			delete(m.clients, id)
		}
	}
}
