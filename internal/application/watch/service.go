// Package watch runs the naming event loop: it feeds session events into a
// tracker, starts generations when a session crosses its threshold, and
// applies finished generations back on the loop goroutine.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/doeshing/termnamer/internal/application/rename"
	"github.com/doeshing/termnamer/internal/application/tracker"
	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/infrastructure/events"
	"github.com/doeshing/termnamer/internal/ports"
)

// Service wires an event stream to the naming core.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Renamer        *rename.Service
	Logger         *zap.Logger
	// OnRenamed, when set, observes every applied name on the loop goroutine.
	OnRenamed func(id domain.SessionID, result domain.GenerationResult)
	// OnOpened receives ids generated for bare open events so the host can
	// address those sessions later.
	OnOpened func(id domain.SessionID)
}

type outcome struct {
	id     domain.SessionID
	result domain.GenerationResult
	err    error
	manual bool
}

type loop struct {
	svc      *Service
	ctx      context.Context
	logger   *zap.Logger
	tracker  *tracker.Tracker
	bus      *events.Bus
	auto     bool
	inflight int
	outcomes chan outcome
}

// Run consumes events from r until EOF or ctx is cancelled. Generations
// still in flight when input ends are awaited before Run returns.
func (s *Service) Run(ctx context.Context, r io.Reader) error {
	if s.ConfigProvider == nil || s.Renamer == nil {
		return errors.New("watch.Service dependencies not satisfied")
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	l := &loop{
		svc:      s,
		ctx:      ctx,
		logger:   logger,
		bus:      events.NewBus(),
		auto:     cfg.AutoRenameEnabled(),
		outcomes: make(chan outcome),
	}
	l.tracker = tracker.New(tracker.Options{
		Threshold:   cfg.Threshold(),
		AutoRename:  l.autoRename,
		OnThreshold: l.startAuto,
		Logger:      logger.Named("tracker"),
	})
	l.tracker.Attach(l.bus)
	defer l.tracker.Dispose()

	eventsCh := make(chan events.Event)
	readErr := make(chan error, 1)
	go func() {
		defer close(eventsCh)
		reader := events.NewReader(r, logger)
		for {
			ev, err := reader.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
			select {
			case eventsCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	logger.Info("watching session events",
		zap.Int("threshold", l.tracker.Threshold()),
		zap.Bool("auto_rename", l.auto),
	)

	in := eventsCh
	done := ctx.Done()
	for in != nil || l.inflight > 0 {
		select {
		case ev, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			l.handle(ev)
		case out := <-l.outcomes:
			l.inflight--
			l.finish(out)
		case <-done:
			// In-flight generations see the same context and return promptly.
			in = nil
			done = nil
		}
	}

	select {
	case err := <-readErr:
		return fmt.Errorf("read events: %w", err)
	default:
	}
	return ctx.Err()
}

func (l *loop) handle(ev events.Event) {
	if l.bus.Publish(ev) {
		if ev.Assigned {
			l.announce(ev.SessionID)
		}
		return
	}
	switch ev.Kind {
	case events.KindRename:
		if ev.SessionID == events.AllSessions {
			started := 0
			for _, id := range l.tracker.Sessions() {
				if commands := l.tracker.Commands(id); len(commands) > 0 {
					l.start(id, commands, true)
					started++
				}
			}
			if started == 0 {
				l.logger.Warn("no session has command history")
			}
			return
		}
		commands := l.tracker.Commands(ev.SessionID)
		if len(commands) == 0 {
			l.logger.Warn("no command history to name from", zap.String("session", string(ev.SessionID)))
			return
		}
		l.start(ev.SessionID, commands, true)
	case events.KindReload:
		l.reload()
	}
}

// announce reports a generated id. Without a listener the session could
// never be closed, so it is dropped again.
func (l *loop) announce(id domain.SessionID) {
	if l.svc.OnOpened == nil {
		l.logger.Warn("open without id ignored: no listener for assigned ids")
		l.tracker.OnSessionClosed(id)
		return
	}
	l.logger.Debug("assigned session id", zap.String("session", string(id)))
	l.svc.OnOpened(id)
}

func (l *loop) reload() {
	cfg, err := l.svc.ConfigProvider.Load(l.ctx)
	if err != nil {
		l.logger.Warn("reload config failed", zap.Error(err))
		return
	}
	l.tracker.SetThreshold(cfg.Threshold())
	l.auto = cfg.AutoRenameEnabled()
	l.logger.Info("configuration reloaded",
		zap.Int("threshold", l.tracker.Threshold()),
		zap.Bool("auto_rename", l.auto),
		zap.String("language", string(cfg.Language())),
		zap.String("provider", cfg.Preferences.Provider),
	)
}

// autoRename re-reads the toggle on every command. The last known value
// stands in when the config cannot be loaded.
func (l *loop) autoRename() bool {
	cfg, err := l.svc.ConfigProvider.Load(l.ctx)
	if err != nil {
		l.logger.Debug("auto-rename toggle unreadable, keeping last value", zap.Error(err))
		return l.auto
	}
	l.auto = cfg.AutoRenameEnabled()
	return l.auto
}

func (l *loop) startAuto(id domain.SessionID, commands []string) {
	l.start(id, commands, false)
}

func (l *loop) start(id domain.SessionID, commands []string, manual bool) {
	l.inflight++
	go func() {
		result, err := l.svc.Renamer.Generate(l.ctx, commands)
		l.outcomes <- outcome{id: id, result: result, err: err, manual: manual}
	}()
}

func (l *loop) finish(out outcome) {
	fields := []zap.Field{zap.String("session", string(out.id)), zap.Bool("manual", out.manual)}
	if out.err != nil {
		l.logger.Warn("session naming failed", append(fields, zap.Error(out.err))...)
		return
	}
	if !l.tracker.Tracked(out.id) {
		l.logger.Debug("session closed before naming finished", fields...)
		return
	}

	if err := l.svc.Renamer.Apply(context.WithoutCancel(l.ctx), out.id, out.result); err != nil {
		l.logger.Warn("apply session name failed", append(fields, zap.Error(err))...)
		return
	}
	if out.manual {
		l.tracker.MarkAsNamed(out.id)
	}
	l.logger.Info("session renamed", append(fields, zap.String("name", out.result.Name), zap.String("model", out.result.Model))...)
	if l.svc.OnRenamed != nil {
		l.svc.OnRenamed(out.id, out.result)
	}
}
