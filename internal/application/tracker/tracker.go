// Package tracker keeps a rolling command history per terminal session and
// decides when a session has accumulated enough context to be named.
//
// A Tracker is not safe for concurrent use. It is meant to be driven from a
// single event loop; see the watch package.
package tracker

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/ports"
)

// ThresholdFunc is invoked once per naming window with the oldest
// threshold-many commands of that window.
type ThresholdFunc func(id domain.SessionID, commands []string)

// Options configures a Tracker.
type Options struct {
	// Threshold is the number of commands that triggers naming. Values below
	// 1 are clamped to 1; zero means domain.DefaultCommandThreshold.
	Threshold int
	// AutoRename is consulted on every command so toggles apply immediately.
	// Nil means always enabled.
	AutoRename func() bool
	// OnThreshold receives threshold crossings. Nil disables callbacks but
	// sessions are still marked named.
	OnThreshold ThresholdFunc
	// InitialSessions are sessions that already exist when tracking starts.
	InitialSessions []domain.SessionID
	Logger          *zap.Logger
}

type record struct {
	domain.SessionRecord
	// sinceReset counts commands observed since creation or the last
	// ResetNamed. Only the newest of these are eligible for the next window.
	sinceReset int
}

// Tracker maps live sessions to their command history and naming state.
type Tracker struct {
	records     map[domain.SessionID]*record
	threshold   int
	autoRename  func() bool
	onThreshold ThresholdFunc
	unsubscribe []func()
	logger      *zap.Logger
}

// New builds a Tracker with records for opts.InitialSessions.
func New(opts Options) *Tracker {
	t := &Tracker{
		records:     make(map[domain.SessionID]*record),
		autoRename:  opts.AutoRename,
		onThreshold: opts.OnThreshold,
		logger:      opts.Logger,
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	if opts.Threshold == 0 {
		opts.Threshold = domain.DefaultCommandThreshold
	}
	t.SetThreshold(opts.Threshold)
	for _, id := range opts.InitialSessions {
		t.OnSessionOpened(id)
	}
	return t
}

// Attach subscribes the tracker to source. Dispose releases the subscription.
func (t *Tracker) Attach(source ports.CommandSource) {
	t.unsubscribe = append(t.unsubscribe, source.Subscribe(t))
}

// OnSessionOpened starts tracking id. Known sessions are left untouched.
func (t *Tracker) OnSessionOpened(id domain.SessionID) {
	if _, ok := t.records[id]; ok {
		return
	}
	t.records[id] = &record{}
	t.logger.Debug("session opened", zap.String("session", string(id)))
}

// OnSessionClosed forgets id.
func (t *Tracker) OnSessionClosed(id domain.SessionID) {
	if _, ok := t.records[id]; !ok {
		return
	}
	delete(t.records, id)
	t.logger.Debug("session closed", zap.String("session", string(id)))
}

// OnCommandObserved appends command to the session history and fires the
// threshold callback when the current window is full.
func (t *Tracker) OnCommandObserved(id domain.SessionID, command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}

	rec, ok := t.records[id]
	if !ok {
		rec = &record{}
		t.records[id] = rec
	}

	rec.History = append(rec.History, command)
	if overflow := len(rec.History) - domain.MaxSessionHistory; overflow > 0 {
		rec.History = append([]string(nil), rec.History[overflow:]...)
	}
	rec.sinceReset++

	if rec.Named || !t.autoRenameEnabled() {
		return
	}

	window := rec.window()
	if len(window) < t.threshold {
		return
	}

	commands := append([]string(nil), window[:t.threshold]...)
	rec.Named = true
	t.logger.Debug("naming threshold reached",
		zap.String("session", string(id)),
		zap.Int("threshold", t.threshold),
	)
	if t.onThreshold != nil {
		t.onThreshold(id, commands)
	}
}

// window returns the retained commands observed since the last reset.
func (r *record) window() []string {
	size := r.sinceReset
	if size > len(r.History) {
		size = len(r.History)
	}
	return r.History[len(r.History)-size:]
}

// Commands returns a copy of the retained history, oldest first.
func (t *Tracker) Commands(id domain.SessionID) []string {
	rec, ok := t.records[id]
	if !ok {
		return []string{}
	}
	return append([]string{}, rec.History...)
}

// Tracked reports whether id is a live session.
func (t *Tracker) Tracked(id domain.SessionID) bool {
	_, ok := t.records[id]
	return ok
}

// IsNamed reports whether id has been named in its current window.
func (t *Tracker) IsNamed(id domain.SessionID) bool {
	rec, ok := t.records[id]
	return ok && rec.Named
}

// ResetNamed re-arms naming for id.
func (t *Tracker) ResetNamed(id domain.SessionID) {
	if rec, ok := t.records[id]; ok {
		rec.Named = false
		rec.sinceReset = 0
	}
}

// MarkAsNamed suppresses automatic naming for id until the next reset.
func (t *Tracker) MarkAsNamed(id domain.SessionID) {
	if rec, ok := t.records[id]; ok {
		rec.Named = true
	}
}

// SetThreshold changes the trigger size for future evaluations.
func (t *Tracker) SetThreshold(n int) {
	if n < 1 {
		n = 1
	}
	t.threshold = n
}

// Threshold returns the current trigger size.
func (t *Tracker) Threshold() int {
	return t.threshold
}

// Sessions returns the tracked session ids in sorted order.
func (t *Tracker) Sessions() []domain.SessionID {
	ids := make([]domain.SessionID, 0, len(t.records))
	for id := range t.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Dispose releases event subscriptions and drops all records.
func (t *Tracker) Dispose() {
	for _, unsubscribe := range t.unsubscribe {
		unsubscribe()
	}
	t.unsubscribe = nil
	t.records = make(map[domain.SessionID]*record)
}

func (t *Tracker) autoRenameEnabled() bool {
	return t.autoRename == nil || t.autoRename()
}

var _ ports.SessionEventHandler = (*Tracker)(nil)
