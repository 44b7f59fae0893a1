package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"financas/internal/cache"
	"financas/internal/core"
	applog "financas/internal/log"
)

// Listener is notified after every applied mutation.
type Listener func(ctx context.Context, ch Change)

// State owns the in-memory transaction list. All changes go through Apply,
// which notifies listeners so they can persist or publish the new list.
type State struct {
	mu        sync.Mutex
	txs       []core.Transaction
	deriver   *Deriver
	views     cache.Cache[MonthView]
	listeners []Listener
	logger    *applog.Logger
}

// Option configures a State.
type Option func(*State)

// WithDeriver replaces the default id and clock sources.
func WithDeriver(d *Deriver) Option {
	return func(s *State) { s.deriver = d }
}

// WithViewCache memoises month views in c.
func WithViewCache(c cache.Cache[MonthView]) Option {
	return func(s *State) { s.views = c }
}

// WithLogger sets the logger.
func WithLogger(l *applog.Logger) Option {
	return func(s *State) { s.logger = l.WithComponent(applog.ComponentState) }
}

// NewState starts from initial, typically what the store loaded.
func NewState(initial []core.Transaction, opts ...Option) *State {
	s := &State{
		txs:     append([]core.Transaction(nil), initial...),
		deriver: NewDeriver(),
		views:   cache.NewLRUCache[MonthView](32, 0),
		logger:  applog.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers l for change notifications.
func (s *State) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Get returns a copy of the current list.
func (s *State) Get() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...)
}

// Find returns the transaction with id.
func (s *State) Find(id string) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.txs, id); i >= 0 {
		return s.txs[i], true
	}
	return core.Transaction{}, false
}

// Apply runs m against the current list. On success the list is replaced,
// cached views are dropped and every listener sees the change.
func (s *State) Apply(ctx context.Context, m Mutation) (Change, error) {
	s.mu.Lock()
	next, ch, err := m.Mutate(s.txs, s.deriver)
	if err != nil {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "Mutation rejected", applog.FieldError, err)
		return Change{}, err
	}
	s.txs = next
	s.views.Purge()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Mutation applied",
		applog.FieldChangeKind, ch.Kind,
		applog.FieldIDs, ch.IDs,
		applog.FieldCount, len(next))
	if ch.Kind == ChangeCreated || ch.Kind == ChangeUpdated {
		op := applog.OpCreate
		if ch.Kind == ChangeUpdated {
			op = applog.OpUpdate
		}
		for _, id := range ch.IDs {
			if i := indexOf(next, id); i >= 0 {
				t := next[i]
				fields := applog.NewFields().WithOperation(op).
					WithTransaction(t.ID, t.Description, t.Amount.Cents, string(t.Category), string(t.Type))
				s.logger.DebugContext(ctx, "Transaction written", fields.ToSlice()...)
			}
		}
	}

	for _, l := range listeners {
		l(ctx, ch)
	}
	return ch, nil
}

// Months returns the month index of the current list.
func (s *State) Months(now time.Time) []core.Month {
	return BuildMonthIndex(s.Get(), now)
}

// View returns the month view, computing it on a cache miss.
func (s *State) View(month core.Month, filter Filter) MonthView {
	key := string(month) + "|" + string(filter)
	if v, ok := s.views.Get(key); ok {
		v.Visible = append([]core.Transaction(nil), v.Visible...)
		return v
	}
	v := ViewFor(s.Get(), month, filter)
	s.views.Set(key, v)
	v.Visible = append([]core.Transaction(nil), v.Visible...)
	return v
}

// Related returns every member of the installment plan id belongs to,
// ordered by position. A transaction outside a plan is returned alone.
func (s *State) Related(id string) ([]core.Transaction, error) {
	t, ok := s.Find(id)
	if !ok {
		return nil, fmt.Errorf("related %s: %w", id, core.ErrNotFound)
	}
	plan := t.PlanID()
	if plan == "" {
		return []core.Transaction{t}, nil
	}
	var out []core.Transaction
	for _, c := range s.Get() {
		if c.PlanID() == plan {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].Installment()
		b, _ := out[j].Installment()
		if a.Position == 0 || b.Position == 0 {
			return b.Position == 0 && a.Position != 0
		}
		return a.Position < b.Position
	})
	return out, nil
}
