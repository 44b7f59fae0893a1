package services

import (
	"fmt"

	"financas/internal/core"
)

// ChangeKind names what a mutation did.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
	ChangeCleared ChangeKind = "cleared"
)

// Change describes an applied mutation. Transactions is the full list after
// the mutation.
type Change struct {
	Kind         ChangeKind
	IDs          []string
	Transactions []core.Transaction
}

// Mutation computes the next transaction list from the current one. It must
// not modify current.
type Mutation interface {
	Mutate(current []core.Transaction, d *Deriver) ([]core.Transaction, Change, error)
}

// Create adds the records derived from Request in front of the list.
type Create struct {
	Request Request
}

func (m Create) Mutate(current []core.Transaction, d *Deriver) ([]core.Transaction, Change, error) {
	created, err := d.Derive(m.Request, nil)
	if err != nil {
		return nil, Change{}, err
	}
	next := make([]core.Transaction, 0, len(created)+len(current))
	next = append(next, created...)
	next = append(next, current...)
	return next, Change{Kind: ChangeCreated, IDs: ids(created), Transactions: next}, nil
}

// Edit overwrites the record with ID using Request. Siblings in the same
// installment plan are left alone.
type Edit struct {
	ID      string
	Request Request
}

func (m Edit) Mutate(current []core.Transaction, d *Deriver) ([]core.Transaction, Change, error) {
	i := indexOf(current, m.ID)
	if i < 0 {
		return nil, Change{}, fmt.Errorf("edit %s: %w", m.ID, core.ErrNotFound)
	}
	updated, err := d.Derive(m.Request, &current[i])
	if err != nil {
		return nil, Change{}, err
	}
	next := append([]core.Transaction(nil), current...)
	next[i] = updated[0]
	return next, Change{Kind: ChangeUpdated, IDs: []string{m.ID}, Transactions: next}, nil
}

// Delete removes the record with ID only; it never cascades to plan siblings.
type Delete struct {
	ID string
}

func (m Delete) Mutate(current []core.Transaction, _ *Deriver) ([]core.Transaction, Change, error) {
	i := indexOf(current, m.ID)
	if i < 0 {
		return nil, Change{}, fmt.Errorf("delete %s: %w", m.ID, core.ErrNotFound)
	}
	next := make([]core.Transaction, 0, len(current)-1)
	next = append(next, current[:i]...)
	next = append(next, current[i+1:]...)
	return next, Change{Kind: ChangeDeleted, IDs: []string{m.ID}, Transactions: next}, nil
}

// Clear removes every record.
type Clear struct{}

func (Clear) Mutate(current []core.Transaction, _ *Deriver) ([]core.Transaction, Change, error) {
	return []core.Transaction{}, Change{Kind: ChangeCleared, IDs: ids(current), Transactions: []core.Transaction{}}, nil
}

func indexOf(txs []core.Transaction, id string) int {
	for i, t := range txs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func ids(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}
