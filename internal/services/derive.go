package services

import (
	"time"

	"github.com/google/uuid"

	"financas/internal/core"
)

// IDFunc generates a fresh transaction id.
type IDFunc func() string

// Deriver turns form requests into the records to persist. It holds no
// state besides its id and clock sources.
type Deriver struct {
	NewID IDFunc
	Now   func() time.Time
}

// NewDeriver returns a Deriver using random UUIDs and the wall clock.
func NewDeriver() *Deriver {
	return &Deriver{NewID: uuid.NewString, Now: time.Now}
}

// Derive produces the records for req. With existing == nil it creates one
// record, or one record per installment when req asks for more than one.
// With existing set it returns exactly one record: existing updated in place.
func (d *Deriver) Derive(req Request, existing *core.Transaction) ([]core.Transaction, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.withRecurringPolicy()
	if existing != nil {
		return []core.Transaction{d.edit(req, *existing)}, nil
	}
	if req.Installments <= 1 {
		return []core.Transaction{d.single(req)}, nil
	}
	return d.plan(req), nil
}

func (d *Deriver) single(req Request) core.Transaction {
	tx := fromRequest(req)
	tx.ID = d.NewID()
	tx.CreatedAt = d.Now()
	tx.Variant = core.Simple{}
	if req.IsRecurring {
		tx.Variant = core.Recurring{}
	}
	return tx
}

// plan emits one record per installment. Record i is dated i months after
// the request date and created i milliseconds after the first, so ordering by
// creation time recovers plan order even when dates collide.
func (d *Deriver) plan(req Request) []core.Transaction {
	n := req.Installments
	base := d.Now()
	anchorID := d.NewID()

	out := make([]core.Transaction, n)
	for i := 0; i < n; i++ {
		tx := fromRequest(req)
		tx.Date = req.Date.AddMonths(i)
		tx.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		member := core.InstallmentMember{Position: i + 1, Total: n}
		if i == 0 {
			tx.ID = anchorID
		} else {
			tx.ID = d.NewID()
			member.AnchorID = anchorID
		}
		tx.Variant = member
		out[i] = tx
	}
	return out
}

// edit overwrites the form fields of existing. Plan members keep their
// position, total and anchor; editing never resizes or regenerates a plan.
func (d *Deriver) edit(req Request, existing core.Transaction) core.Transaction {
	tx := fromRequest(req)
	tx.ID = existing.ID
	tx.CreatedAt = existing.CreatedAt
	switch v := existing.Variant.(type) {
	case core.InstallmentMember:
		tx.Variant = v
	default:
		tx.Variant = core.Simple{}
		if req.IsRecurring {
			tx.Variant = core.Recurring{}
		}
	}
	return tx
}

func fromRequest(req Request) core.Transaction {
	return core.Transaction{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        req.Type,
		Date:        req.Date,
	}
}
