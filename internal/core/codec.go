package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// record is the persisted shape of a Transaction. Optional fields are
// omitted when absent.
type record struct {
	ID                 string   `json:"id"`
	Description        string   `json:"description"`
	Amount             Money    `json:"amount"`
	Category           Category `json:"category"`
	Type               Type     `json:"type"`
	Date               Date     `json:"date"`
	CreatedAt          int64    `json:"createdAt"`
	Installments       *int     `json:"installments,omitempty"`
	CurrentInstallment *int     `json:"currentInstallment,omitempty"`
	ParentID           *string  `json:"parentId,omitempty"`
	IsRecurring        *bool    `json:"isRecurring,omitempty"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	r := record{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Category:    t.Category,
		Type:        t.Type,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt.UnixMilli(),
	}
	switch v := t.Variant.(type) {
	case Recurring:
		yes := true
		r.IsRecurring = &yes
	case InstallmentMember:
		total, pos := v.Total, v.Position
		r.Installments = &total
		if pos > 0 {
			r.CurrentInstallment = &pos
		}
		if !v.IsAnchor() {
			parent := v.AnchorID
			r.ParentID = &parent
		}
	}
	return json.Marshal(r)
}

// UnmarshalJSON decodes a stored transaction. Records written before plan
// and recurring fields existed decode as Simple.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	out := Transaction{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Type:        r.Type,
		Date:        r.Date,
		CreatedAt:   time.UnixMilli(r.CreatedAt).UTC(),
		Variant:     variantOf(r),
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("transaction %q: %w", r.ID, err)
	}
	*t = out
	return nil
}

// variantOf reads the optional plan fields. A record without a parent is the
// anchor of its plan. A record with a parent and a missing or contradictory
// position keeps its plan link with an unknown position.
func variantOf(r record) Variant {
	if r.IsRecurring != nil && *r.IsRecurring {
		return Recurring{}
	}
	if r.Installments == nil || *r.Installments <= 1 {
		return Simple{}
	}
	m := InstallmentMember{Total: *r.Installments}
	if r.ParentID != nil && *r.ParentID != r.ID {
		m.AnchorID = *r.ParentID
	}
	if m.IsAnchor() {
		m.Position = 1
		return m
	}
	if p := r.CurrentInstallment; p != nil && *p > 1 && *p <= m.Total {
		m.Position = *p
	}
	return m
}
