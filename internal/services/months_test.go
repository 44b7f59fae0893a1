package services

import (
	"reflect"
	"testing"
	"time"

	"financas/internal/core"
)

func TestBuildMonthIndex(t *testing.T) {
	now := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		txs  []core.Transaction
		want []core.Month
	}{
		{
			name: "empty list yields current month",
			want: []core.Month{"2024-06"},
		},
		{
			name: "only recurring yields current month",
			txs:  []core.Transaction{tx("r", "2023-01-01", core.Expense, 100, core.Recurring{})},
			want: []core.Month{"2024-06"},
		},
		{
			name: "sorted without duplicates",
			txs: []core.Transaction{
				tx("a", "2024-03-10", core.Expense, 100, core.Simple{}),
				tx("b", "2024-01-10", core.Income, 100, core.Simple{}),
				tx("c", "2024-03-01", core.Expense, 100, core.Simple{}),
				tx("d", "2023-12-31", core.Expense, 100, core.Simple{}),
			},
			want: []core.Month{"2023-12", "2024-01", "2024-03"},
		},
		{
			name: "recurring does not add its month",
			txs: []core.Transaction{
				tx("a", "2024-03-10", core.Expense, 100, core.Simple{}),
				tx("r", "2024-05-10", core.Expense, 100, core.Recurring{}),
			},
			want: []core.Month{"2024-03"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildMonthIndex(tt.txs, now)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildMonthIndex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultMonth(t *testing.T) {
	now := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		index []core.Month
		want  core.Month
	}{
		{"current month present", []core.Month{"2024-05", "2024-06", "2024-07"}, "2024-06"},
		{"current month absent picks latest", []core.Month{"2024-01", "2024-03"}, "2024-03"},
		{"empty index", nil, "2024-06"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultMonth(tt.index, now); got != tt.want {
				t.Errorf("DefaultMonth() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAdjacent(t *testing.T) {
	index := []core.Month{"2024-01", "2024-02", "2024-04"}
	tests := []struct {
		month      core.Month
		prev, next core.Month
	}{
		{"2024-01", "", "2024-02"},
		{"2024-02", "2024-01", "2024-04"},
		{"2024-04", "2024-02", ""},
		{"2024-03", "", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.month), func(t *testing.T) {
			prev, next := Adjacent(index, tt.month)
			if prev != tt.prev || next != tt.next {
				t.Errorf("Adjacent(%s) = %q, %q; want %q, %q", tt.month, prev, next, tt.prev, tt.next)
			}
		})
	}
}
