package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/services"
	"financas/internal/storage"
)

var testNow = time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

type harness struct {
	app *App
	kv  *storage.MemoryKV
	pub *fakePublisher
}

type fakePublisher struct{ kinds []string }

func (p *fakePublisher) PublishChange(_ context.Context, kind string, _ []string, _ int) error {
	p.kinds = append(p.kinds, kind)
	return nil
}

type fakeConsumer struct{ msgs []*amqp.ChangeMessage }

func (c fakeConsumer) ConsumeChanges(ctx context.Context, handler func(*amqp.ChangeMessage) error) error {
	for _, m := range c.msgs {
		if err := handler(m); err != nil {
			return err
		}
	}
	return nil
}

func newHarness(t *testing.T, consumer ChangeConsumer) *harness {
	t.Helper()
	n := 0
	h := &harness{kv: storage.NewMemoryKV(), pub: &fakePublisher{}}
	h.app = New(Deps{
		KV:        h.kv,
		Publisher: h.pub,
		Consumer:  consumer,
		Deriver: &services.Deriver{
			NewID: func() string { n++; return fmt.Sprintf("t%d", n) },
			Now:   func() time.Time { return testNow },
		},
		Now: func() time.Time { return testNow },
	})
	return h
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	code := h.app.Run(context.Background(), args, &out, strings.NewReader(stdin))
	return code, out.String()
}

func (h *harness) stored(t *testing.T) []core.Transaction {
	t.Helper()
	return storage.NewTransactionStore(h.kv, "", nil).Load(context.Background())
}

func TestAddInstallments(t *testing.T) {
	h := newHarness(t, nil)

	code, out := h.run(t, "", "add", "-desc", "Rent", "-amount", "1200", "-category", "housing",
		"-date", "2024-01-15", "-installments", "3")
	if code != ExitOK {
		t.Fatalf("exit %d: %s", code, out)
	}
	if !strings.Contains(out, "3 transação(ões) registrada(s)") {
		t.Errorf("output = %s", out)
	}

	txs := h.stored(t)
	if len(txs) != 3 {
		t.Fatalf("stored %d records, want 3", len(txs))
	}
	if txs[2].Date.String() != "2024-03-15" || txs[2].Amount.Cents != 120000 {
		t.Errorf("third installment = %+v", txs[2])
	}
	if len(h.pub.kinds) != 1 || h.pub.kinds[0] != "created" {
		t.Errorf("published = %v", h.pub.kinds)
	}
}

func TestAddDefaults(t *testing.T) {
	h := newHarness(t, nil)
	if code, out := h.run(t, "", "add", "-desc", "Lunch", "-amount", "12,50"); code != ExitOK {
		t.Fatalf("exit %d: %s", code, out)
	}
	txs := h.stored(t)
	if len(txs) != 1 {
		t.Fatalf("stored %d", len(txs))
	}
	got := txs[0]
	if got.Type != core.Expense || got.Category != core.Food || got.Date.String() != "2024-01-20" || got.Amount.Cents != 1250 {
		t.Errorf("defaults not applied: %+v", got)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"missing description", []string{"-amount", "10"}, ExitError, "informe uma descrição"},
		{"zero amount", []string{"-desc", "x", "-amount", "0"}, ExitError, "valor maior que zero"},
		{"bad date", []string{"-desc", "x", "-amount", "1", "-date", "amanhã"}, ExitError, "data válida"},
		{"wrong category", []string{"-desc", "x", "-amount", "1", "-category", "salary"}, ExitError, "categoria inválida"},
		{"too many installments", []string{"-desc", "x", "-amount", "1", "-installments", "25"}, ExitUsage, "parcelas devem estar entre 1 e 24"},
		{"unknown flag", []string{"-nope"}, ExitUsage, "-nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			code, out := h.run(t, "", append([]string{"add"}, tt.args...)...)
			if code != tt.code {
				t.Errorf("exit = %d, want %d (%s)", code, tt.code, out)
			}
			if !strings.Contains(out, tt.msg) {
				t.Errorf("output %q missing %q", out, tt.msg)
			}
			if _, ok, _ := h.kv.Get(context.Background(), storage.DefaultKey); ok {
				t.Error("rejected input touched storage")
			}
		})
	}
}

func TestListMonth(t *testing.T) {
	h := newHarness(t, nil)
	h.run(t, "", "add", "-desc", "Salary", "-amount", "5000", "-type", "income", "-date", "2024-01-05")
	h.run(t, "", "add", "-desc", "Food", "-amount", "800", "-date", "2024-01-10")
	h.run(t, "", "add", "-desc", "Gym", "-amount", "1000", "-date", "2023-06-01", "-recurring", "-category", "health")
	h.run(t, "", "add", "-desc", "Old", "-amount", "1", "-date", "2023-12-01")

	code, out := h.run(t, "", "list", "-filter", "income")
	if code != ExitOK {
		t.Fatalf("exit %d: %s", code, out)
	}
	for _, want := range []string{"[jan/2024]", "dez/2023", "R$ 3.200,00", "R$ 1.800,00", "[Receitas]", "Salary"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Food") {
		t.Error("income filter shows an expense")
	}

	_, out = h.run(t, "", "list", "-month", "2023-12")
	if !strings.Contains(out, "Old") || !strings.Contains(out, "Gym") || strings.Contains(out, "Salary") {
		t.Errorf("december list:\n%s", out)
	}

	if code, _ := h.run(t, "", "list", "-month", "12/2023"); code != ExitUsage {
		t.Errorf("bad month exit = %d", code)
	}
	if code, _ := h.run(t, "", "list", "-filter", "transfers"); code != ExitUsage {
		t.Errorf("bad filter exit = %d", code)
	}
}

func TestListEmpty(t *testing.T) {
	h := newHarness(t, nil)
	code, out := h.run(t, "", "list")
	if code != ExitOK || !strings.Contains(out, "Nenhuma transação encontrada") || !strings.Contains(out, "[jan/2024]") {
		t.Errorf("exit %d:\n%s", code, out)
	}
}

func TestDeleteSingleMember(t *testing.T) {
	h := newHarness(t, nil)
	h.run(t, "", "add", "-desc", "TV", "-amount", "300", "-category", "shopping", "-installments", "3")

	if code, out := h.run(t, "", "delete", "t2"); code != ExitOK {
		t.Fatalf("exit %d: %s", code, out)
	}
	txs := h.stored(t)
	if len(txs) != 2 || txs[0].ID != "t1" || txs[1].ID != "t3" {
		t.Errorf("after delete: %+v", txs)
	}

	code, out := h.run(t, "", "delete", "t2")
	if code != ExitError || !strings.Contains(out, "não encontrada") {
		t.Errorf("second delete: exit %d, %s", code, out)
	}
	if code, _ := h.run(t, "", "delete"); code != ExitUsage {
		t.Errorf("delete without id exit = %d", code)
	}
}

func TestEditChangesOnlyGivenFlags(t *testing.T) {
	h := newHarness(t, nil)
	h.run(t, "", "add", "-desc", "Lunch", "-amount", "20", "-date", "2024-01-03")

	if code, out := h.run(t, "", "edit", "t1", "-amount", "25,90"); code != ExitOK {
		t.Fatalf("exit %d: %s", code, out)
	}
	got := h.stored(t)[0]
	if got.ID != "t1" || got.Description != "Lunch" || got.Amount.Cents != 2590 || got.Date.String() != "2024-01-03" {
		t.Errorf("after edit: %+v", got)
	}

	if code, out := h.run(t, "", "edit", "t1", "-type", "income"); code != ExitOK {
		t.Fatalf("type switch exit %d: %s", code, out)
	}
	if got := h.stored(t)[0]; got.Type != core.Income || got.Category != core.Salary {
		t.Errorf("type switch should reset category: %+v", got)
	}

	if code, _ := h.run(t, "", "edit", "missing", "-amount", "1"); code != ExitError {
		t.Errorf("edit missing exit = %d", code)
	}
}

func TestEditPlanMemberKeepsPlan(t *testing.T) {
	h := newHarness(t, nil)
	h.run(t, "", "add", "-desc", "TV", "-amount", "300", "-category", "shopping", "-installments", "2")

	if code, out := h.run(t, "", "edit", "t2", "-desc", "TV 55"); code != ExitOK {
		t.Fatalf("exit %d: %s", code, out)
	}
	txs := h.stored(t)
	if len(txs) != 2 {
		t.Fatalf("plan size changed: %d", len(txs))
	}
	m, ok := txs[1].Installment()
	if !ok || m.AnchorID != "t1" || m.Position != 2 || txs[1].Description != "TV 55" || txs[0].Description != "TV" {
		t.Errorf("after edit: %+v / %+v", txs[0], txs[1])
	}
}

func TestShowPlan(t *testing.T) {
	h := newHarness(t, nil)
	h.run(t, "", "add", "-desc", "TV", "-amount", "300", "-category", "shopping", "-installments", "2")

	code, out := h.run(t, "", "show", "t2")
	if code != ExitOK {
		t.Fatalf("exit %d: %s", code, out)
	}
	for _, want := range []string{"TV", "Compras", "2/2", "1/2", "Parcelas"} {
		if !strings.Contains(out, want) {
			t.Errorf("show missing %q:\n%s", want, out)
		}
	}
}

func TestMonths(t *testing.T) {
	h := newHarness(t, nil)
	h.run(t, "", "add", "-desc", "A", "-amount", "1", "-date", "2023-11-02")
	h.run(t, "", "add", "-desc", "B", "-amount", "1", "-date", "2024-01-02")

	_, out := h.run(t, "", "months")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "2023-11") || !strings.Contains(lines[1], "*") {
		t.Errorf("months output:\n%s", out)
	}
}

func TestClear(t *testing.T) {
	h := newHarness(t, nil)
	h.run(t, "", "add", "-desc", "A", "-amount", "1")

	if _, out := h.run(t, "n\n", "clear"); !strings.Contains(out, "nada foi apagado") {
		t.Errorf("declined clear: %s", out)
	}
	if len(h.stored(t)) != 1 {
		t.Fatal("declined clear removed data")
	}

	if code, out := h.run(t, "sim\n", "clear"); code != ExitOK || !strings.Contains(out, "1 transação(ões) apagada(s)") {
		t.Errorf("confirmed clear: exit %d, %s", code, out)
	}
	if _, ok, _ := h.kv.Get(context.Background(), storage.DefaultKey); ok {
		t.Error("clear should remove the storage key")
	}

	if code, _ := h.run(t, "", "clear", "-yes"); code != ExitOK {
		t.Errorf("clear of empty store exit = %d", code)
	}
}

func TestWatch(t *testing.T) {
	consumer := fakeConsumer{msgs: []*amqp.ChangeMessage{
		{Kind: "created", IDs: []string{"x"}, Count: 1, Timestamp: testNow},
	}}
	h := newHarness(t, consumer)

	code, out := h.run(t, "", "watch")
	if code != ExitOK {
		t.Fatalf("exit %d: %s", code, out)
	}
	if !strings.Contains(out, "created") || !strings.Contains(out, "Saldo Total") {
		t.Errorf("watch output:\n%s", out)
	}
}

func TestWatchWithoutBroker(t *testing.T) {
	h := newHarness(t, nil)
	if code, _ := h.run(t, "", "watch"); code != ExitError {
		t.Errorf("exit = %d, want %d", code, ExitError)
	}
}

func TestUsage(t *testing.T) {
	h := newHarness(t, nil)
	if code, out := h.run(t, ""); code != ExitUsage || !strings.Contains(out, "uso: financas") {
		t.Errorf("no args: exit %d, %s", code, out)
	}
	if code, _ := h.run(t, "", "help"); code != ExitOK {
		t.Errorf("help exit = %d", code)
	}
	if code, out := h.run(t, "", "frobnicate"); code != ExitUsage || !strings.Contains(out, "desconhecido") {
		t.Errorf("unknown command: exit %d, %s", code, out)
	}
}
