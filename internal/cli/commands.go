package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"financas/internal/amqp"
	"financas/internal/core"
	applog "financas/internal/log"
	"financas/internal/services"
)

func (a *App) add(s *session, args []string) error {
	f := form{
		typ:          string(core.Expense),
		date:         core.DateOf(a.now()).String(),
		installments: 1,
	}
	fs := newFlagSet("add", s.out)
	f.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	req, err := f.request()
	if err != nil {
		return err
	}
	ch, err := s.state.Apply(s.ctx, services.Create{Request: req})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%d transação(ões) registrada(s)\n", len(ch.IDs))
	for _, id := range ch.IDs {
		if t, ok := s.state.Find(id); ok {
			fmt.Fprintln(s.out, s.render.Row(t))
		}
	}
	return nil
}

// edit overwrites only the flags given on the command line.
func (a *App) edit(s *session, args []string) error {
	id, rest, err := leadingID("edit", args)
	if err != nil {
		return err
	}
	existing, ok := s.state.Find(id)
	if !ok {
		return fmt.Errorf("edit %s: %w", id, core.ErrNotFound)
	}

	f := formFrom(existing)
	fs := newFlagSet("edit", s.out)
	f.register(fs)
	if err := parseFlags(fs, rest); err != nil {
		return err
	}
	typeChanged, categoryGiven := false, false
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "type":
			typeChanged = core.Type(f.typ) != existing.Type
		case "category":
			categoryGiven = true
		}
	})
	if typeChanged && !categoryGiven {
		f.category = ""
	}

	req, err := f.request()
	if err != nil {
		return err
	}
	if _, err := s.state.Apply(s.ctx, services.Edit{ID: id, Request: req}); err != nil {
		return err
	}
	updated, _ := s.state.Find(id)
	fmt.Fprintln(s.out, "transação atualizada")
	fmt.Fprintln(s.out, s.render.Row(updated))
	return nil
}

func (a *App) remove(s *session, args []string) error {
	id, rest, err := leadingID("delete", args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return usagef("delete aceita apenas um id")
	}
	if _, err := s.state.Apply(s.ctx, services.Delete{ID: id}); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "transação %s removida\n", id)
	return nil
}

func (a *App) list(s *session, args []string) error {
	var month, filter string
	fs := newFlagSet("list", s.out)
	fs.StringVar(&month, "month", "", "mês AAAA-MM (padrão: mês atual ou o mais recente)")
	fs.StringVar(&filter, "filter", "all", "all, income ou expense")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	f, err := services.ParseFilter(filter)
	if err != nil {
		return usagef("%v", err)
	}
	index := s.state.Months(a.now())
	selected := services.DefaultMonth(index, a.now())
	if month != "" {
		m, err := core.ParseMonth(month)
		if err != nil {
			return usagef("mês inválido %q: use AAAA-MM", month)
		}
		selected = m
	}

	view := s.state.View(selected, f)
	applog.FromContext(s.ctx).DebugContext(s.ctx, "Rendering month",
		applog.FieldMonth, selected, applog.FieldFilter, f, applog.FieldCount, len(view.Visible))
	fmt.Fprintln(s.out, s.render.Page(index, view))
	return nil
}

func (a *App) months(s *session, args []string) error {
	fs := newFlagSet("months", s.out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	index := s.state.Months(a.now())
	fmt.Fprintln(s.out, s.render.Months(index, services.DefaultMonth(index, a.now())))
	return nil
}

func (a *App) show(s *session, args []string) error {
	id, rest, err := leadingID("show", args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return usagef("show aceita apenas um id")
	}
	t, ok := s.state.Find(id)
	if !ok {
		return fmt.Errorf("show %s: %w", id, core.ErrNotFound)
	}
	plan, err := s.state.Related(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, s.render.Detail(t, plan))
	return nil
}

func (a *App) clear(s *session, args []string) error {
	var yes bool
	fs := newFlagSet("clear", s.out)
	fs.BoolVar(&yes, "yes", false, "não pede confirmação")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if !yes {
		fmt.Fprint(s.out, "Apagar todas as transações? [s/N] ")
		if !confirmed(s) {
			fmt.Fprintln(s.out, "nada foi apagado")
			return nil
		}
	}
	ch, err := s.state.Apply(s.ctx, services.Clear{})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%d transação(ões) apagada(s)\n", len(ch.IDs))
	return nil
}

func confirmed(s *session) bool {
	if s.in == nil {
		return false
	}
	line, _ := bufio.NewReader(s.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}

// watch prints every change message and the refreshed balance of the
// default month until the context is cancelled.
func (a *App) watch(s *session, args []string) error {
	fs := newFlagSet("watch", s.out)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if a.deps.Consumer == nil {
		return fmt.Errorf("watch requer AMQP_URL configurado e um broker acessível")
	}

	fmt.Fprintln(s.out, "aguardando mudanças (Ctrl+C para sair)")

	changes := make(chan *amqp.ChangeMessage)
	g, ctx := errgroup.WithContext(s.ctx)

	g.Go(func() error {
		defer close(changes)
		return a.deps.Consumer.ConsumeChanges(ctx, func(msg *amqp.ChangeMessage) error {
			select {
			case changes <- msg:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	g.Go(func() error {
		for msg := range changes {
			fmt.Fprintln(s.out, s.render.Change(msg.Kind, msg.IDs, msg.Count, msg.Timestamp.Local().Format("15:04:05")))
			txs := s.store.Load(ctx)
			index := services.BuildMonthIndex(txs, a.now())
			view := services.ViewFor(txs, services.DefaultMonth(index, a.now()), services.FilterAll)
			fmt.Fprintln(s.out, s.render.Balance(view.Totals))
		}
		return nil
	})

	if err := g.Wait(); err != nil && s.ctx.Err() == nil {
		return err
	}
	return nil
}

// parseFlags reports bad flags as usage errors; -h stays flag.ErrHelp.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return usageError{msg: err.Error()}
}

func leadingID(cmd string, args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", nil, usagef("%s requer um id", cmd)
	}
	return args[0], args[1:], nil
}
