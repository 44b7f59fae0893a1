package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"financas/internal/amqp"
	"financas/internal/cache"
	"financas/internal/core"
	applog "financas/internal/log"
	"financas/internal/services"
	"financas/internal/storage"
	"financas/internal/ui"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ChangeConsumer streams change notifications until ctx is done.
type ChangeConsumer interface {
	ConsumeChanges(ctx context.Context, handler func(*amqp.ChangeMessage) error) error
}

// Deps is everything the commands need from the outside world.
type Deps struct {
	KV         storage.KV
	StorageKey string
	Publisher  services.ChangePublisher
	Consumer   ChangeConsumer
	ViewCache  cache.Cache[services.MonthView]
	Deriver    *services.Deriver
	Logger     *applog.Logger
	Now        func() time.Time
}

// App runs one command against a freshly loaded state.
type App struct {
	deps   Deps
	logger *applog.Logger
	now    func() time.Time
}

func New(deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &App{deps: deps, logger: logger.WithComponent(applog.ComponentCLI), now: now}
}

// session is the per-invocation context shared by the commands.
type session struct {
	ctx    context.Context
	store  *storage.TransactionStore
	state  *services.State
	out    io.Writer
	in     io.Reader
	render *ui.Renderer
}

type command struct {
	name  string
	usage string
	run   func(a *App, s *session, args []string) error
}

var commands = []command{
	{"add", "registra uma transação (ou parcelas)", (*App).add},
	{"edit", "altera uma transação: edit <id> [flags]", (*App).edit},
	{"delete", "remove uma transação: delete <id>", (*App).remove},
	{"list", "mostra o resumo e as transações de um mês", (*App).list},
	{"months", "lista os meses com transações", (*App).months},
	{"show", "detalha uma transação: show <id>", (*App).show},
	{"clear", "apaga todas as transações", (*App).clear},
	{"watch", "acompanha mudanças publicadas por outros processos", (*App).watch},
}

// usageError marks errors caused by bad arguments.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// Run executes the command named by args[0] and returns the process exit
// code. Errors are printed to stdout for the user; details go to the log.
func (a *App) Run(ctx context.Context, args []string, stdout io.Writer, stdin io.Reader) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.printUsage(stdout)
		if len(args) == 0 {
			return ExitUsage
		}
		return ExitOK
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		fmt.Fprintf(stdout, "comando desconhecido: %s\n\n", args[0])
		a.printUsage(stdout)
		return ExitUsage
	}

	logger := a.logger.With(applog.FieldRunID, uuid.NewString())
	store := storage.NewTransactionStore(a.deps.KV, a.deps.StorageKey, logger)
	s := &session{
		ctx:    applog.NewContext(ctx, logger),
		store:  store,
		state:  a.newState(logger, store.Load(ctx)),
		out:    stdout,
		in:     stdin,
		render: ui.NewRenderer(stdout),
	}
	s.state.Subscribe(services.PersistChanges(store))
	s.state.Subscribe(services.PublishChanges(a.deps.Publisher, logger))

	err := cmd.run(a, s, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.As(err, new(usageError)):
		fmt.Fprintf(stdout, "uso incorreto: %v\n", err)
		return ExitUsage
	default:
		logger.DebugContext(ctx, "Command failed", applog.FieldOperation, cmd.name, applog.FieldError, err)
		fmt.Fprintf(stdout, "erro: %s\n", describe(err))
		return ExitError
	}
}

func (a *App) newState(logger *applog.Logger, initial []core.Transaction) *services.State {
	opts := []services.Option{services.WithLogger(logger)}
	if a.deps.Deriver != nil {
		opts = append(opts, services.WithDeriver(a.deps.Deriver))
	}
	if a.deps.ViewCache != nil {
		opts = append(opts, services.WithViewCache(a.deps.ViewCache))
	}
	return services.NewState(initial, opts...)
}

func (a *App) printUsage(w io.Writer) {
	fmt.Fprintln(w, "uso: financas <comando> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
}

// describe turns validation sentinels into messages for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyDescription):
		return "informe uma descrição"
	case errors.Is(err, core.ErrInvalidAmount):
		return "informe um valor maior que zero"
	case errors.Is(err, core.ErrInvalidDate), errors.Is(err, core.ErrInvalidMonth):
		return "informe uma data válida (AAAA-MM-DD)"
	case errors.Is(err, core.ErrInvalidCategory):
		return "categoria inválida para o tipo escolhido"
	case errors.Is(err, core.ErrInvalidType):
		return "tipo deve ser income ou expense"
	case errors.Is(err, core.ErrInvalidInstallments):
		return "número de parcelas inválido"
	case errors.Is(err, core.ErrNotFound):
		return "transação não encontrada"
	default:
		return strings.TrimSpace(err.Error())
	}
}
