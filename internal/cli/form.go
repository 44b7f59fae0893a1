package cli

import (
	"flag"
	"io"
	"strings"

	"financas/internal/core"
	"financas/internal/services"
)

// maxFormInstallments bounds the installment field like the entry form does;
// the engine itself accepts more.
const maxFormInstallments = 24

// form holds the transaction fields accepted by add and edit.
type form struct {
	description  string
	amount       string
	typ          string
	category     string
	date         string
	installments int
	recurring    bool
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (f *form) register(fs *flag.FlagSet) {
	fs.StringVar(&f.description, "desc", f.description, "descrição")
	fs.StringVar(&f.amount, "amount", f.amount, "valor, ex. 1200 ou 12,50")
	fs.StringVar(&f.typ, "type", f.typ, "income ou expense")
	fs.StringVar(&f.category, "category", f.category, "categoria (padrão conforme o tipo)")
	fs.StringVar(&f.date, "date", f.date, "data AAAA-MM-DD")
	fs.IntVar(&f.installments, "installments", f.installments, "número de parcelas (1 a 24)")
	fs.BoolVar(&f.recurring, "recurring", f.recurring, "repete todo mês")
}

// formFrom prefills the form with an existing transaction. Plan size is not
// editable, so installments stays at 1.
func formFrom(t core.Transaction) form {
	return form{
		description:  t.Description,
		amount:       t.Amount.Decimal().StringFixed(2),
		typ:          string(t.Type),
		category:     string(t.Category),
		date:         t.Date.String(),
		installments: 1,
		recurring:    t.IsRecurring(),
	}
}

// request converts the form into an engine request. Field parse failures
// map to the same sentinels the engine uses.
func (f form) request() (services.Request, error) {
	if f.installments < 1 || f.installments > maxFormInstallments {
		return services.Request{}, usagef("parcelas devem estar entre 1 e %d", maxFormInstallments)
	}

	amount, err := core.ParseMoney(f.amount)
	if err != nil {
		return services.Request{}, err
	}
	date, err := core.ParseDate(strings.TrimSpace(f.date))
	if err != nil {
		return services.Request{}, err
	}

	typ := core.Type(strings.ToLower(strings.TrimSpace(f.typ)))
	category := core.Category(strings.ToLower(strings.TrimSpace(f.category)))
	if category == "" {
		category = core.DefaultCategory(typ)
	}

	return services.Request{
		Description:  f.description,
		Amount:       amount,
		Category:     category,
		Type:         typ,
		Date:         date,
		Installments: f.installments,
		IsRecurring:  f.recurring,
	}, nil
}
