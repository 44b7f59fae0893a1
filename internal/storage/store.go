package storage

import (
	"context"
	"encoding/json"

	"financas/internal/core"
	applog "financas/internal/log"
)

// DefaultKey is the key the transaction list is stored under.
const DefaultKey = "finance-app-transactions"

// TransactionStore persists the whole transaction list as one JSON array.
// It never reports failures to callers: unreadable data is skipped and
// failed writes are logged.
type TransactionStore struct {
	kv     KV
	key    string
	logger *applog.Logger
}

func NewTransactionStore(kv KV, key string, logger *applog.Logger) *TransactionStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &TransactionStore{kv: kv, key: key, logger: logger.WithComponent(applog.ComponentStorage)}
}

// Load returns the stored list, or an empty list when the key is absent or
// its value is not a JSON array. Records that do not decode are skipped.
func (s *TransactionStore) Load(ctx context.Context) []core.Transaction {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read transactions",
			applog.FieldOperation, applog.OpLoad, applog.FieldKey, s.key, applog.FieldError, err)
		return []core.Transaction{}
	}
	if !ok {
		return []core.Transaction{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.WarnContext(ctx, "Stored transactions are unreadable, starting empty",
			applog.FieldKey, s.key, applog.FieldError, err)
		return []core.Transaction{}
	}
	txs := make([]core.Transaction, 0, len(items))
	skipped := 0
	for i, item := range items {
		var tx core.Transaction
		if err := json.Unmarshal(item, &tx); err != nil {
			skipped++
			s.logger.WarnContext(ctx, "Skipping unreadable stored transaction",
				applog.FieldOperation, applog.OpLoad, applog.FieldKey, s.key, "index", i, applog.FieldError, err)
			continue
		}
		txs = append(txs, tx)
	}
	s.logger.DebugContext(ctx, "Transactions loaded",
		applog.FieldKey, s.key, applog.FieldCount, len(txs), "skipped", skipped)
	return txs
}

// Save overwrites the stored list with txs.
func (s *TransactionStore) Save(ctx context.Context, txs []core.Transaction) {
	if txs == nil {
		txs = []core.Transaction{}
	}
	data, err := json.Marshal(txs)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode transactions", applog.FieldError, err)
		return
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save transactions",
			applog.FieldOperation, applog.OpSave, applog.FieldKey, s.key, applog.FieldCount, len(txs), applog.FieldError, err)
		return
	}
	s.logger.DebugContext(ctx, "Transactions saved",
		applog.FieldKey, s.key, applog.FieldCount, len(txs))
}

// Clear removes the stored list. Clearing twice is the same as once.
func (s *TransactionStore) Clear(ctx context.Context) {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear transactions",
			applog.FieldOperation, applog.OpClear, applog.FieldKey, s.key, applog.FieldError, err)
	}
}
