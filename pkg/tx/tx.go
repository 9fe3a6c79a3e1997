package tx

import (
	"context"
	"errors"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSerializationFailure - транзакция проиграла конкурирующей и может быть повторена целиком.
var ErrSerializationFailure = errors.New("transaction serialization failure")

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
)

// Manager инкапсулирует логику управления транзакциями.
type Manager struct {
	internal *manager.Manager
}

// New создаёт новый менеджер транзакций.
func New(db pgxv5.Transactional) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
	}
}

// Do используется для переходов статусов и платежей: конкурирующие воркеры
// не должны принять одну и ту же заявку дважды.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, pgx.Serializable, pgx.ReadWrite, fn)
}

// DoReadOnly дает согласованный снимок для агрегатов (статистика админа).
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, pgx.RepeatableRead, pgx.ReadOnly, fn)
}

func (m *Manager) do(
	ctx context.Context,
	level pgx.TxIsoLevel,
	mode pgx.TxAccessMode,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level, AccessMode: mode}),
	)
	err := m.internal.DoWithSettings(ctx, txSettings, fn)
	// конфликт может прийти и из запроса внутри fn, и из COMMIT
	if IsSerializationFailure(err) && !errors.Is(err, ErrSerializationFailure) {
		return fmt.Errorf("%w: %w", ErrSerializationFailure, err)
	}
	return err
}

func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerializationFailure) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrSerializationFailure || pgErr.Code == pgErrDeadlockDetected
	}
	return false
}
