package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dorm-delivery/internal/entities"
	"dorm-delivery/internal/repository"
	"dorm-delivery/internal/service/delivery"
	"dorm-delivery/pkg/tx"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// selectColumns читаются из deliveries d JOIN users u.
var selectColumns = []string{
	"d.id", "d.title", "d.description", "d.parcel_type",
	"d.pickup_location", "d.dropoff_location",
	"d.amount", "d.held_amount", "d.payment_status", "d.payment_reference",
	"d.status", "d.customer_id", "d.assigned_to", "u.name",
	"d.created_at", "d.updated_at",
}

// returningColumns - то же самое для RETURNING без join.
const returningColumns = `id, title, description, parcel_type,
	pickup_location, dropoff_location,
	amount, held_amount, payment_status, payment_reference,
	status, customer_id, assigned_to,
	(SELECT name FROM users WHERE users.id = deliveries.customer_id),
	created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, customerID int64, create entities.DeliveryCreate) (*entities.Delivery, error) {
	query := `INSERT INTO deliveries
		(title, description, parcel_type, pickup_location, dropoff_location, amount, customer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + returningColumns

	created, err := scanOne(r.querier.QueryRow(
		ctx,
		query,
		create.Title,
		create.Description,
		create.ParcelType.String(),
		create.PickupLocation,
		create.DropoffLocation,
		create.Amount,
		customerID,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, fmt.Errorf("customer %d: %w", customerID, delivery.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Delivery, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate блокирует строку до конца транзакции.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Delivery, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*entities.Delivery, error) {
	builder := baseSelect().Where(sq.Eq{"d.id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE OF d")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository getbyid error: %w", err)
	}

	d, err := scanOne(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "getbyid")
	}
	return d, nil
}

func (r *Repository) List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, error) {
	builder := baseSelect()

	if filter.CustomerID != nil {
		builder = builder.Where(sq.Eq{"d.customer_id": *filter.CustomerID})
	}
	if filter.AssignedTo != nil {
		builder = builder.Where(sq.Eq{"d.assigned_to": *filter.AssignedTo})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"d.status": filter.Status.String()})
	}

	query, args, err := builder.OrderBy("d.created_at DESC", "d.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}

	models, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository list error: %w", err)
	}
	return ToDomainList(models), nil
}

func (r *Repository) Update(ctx context.Context, id int64, modify entities.DeliveryModify) (*entities.Delivery, error) {
	modifyDB := FromDomainModify(&modify)

	builder := qb.Update("deliveries")

	// опциональные поля
	if modifyDB.Status != nil {
		builder = builder.Set("status", *modifyDB.Status)
	}
	if modifyDB.AssignedTo != nil {
		builder = builder.Set("assigned_to", *modifyDB.AssignedTo)
	}
	if modifyDB.PaymentStatus != nil {
		builder = builder.Set("payment_status", *modifyDB.PaymentStatus)
	}
	if modifyDB.PaymentReference != nil {
		builder = builder.Set("payment_reference", *modifyDB.PaymentReference)
	}
	if modifyDB.HeldAmount != nil {
		builder = builder.Set("held_amount", *modifyDB.HeldAmount)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	d, err := scanOne(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "update")
	}
	return d, nil
}

// ExpirePending переводит в failed все pending заявки, созданные раньше createdBefore.
func (r *Repository) ExpirePending(ctx context.Context, createdBefore time.Time) ([]entities.Delivery, error) {
	query := `UPDATE deliveries
		SET status = 'failed', updated_at = NOW()
		WHERE status = 'pending' AND created_at < $1
		RETURNING ` + returningColumns

	rows, err := r.querier.Query(ctx, query, createdBefore)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository expire pending error: %w", err)
	}

	models, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository expire pending error: %w", err)
	}
	return ToDomainList(models), nil
}

func (r *Repository) Stats(ctx context.Context) (*entities.Stats, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM users),
		COUNT(*),
		COUNT(*) FILTER (WHERE status <> 'completed'),
		COUNT(*) FILTER (WHERE status = 'pending'),
		COUNT(*) FILTER (WHERE status = 'in_progress'),
		COUNT(*) FILTER (WHERE payment_status = 'held')
	FROM deliveries`

	var stats StatsDB
	err := r.querier.QueryRow(ctx, query).Scan(
		&stats.UsersCount,
		&stats.TotalDeliveries,
		&stats.ActiveDeliveries,
		&stats.PendingDeliveries,
		&stats.InProgress,
		&stats.TotalHeldPayments,
	)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository stats error: %w", err)
	}

	return ToStatsDomain(&stats), nil
}

func baseSelect() sq.SelectBuilder {
	return qb.Select(selectColumns...).
		From("deliveries d").
		Join("users u ON u.id = d.customer_id")
}

func mapError(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return delivery.ErrDeliveryNotFound
	}
	// конкурентная транзакция уже изменила строку; pg ошибка остается в цепочке для повтора
	if tx.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %w", delivery.ErrConcurrentUpdate, err)
	}
	return fmt.Errorf("unexpected delivery repository %s error: %w", op, err)
}

func scanOne(row pgx.Row) (*entities.Delivery, error) {
	var model DeliveryDB
	if err := row.Scan(fields(&model)...); err != nil {
		return nil, err
	}
	return ToDomain(&model), nil
}

func collect(rows pgx.Rows) ([]DeliveryDB, error) {
	defer rows.Close()

	models := make([]DeliveryDB, 0, 8)
	for rows.Next() {
		var model DeliveryDB
		if err := rows.Scan(fields(&model)...); err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	return models, rows.Err()
}

func fields(m *DeliveryDB) []any {
	return []any{
		&m.ID,
		&m.Title,
		&m.Description,
		&m.ParcelType,
		&m.PickupLocation,
		&m.DropoffLocation,
		&m.Amount,
		&m.HeldAmount,
		&m.PaymentStatus,
		&m.PaymentReference,
		&m.Status,
		&m.CustomerID,
		&m.AssignedTo,
		&m.CustomerName,
		&m.CreatedAt,
		&m.UpdatedAt,
	}
}
