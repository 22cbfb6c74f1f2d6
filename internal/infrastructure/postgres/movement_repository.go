package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación PostgreSQL del ledger de movimientos. Las
// líneas viven en movement_lines y se insertan junto al movimiento.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository crea el repositorio de movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(movement *entity.Movement) error {
	ctx := context.Background()
	query := `
		INSERT INTO movements (id, kind, details, source_store_id, target_store_id, supplier_id, operator_id, cancelled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.Kind, movement.Details,
		movement.SourceStoreID, movement.TargetStoreID, movement.SupplierID,
		movement.OperatorID, movement.Cancelled, movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}

	lineQuery := `
		INSERT INTO movement_lines (movement_id, line_no, product_id, product_name, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for i, line := range movement.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			movement.ID, i+1, line.ProductID, line.ProductName, line.Quantity); err != nil {
			return fmt.Errorf("insert movement line: %w", err)
		}
	}
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	ctx := context.Background()
	query := `
		SELECT id, kind, details, source_store_id, target_store_id, supplier_id, operator_id, cancelled, created_at
		FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Kind, &m.Details, &m.SourceStoreID, &m.TargetStoreID,
		&m.SupplierID, &m.OperatorID, &m.Cancelled, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan movement: %w", err)
	}

	lines, err := r.linesFor(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Lines = lines
	return &m, nil
}

// MarkCancelled marca el movimiento como anulado. Única mutación permitida
// sobre el ledger; el WHERE sobre el flag serializa la transición
// Active -> Cancelled: una anulación concurrente del mismo movimiento
// obtiene cero filas y recibe conflicto.
func (r *MovementRepo) MarkCancelled(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE movements SET cancelled = true WHERE id = $1 AND NOT cancelled`, id)
	if err != nil {
		return fmt.Errorf("cancel movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: el movimiento ya fue anulado", domain.ErrConflict)
	}
	return nil
}

func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	ctx := context.Background()

	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Kind != "" {
		conditions = append(conditions, "kind = "+arg(filter.Kind))
	}
	if filter.StoreID != "" {
		p := arg(filter.StoreID)
		conditions = append(conditions, "(source_store_id = "+p+" OR target_store_id = "+p+")")
	}
	if filter.From != nil {
		conditions = append(conditions, "created_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "created_at <= "+arg(*filter.To))
	}

	query := `
		SELECT id, kind, details, source_store_id, target_store_id, supplier_id, operator_id, cancelled, created_at
		FROM movements`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Kind, &m.Details, &m.SourceStoreID,
			&m.TargetStoreID, &m.SupplierID, &m.OperatorID, &m.Cancelled, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(movements) == 0 {
		return movements, nil
	}

	// Una sola consulta para las líneas de toda la página, agrupadas después
	// por movimiento.
	ids := make([]string, len(movements))
	for i, m := range movements {
		ids[i] = m.ID
	}
	byMovement, err := r.linesForAll(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range movements {
		m.Lines = byMovement[m.ID]
	}
	return movements, nil
}

func (r *MovementRepo) linesForAll(ctx context.Context, movementIDs []string) (map[string][]entity.MovementLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT movement_id, product_id, product_name, quantity
		FROM movement_lines WHERE movement_id = ANY($1::uuid[])
		ORDER BY movement_id, line_no`, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("list movement lines: %w", err)
	}
	defer rows.Close()

	byMovement := make(map[string][]entity.MovementLine, len(movementIDs))
	for rows.Next() {
		var movementID string
		var l entity.MovementLine
		if err := rows.Scan(&movementID, &l.ProductID, &l.ProductName, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		byMovement[movementID] = append(byMovement[movementID], l)
	}
	return byMovement, rows.Err()
}

func (r *MovementRepo) linesFor(ctx context.Context, movementID string) ([]entity.MovementLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, product_name, quantity
		FROM movement_lines WHERE movement_id = $1
		ORDER BY line_no`, movementID)
	if err != nil {
		return nil, fmt.Errorf("list movement lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.MovementLine
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
