package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"eventadmissions/internal/domain"
)

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) domain.OrderRepository {
	return &orderRepository{
		DB: db,
	}
}

// CreateOrder materializes a validated registration in one transaction.
//
// The service layer pre-checks capacity, but two requests that each passed the
// pre-check can still collide here. To close that window, every session that
// gains entry units is locked with SELECT ... FOR UPDATE and its entry count
// re-derived under the lock before any row is written. Sessions are locked in
// sorted id order so two concurrent multi-session orders cannot deadlock.
func (r *orderRepository) CreateOrder(ctx context.Context, order *domain.Order, entryRequested map[string]int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	sessionIDs := make([]string, 0, len(entryRequested))
	for id := range entryRequested {
		sessionIDs = append(sessionIDs, id)
	}
	sort.Strings(sessionIDs)

	for _, sessionID := range sessionIDs {
		var name string
		var capacity int
		err = tx.QueryRowContext(ctx,
			`SELECT name, balance_capacity FROM sessions WHERE id = $1 FOR UPDATE`,
			sessionID,
		).Scan(&name, &capacity)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = domain.ErrNotFound
			}
			return err
		}

		var booked int
		err = tx.QueryRowContext(ctx, countEntryLinesQuery, sessionID).Scan(&booked)
		if err != nil {
			return err
		}

		requested := entryRequested[sessionID]
		if requested > capacity-booked {
			err = &domain.CapacityExceededError{
				SessionID:   sessionID,
				SessionName: name,
				Available:   capacity - booked,
				Requested:   requested,
			}
			return err
		}
	}

	var guestID, memberID sql.NullString
	if g := order.Registrant.Guest; g != nil {
		err = tx.QueryRowContext(ctx,
			`INSERT INTO guests (name, email, phone, sponsor_member_id, adults, children, infants, elders, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			g.Name, g.Email, g.Phone, nullString(g.SponsorMemberID),
			g.Headcounts.Adults, g.Headcounts.Children, g.Headcounts.Infants, g.Headcounts.Elders,
			g.CreatedAt,
		).Scan(&g.ID)
		if err != nil {
			return err
		}
		guestID = sql.NullString{String: g.ID, Valid: true}
	} else {
		memberID = sql.NullString{String: order.Registrant.MemberID, Valid: true}
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (guest_id, member_id, total_cost, transaction_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		guestID, memberID, order.TotalCost, order.TransactionID, order.Status, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return err
	}

	for _, line := range order.Lines {
		line.OrderID = order.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_lines (order_id, product_id, product_type_id, session_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			line.OrderID, line.ProductID, line.ProductTypeID, line.SessionID, line.Quantity, line.UnitPrice,
		).Scan(&line.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// countEntryLinesQuery sums booked entry units for one session. Only lines
// whose product is an admission ticket count against capacity.
const countEntryLinesQuery = `
	SELECT COALESCE(SUM(ol.quantity), 0)
	FROM order_lines ol
	INNER JOIN products p ON p.id = ol.product_id
	WHERE ol.session_id = $1 AND p.kind = 'ENTRY'
`

func (r *orderRepository) CountEntryLinesBySession(ctx context.Context, sessionID string) (int, error) {
	var booked int
	err := r.DB.QueryRowContext(ctx, countEntryLinesQuery, sessionID).Scan(&booked)
	return booked, err
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, guest_id, member_id, total_cost, transaction_id, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	o := &domain.Order{}
	var guestID, memberID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &guestID, &memberID, &o.TotalCost, &o.TransactionID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if guestID.Valid {
		guest, err := r.getGuestByID(ctx, guestID.String)
		if err != nil {
			return nil, err
		}
		o.Registrant = domain.GuestRegistrant(guest)
	} else if memberID.Valid {
		o.Registrant = domain.MemberRegistrant(memberID.String)
	}

	lines, err := r.listLinesByOrderID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

// ReplaceLines swaps an order's lines for the given set, updates the total and
// optionally the status, and returns the updated order. One transaction: a
// failure mid-way leaves the original lines untouched.
func (r *orderRepository) ReplaceLines(ctx context.Context, orderID string, lines []*domain.OrderLine, totalCost decimal.Decimal, status *domain.OrderStatus) (*domain.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var result sql.Result
	if status != nil {
		result, err = tx.ExecContext(ctx,
			`UPDATE orders SET total_cost = $1, status = $2, updated_at = NOW() WHERE id = $3`,
			totalCost, *status, orderID,
		)
	} else {
		result, err = tx.ExecContext(ctx,
			`UPDATE orders SET total_cost = $1, updated_at = NOW() WHERE id = $2`,
			totalCost, orderID,
		)
	}
	if err != nil {
		return nil, err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		err = domain.ErrNotFound
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, orderID); err != nil {
		return nil, err
	}
	for _, line := range lines {
		line.OrderID = orderID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_lines (order_id, product_id, product_type_id, session_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			line.OrderID, line.ProductID, line.ProductTypeID, line.SessionID, line.Quantity, line.UnitPrice,
		).Scan(&line.ID)
		if err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

func (r *orderRepository) getGuestByID(ctx context.Context, id string) (*domain.Guest, error) {
	query := `
		SELECT id, name, email, phone, sponsor_member_id, adults, children, infants, elders, created_at
		FROM guests
		WHERE id = $1
	`
	g := &domain.Guest{}
	var sponsor sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.Email, &g.Phone, &sponsor,
		&g.Headcounts.Adults, &g.Headcounts.Children, &g.Headcounts.Infants, &g.Headcounts.Elders,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if sponsor.Valid {
		g.SponsorMemberID = sponsor.String
	}
	return g, nil
}

func (r *orderRepository) listLinesByOrderID(ctx context.Context, orderID string) ([]*domain.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, product_type_id, session_id, quantity, unit_price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]*domain.OrderLine, 0)
	for rows.Next() {
		line := &domain.OrderLine{}
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductTypeID, &line.SessionID, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
