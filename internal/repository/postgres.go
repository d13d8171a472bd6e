package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	accountColumns     = `id, owner_id, name, type, balance, opening_balance, description, version, created_at, updated_at, deleted_at`
	categoryColumns    = `id, owner_id, name, type, icon, created_at, updated_at`
	transactionColumns = `id, owner_id, account_id, category_id, type, amount, description, transaction_date, destination_account_id, recurring_transaction_id, created_at, updated_at`
	recurringColumns   = `id, owner_id, account_id, category_id, type, destination_account_id, amount, description, frequency, day_of_month, start_date, end_date, created_at, updated_at`
)

// Postgres implements every store interface on top of a *sql.DB.
type Postgres struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// WithinUnitOfWork runs fn inside one database transaction. A nil return
// commits; any error rolls everything back.
func (p *Postgres) WithinUnitOfWork(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	sqlTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(ctx, &pgTx{tx: sqlTx, now: p.now}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type pgTx struct {
	tx  *sql.Tx
	now func() time.Time
}

func (t *pgTx) LockAccounts(ctx context.Context, ids ...int64) (map[int64]*models.Account, error) {
	// ascending id order on every path keeps concurrent units of work from deadlocking
	ordered := slices.Clone(ids)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	locked := make(map[int64]*models.Account, len(ordered))
	for _, id := range ordered {
		row := t.tx.QueryRowContext(ctx, `
			SELECT `+accountColumns+`
			FROM accounts
			WHERE id = $1
			FOR UPDATE`, id)
		acc, err := scanAccount(row)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lock account %d: %w", id, err)
		}
		locked[id] = acc
	}
	return locked, nil
}

func (t *pgTx) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal) error {
	result, err := t.tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = balance + $1, version = version + 1, updated_at = $2
		WHERE id = $3`,
		delta, t.now(), accountID)
	if err != nil {
		return err
	}
	return expectAffected(result, "account", accountID)
}

func (t *pgTx) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return getCategory(ctx, t.tx, id)
}

func (t *pgTx) LockTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1
		FOR UPDATE`, id)
	return scanTransaction(row)
}

func (t *pgTx) InsertTransaction(ctx context.Context, tr *models.Transaction) error {
	now := t.now()
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO transactions (owner_id, account_id, category_id, type, amount, description,
			transaction_date, destination_account_id, recurring_transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		tr.OwnerID, tr.AccountID, tr.CategoryID, string(tr.Type()), tr.Amount, tr.Description,
		tr.TransactionDate, tr.DestinationAccountID(), tr.RecurringTransactionID, now, now,
	).Scan(&tr.ID)
	if err != nil {
		return mapError(err)
	}
	tr.CreatedAt, tr.UpdatedAt = now, now
	return nil
}

func (t *pgTx) UpdateTransaction(ctx context.Context, tr *models.Transaction) error {
	tr.UpdatedAt = t.now()
	result, err := t.tx.ExecContext(ctx, `
		UPDATE transactions
		SET account_id = $1, category_id = $2, type = $3, amount = $4, description = $5,
			transaction_date = $6, destination_account_id = $7, updated_at = $8
		WHERE id = $9`,
		tr.AccountID, tr.CategoryID, string(tr.Type()), tr.Amount, tr.Description,
		tr.TransactionDate, tr.DestinationAccountID(), tr.UpdatedAt, tr.ID)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(result, "transaction", tr.ID)
}

func (t *pgTx) DeleteTransaction(ctx context.Context, id int64) error {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(result, "transaction", id)
}

func (t *pgTx) GeneratedTransactionExists(ctx context.Context, recurringID int64, on date.Date) (bool, error) {
	var exists bool
	err := t.tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE recurring_transaction_id = $1 AND transaction_date = $2
		)`, recurringID, on).Scan(&exists)
	return exists, err
}

// Transactions

func (p *Postgres) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1`, id)
	return scanTransaction(row)
}

func (p *Postgres) ListTransactions(ctx context.Context, ownerID int64, from, to date.Date) ([]models.Transaction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE owner_id = $1 AND transaction_date BETWEEN $2 AND $3
		ORDER BY transaction_date DESC, id DESC`, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		tr, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *tr)
	}
	return out, rows.Err()
}

func (p *Postgres) ListActiveRecurring(ctx context.Context, on date.Date) ([]models.RecurringTransaction, error) {
	return p.listRecurring(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_transactions
		WHERE start_date <= $1 AND (end_date IS NULL OR end_date >= $1)
		ORDER BY id`, on)
}

// Accounts

func (p *Postgres) CreateAccount(ctx context.Context, a *models.Account) error {
	now := p.now()
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO accounts (owner_id, name, type, balance, opening_balance, description, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7, $8)
		RETURNING id`,
		a.OwnerID, a.Name, string(a.Type), a.Balance, a.OpeningBalance, a.Description, now, now,
	).Scan(&a.ID)
	if err != nil {
		return mapError(err)
	}
	a.Version = 1
	a.CreatedAt, a.UpdatedAt = now, now
	return nil
}

func (p *Postgres) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1`, id)
	return scanAccount(row)
}

func (p *Postgres) ListAccounts(ctx context.Context, ownerID int64) ([]models.Account, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY name, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// UpdateAccount writes the descriptive fields only; the balance belongs to the ledger.
func (p *Postgres) UpdateAccount(ctx context.Context, a *models.Account) error {
	a.UpdatedAt = p.now()
	result, err := p.db.ExecContext(ctx, `
		UPDATE accounts
		SET name = $1, type = $2, description = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL`,
		a.Name, string(a.Type), a.Description, a.UpdatedAt, a.ID)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(result, "account", a.ID)
}

func (p *Postgres) SoftDeleteAccount(ctx context.Context, id int64) error {
	now := p.now()
	result, err := p.db.ExecContext(ctx, `
		UPDATE accounts
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL`, now, id)
	if err != nil {
		return err
	}
	return expectAffected(result, "account", id)
}

func (p *Postgres) AccountFlows(ctx context.Context, accountID int64) (models.AccountFlows, error) {
	var f models.AccountFlows
	err := p.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income' AND account_id = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense' AND account_id = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'transfer' AND account_id = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'transfer' AND destination_account_id = $1), 0)
		FROM transactions
		WHERE account_id = $1 OR destination_account_id = $1`, accountID,
	).Scan(&f.Income, &f.Expense, &f.TransferOut, &f.TransferIn)
	return f, err
}

// Categories

func (p *Postgres) CreateCategory(ctx context.Context, c *models.Category) error {
	now := p.now()
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO categories (owner_id, name, type, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		models.OwnerOf(c.Scope), c.Name, string(c.Type), c.Icon, now, now,
	).Scan(&c.ID)
	if err != nil {
		return mapError(err)
	}
	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

func (p *Postgres) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return getCategory(ctx, p.db, id)
}

func (p *Postgres) ListCategories(ctx context.Context, ownerID int64) ([]models.Category, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE owner_id IS NULL OR owner_id = $1
		ORDER BY type, name, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (p *Postgres) UpdateCategory(ctx context.Context, c *models.Category) error {
	c.UpdatedAt = p.now()
	result, err := p.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $1, type = $2, icon = $3, updated_at = $4
		WHERE id = $5`,
		c.Name, string(c.Type), c.Icon, c.UpdatedAt, c.ID)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(result, "category", c.ID)
}

func (p *Postgres) DeleteCategory(ctx context.Context, id int64) error {
	result, err := p.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(result, "category", id)
}

func (p *Postgres) CategoryNameTaken(ctx context.Context, ownerID int64, name string, t models.CategoryType, excludeID int64) (bool, error) {
	var taken bool
	err := p.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE owner_id = $1 AND lower(name) = lower($2) AND type = $3 AND id <> $4
		)`, ownerID, name, string(t), excludeID).Scan(&taken)
	return taken, err
}

func (p *Postgres) CategoryInUse(ctx context.Context, id int64) (bool, error) {
	var used bool
	err := p.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE category_id = $1)
			OR EXISTS (SELECT 1 FROM recurring_transactions WHERE category_id = $1)`, id).Scan(&used)
	return used, err
}

// Recurring transactions

func (p *Postgres) CreateRecurring(ctx context.Context, r *models.RecurringTransaction) error {
	now := p.now()
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO recurring_transactions (owner_id, account_id, category_id, type, destination_account_id,
			amount, description, frequency, day_of_month, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		r.OwnerID, r.AccountID, r.CategoryID, string(r.Type), r.DestinationAccountID,
		r.Amount, r.Description, string(r.Frequency), r.DayOfMonth, r.StartDate, r.EndDate, now, now,
	).Scan(&r.ID)
	if err != nil {
		return mapError(err)
	}
	r.CreatedAt, r.UpdatedAt = now, now
	return nil
}

func (p *Postgres) GetRecurring(ctx context.Context, id int64) (*models.RecurringTransaction, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_transactions
		WHERE id = $1`, id)
	return scanRecurring(row)
}

func (p *Postgres) ListRecurring(ctx context.Context, ownerID int64, f RecurringFilter) ([]models.RecurringTransaction, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_transactions
		WHERE owner_id = $1`
	args := []any{ownerID}

	if f.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(f.Search)+"%")
		query += fmt.Sprintf(" AND description ILIKE $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if f.Frequency != "" {
		args = append(args, string(f.Frequency))
		query += fmt.Sprintf(" AND frequency = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"

	return p.listRecurring(ctx, query, args...)
}

// likeEscaper quotes the LIKE wildcards so a search matches them literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (p *Postgres) UpdateRecurring(ctx context.Context, r *models.RecurringTransaction) error {
	r.UpdatedAt = p.now()
	result, err := p.db.ExecContext(ctx, `
		UPDATE recurring_transactions
		SET account_id = $1, category_id = $2, type = $3, destination_account_id = $4, amount = $5,
			description = $6, frequency = $7, day_of_month = $8, start_date = $9, end_date = $10, updated_at = $11
		WHERE id = $12`,
		r.AccountID, r.CategoryID, string(r.Type), r.DestinationAccountID, r.Amount,
		r.Description, string(r.Frequency), r.DayOfMonth, r.StartDate, r.EndDate, r.UpdatedAt, r.ID)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(result, "recurring transaction", r.ID)
}

// DeleteRecurring removes the rule; generated transactions keep existing with
// their recurring_transaction_id set to NULL by the foreign key.
func (p *Postgres) DeleteRecurring(ctx context.Context, id int64) error {
	result, err := p.db.ExecContext(ctx, `DELETE FROM recurring_transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(result, "recurring transaction", id)
}

func (p *Postgres) listRecurring(ctx context.Context, query string, args ...any) ([]models.RecurringTransaction, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RecurringTransaction
	for rows.Next() {
		r, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// Dashboard aggregates

func (p *Postgres) MonthlyTotals(ctx context.Context, ownerID int64, from, to date.Date) ([]models.MonthTotals, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT
			EXTRACT(YEAR FROM transaction_date)::int AS year,
			EXTRACT(MONTH FROM transaction_date)::int AS month,
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE owner_id = $1 AND type <> 'transfer' AND transaction_date BETWEEN $2 AND $3
		GROUP BY year, month
		ORDER BY year, month`, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MonthTotals
	for rows.Next() {
		var (
			m     models.MonthTotals
			month int
		)
		if err := rows.Scan(&m.Year, &month, &m.Income, &m.Expense); err != nil {
			return nil, err
		}
		m.Month = time.Month(month)
		m.Net = m.Income.Sub(m.Expense)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *Postgres) DailyExpenses(ctx context.Context, ownerID int64, from, to date.Date) ([]models.DayTotal, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT transaction_date, SUM(amount)
		FROM transactions
		WHERE owner_id = $1 AND type = 'expense' AND transaction_date BETWEEN $2 AND $3
		GROUP BY transaction_date
		ORDER BY transaction_date`, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DayTotal
	for rows.Next() {
		var d models.DayTotal
		if err := rows.Scan(&d.Date, &d.Total); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TopExpenseCategories ranks categories by expense total. Uncategorized
// expenses are not ranked.
func (p *Postgres) TopExpenseCategories(ctx context.Context, ownerID int64, from, to date.Date, limit int) ([]models.CategoryTotal, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.icon, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.owner_id = $1 AND t.type = 'expense' AND t.transaction_date BETWEEN $2 AND $3
		GROUP BY c.id, c.name, c.icon
		ORDER BY total DESC, c.id
		LIMIT $4`, ownerID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CategoryTotal
	for rows.Next() {
		var c models.CategoryTotal
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Icon, &c.Total); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) RecentTransactions(ctx context.Context, ownerID int64, limit int) ([]models.Transaction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE owner_id = $1
		ORDER BY transaction_date DESC, created_at DESC, id DESC
		LIMIT $2`, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		tr, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *tr)
	}
	return out, rows.Err()
}

func (p *Postgres) CountTransactions(ctx context.Context, ownerID int64, from, to date.Date) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM transactions
		WHERE owner_id = $1 AND transaction_date BETWEEN $2 AND $3`, ownerID, from, to).Scan(&n)
	return n, err
}

func (p *Postgres) CountCategories(ctx context.Context, ownerID int64) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM categories
		WHERE owner_id IS NULL OR owner_id = $1`, ownerID).Scan(&n)
	return n, err
}

// scanning

func getCategory(ctx context.Context, q queryer, id int64) (*models.Category, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = $1`, id)
	return scanCategory(row)
}

func scanAccount(s scanner) (*models.Account, error) {
	var (
		a         models.Account
		accType   string
		deletedAt sql.NullTime
	)
	err := s.Scan(&a.ID, &a.OwnerID, &a.Name, &accType, &a.Balance, &a.OpeningBalance,
		&a.Description, &a.Version, &a.CreatedAt, &a.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, mapError(err)
	}
	a.Type = models.AccountType(accType)
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}
	return &a, nil
}

func scanCategory(s scanner) (*models.Category, error) {
	var (
		c       models.Category
		ownerID sql.NullInt64
		catType string
	)
	if err := s.Scan(&c.ID, &ownerID, &c.Name, &catType, &c.Icon, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	c.Type = models.CategoryType(catType)
	c.Scope = models.ScopeFromOwner(nullableInt64(ownerID))
	return &c, nil
}

func scanTransaction(s scanner) (*models.Transaction, error) {
	var (
		tr                      models.Transaction
		txType                  string
		categoryID, destination sql.NullInt64
		recurringID             sql.NullInt64
	)
	err := s.Scan(&tr.ID, &tr.OwnerID, &tr.AccountID, &categoryID, &txType, &tr.Amount,
		&tr.Description, &tr.TransactionDate, &destination, &recurringID, &tr.CreatedAt, &tr.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	flow, err := models.NewFlow(models.TransactionType(txType), nullableInt64(destination))
	if err != nil {
		return nil, fmt.Errorf("transaction %d: %w", tr.ID, err)
	}
	tr.Flow = flow
	tr.CategoryID = nullableInt64(categoryID)
	tr.RecurringTransactionID = nullableInt64(recurringID)
	return &tr, nil
}

func scanRecurring(s scanner) (*models.RecurringTransaction, error) {
	var (
		r                       models.RecurringTransaction
		txType, frequency       string
		categoryID, destination sql.NullInt64
	)
	err := s.Scan(&r.ID, &r.OwnerID, &r.AccountID, &categoryID, &txType, &destination,
		&r.Amount, &r.Description, &frequency, &r.DayOfMonth, &r.StartDate, &r.EndDate, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	r.Type = models.TransactionType(txType)
	r.Frequency = models.Frequency(frequency)
	r.CategoryID = nullableInt64(categoryID)
	r.DestinationAccountID = nullableInt64(destination)
	return &r, nil
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func expectAffected(result sql.Result, resource string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", resource, id, ErrNotFound)
	}
	return nil
}

// mapError translates driver errors into the package's sentinel errors.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
		}
	}
	return err
}
