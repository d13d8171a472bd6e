package services

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/shopspring/decimal"
)

type memState struct {
	accounts     map[int64]models.Account
	categories   map[int64]models.Category
	transactions map[int64]models.Transaction
	rules        map[int64]models.RecurringTransaction
	nextID       int64
}

func (s memState) clone() memState {
	return memState{
		accounts:     maps.Clone(s.accounts),
		categories:   maps.Clone(s.categories),
		transactions: maps.Clone(s.transactions),
		rules:        maps.Clone(s.rules),
		nextID:       s.nextID,
	}
}

// memStore is an in-memory LedgerStore and AccountStore. A unit of work runs
// on a copy of the state that replaces it only when fn succeeds.
type memStore struct {
	mu         sync.Mutex
	state      memState
	failAdjust map[int64]error
	failInsert error
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			accounts:     map[int64]models.Account{},
			categories:   map[int64]models.Category{},
			transactions: map[int64]models.Transaction{},
			rules:        map[int64]models.RecurringTransaction{},
		},
		failAdjust: map[int64]error{},
	}
}

func (m *memStore) addAccount(ownerID int64, balance string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.nextID++
	b := decimal.RequireFromString(balance)
	m.state.accounts[m.state.nextID] = models.Account{
		ID: m.state.nextID, OwnerID: ownerID, Name: "acc", Type: models.AccountChecking,
		Balance: b, OpeningBalance: b, Version: 1,
	}
	return m.state.nextID
}

func (m *memStore) addCategory(ownerID *int64, t models.CategoryType) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.nextID++
	m.state.categories[m.state.nextID] = models.Category{
		ID: m.state.nextID, Scope: models.ScopeFromOwner(ownerID), Name: string(t), Type: t,
	}
	return m.state.nextID
}

func (m *memStore) addRule(r models.RecurringTransaction) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.nextID++
	r.ID = m.state.nextID
	m.state.rules[r.ID] = r
	return r.ID
}

func (m *memStore) balance(id int64) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.accounts[id].Balance
}

func (m *memStore) closeAccount(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.state.accounts[id]
	now := a.UpdatedAt
	a.DeletedAt = &now
	m.state.accounts[id] = a
}

func (m *memStore) transactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.transactions)
}

func (m *memStore) WithinUnitOfWork(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.state.clone()
	if err := fn(ctx, &memTx{store: m, st: &work}); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (m *memStore) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tr, ok := m.state.transactions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &tr, nil
}

func (m *memStore) ListTransactions(ctx context.Context, ownerID int64, from, to date.Date) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, tr := range m.state.transactions {
		if tr.OwnerID == ownerID && !tr.TransactionDate.Before(from) && !tr.TransactionDate.After(to) {
			out = append(out, tr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ListActiveRecurring(ctx context.Context, on date.Date) ([]models.RecurringTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.RecurringTransaction
	for _, r := range m.state.rules {
		if !r.StartDate.After(on) && (r.EndDate == nil || !r.EndDate.Before(on)) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) CreateAccount(ctx context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.nextID++
	a.ID, a.Version = m.state.nextID, 1
	m.state.accounts[a.ID] = *a
	return nil
}

func (m *memStore) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.state.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (m *memStore) ListAccounts(ctx context.Context, ownerID int64) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Account
	for _, a := range m.state.accounts {
		if a.OwnerID == ownerID && !a.IsDeleted() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateAccount(ctx context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.state.accounts[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Name, cur.Type, cur.Description = a.Name, a.Type, a.Description
	m.state.accounts[a.ID] = cur
	return nil
}

func (m *memStore) SoftDeleteAccount(ctx context.Context, id int64) error {
	if _, err := m.GetAccount(ctx, id); err != nil {
		return err
	}
	m.closeAccount(id)
	return nil
}

func (m *memStore) AccountFlows(ctx context.Context, accountID int64) (models.AccountFlows, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var f models.AccountFlows
	for _, tr := range m.state.transactions {
		switch flow := tr.Flow.(type) {
		case models.Income:
			if tr.AccountID == accountID {
				f.Income = f.Income.Add(tr.Amount)
			}
		case models.Expense:
			if tr.AccountID == accountID {
				f.Expense = f.Expense.Add(tr.Amount)
			}
		case models.Transfer:
			if tr.AccountID == accountID {
				f.TransferOut = f.TransferOut.Add(tr.Amount)
			}
			if flow.DestinationAccountID == accountID {
				f.TransferIn = f.TransferIn.Add(tr.Amount)
			}
		}
	}
	return f, nil
}

type memTx struct {
	store *memStore
	st    *memState
}

func (t *memTx) LockAccounts(ctx context.Context, ids ...int64) (map[int64]*models.Account, error) {
	out := map[int64]*models.Account{}
	for _, id := range ids {
		if a, ok := t.st.accounts[id]; ok {
			out[id] = &a
		}
	}
	return out, nil
}

func (t *memTx) AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal) error {
	if err := t.store.failAdjust[accountID]; err != nil {
		return err
	}
	a, ok := t.st.accounts[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	a.Balance = a.Balance.Add(delta)
	a.Version++
	t.st.accounts[accountID] = a
	return nil
}

func (t *memTx) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, ok := t.st.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (t *memTx) LockTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	tr, ok := t.st.transactions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &tr, nil
}

func (t *memTx) InsertTransaction(ctx context.Context, tr *models.Transaction) error {
	if t.store.failInsert != nil {
		return t.store.failInsert
	}
	if tr.RecurringTransactionID != nil {
		exists, _ := t.GeneratedTransactionExists(ctx, *tr.RecurringTransactionID, tr.TransactionDate)
		if exists {
			return repository.ErrDuplicate
		}
	}
	t.st.nextID++
	tr.ID = t.st.nextID
	t.st.transactions[tr.ID] = *tr
	return nil
}

func (t *memTx) UpdateTransaction(ctx context.Context, tr *models.Transaction) error {
	if _, ok := t.st.transactions[tr.ID]; !ok {
		return repository.ErrNotFound
	}
	if tr.RecurringTransactionID != nil {
		for id, other := range t.st.transactions {
			if id != tr.ID && other.RecurringTransactionID != nil &&
				*other.RecurringTransactionID == *tr.RecurringTransactionID && other.TransactionDate == tr.TransactionDate {
				return repository.ErrDuplicate
			}
		}
	}
	t.st.transactions[tr.ID] = *tr
	return nil
}

func (t *memTx) DeleteTransaction(ctx context.Context, id int64) error {
	if _, ok := t.st.transactions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.st.transactions, id)
	return nil
}

func (t *memTx) GeneratedTransactionExists(ctx context.Context, recurringID int64, on date.Date) (bool, error) {
	for _, tr := range t.st.transactions {
		if tr.RecurringTransactionID != nil && *tr.RecurringTransactionID == recurringID && tr.TransactionDate == on {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountCategories(ctx context.Context, ownerID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.state.categories {
		if c.VisibleTo(ownerID) {
			n++
		}
	}
	return n, nil
}

// ownedBetween returns the owner's transactions dated within [from, to].
func (m *memStore) ownedBetween(ownerID int64, from, to date.Date) []models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, tr := range m.state.transactions {
		if tr.OwnerID == ownerID && !tr.TransactionDate.Before(from) && !tr.TransactionDate.After(to) {
			out = append(out, tr)
		}
	}
	return out
}

func (m *memStore) MonthlyTotals(ctx context.Context, ownerID int64, from, to date.Date) ([]models.MonthTotals, error) {
	byMonth := map[date.Date]*models.MonthTotals{}
	for _, tr := range m.ownedBetween(ownerID, from, to) {
		key := tr.TransactionDate.StartOfMonth()
		mt, ok := byMonth[key]
		if !ok {
			mt = &models.MonthTotals{Year: key.Year(), Month: key.Month()}
		}
		switch tr.Flow.(type) {
		case models.Income:
			mt.Income = mt.Income.Add(tr.Amount)
		case models.Expense:
			mt.Expense = mt.Expense.Add(tr.Amount)
		default:
			continue
		}
		byMonth[key] = mt
	}
	var out []models.MonthTotals
	for _, mt := range byMonth {
		mt.Net = mt.Income.Sub(mt.Expense)
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Year < out[j].Year || out[i].Year == out[j].Year && out[i].Month < out[j].Month
	})
	return out, nil
}

func (m *memStore) DailyExpenses(ctx context.Context, ownerID int64, from, to date.Date) ([]models.DayTotal, error) {
	byDay := map[date.Date]decimal.Decimal{}
	for _, tr := range m.ownedBetween(ownerID, from, to) {
		if _, ok := tr.Flow.(models.Expense); ok {
			byDay[tr.TransactionDate] = byDay[tr.TransactionDate].Add(tr.Amount)
		}
	}
	var out []models.DayTotal
	for d, total := range byDay {
		out = append(out, models.DayTotal{Date: d, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *memStore) TopExpenseCategories(ctx context.Context, ownerID int64, from, to date.Date, limit int) ([]models.CategoryTotal, error) {
	byCategory := map[int64]decimal.Decimal{}
	for _, tr := range m.ownedBetween(ownerID, from, to) {
		if _, ok := tr.Flow.(models.Expense); ok && tr.CategoryID != nil {
			byCategory[*tr.CategoryID] = byCategory[*tr.CategoryID].Add(tr.Amount)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CategoryTotal
	for id, total := range byCategory {
		c := m.state.categories[id]
		out = append(out, models.CategoryTotal{CategoryID: id, Name: c.Name, Icon: c.Icon, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) RecentTransactions(ctx context.Context, ownerID int64, limit int) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, tr := range m.state.transactions {
		if tr.OwnerID == ownerID {
			out = append(out, tr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TransactionDate != out[j].TransactionDate {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) CountTransactions(ctx context.Context, ownerID int64, from, to date.Date) (int, error) {
	return len(m.ownedBetween(ownerID, from, to)), nil
}
