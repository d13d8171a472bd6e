package services

import (
	"context"
	"time"

	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/shopspring/decimal"
)

const (
	recentTransactionLimit = 5
	topCategoryLimit       = 5
	dailySpendingDays      = 7
	trendMonths            = 6
)

var hundred = decimal.NewFromInt(100)

// Dashboard is an overview of one owner's finances as of a given day.
// Percentages carry one decimal.
type Dashboard struct {
	Date               date.Date              `json:"date"`
	TotalBalance       decimal.Decimal        `json:"total_balance"`
	CurrentMonth       models.MonthTotals     `json:"current_month"`
	PreviousMonth      models.MonthTotals     `json:"previous_month"`
	IncomeGrowth       decimal.Decimal        `json:"income_growth"`
	ExpenseGrowth      decimal.Decimal        `json:"expense_growth"`
	SavingsRate        decimal.Decimal        `json:"savings_rate"`
	ExpenseRatio       decimal.Decimal        `json:"expense_ratio"`
	RecentTransactions []models.Transaction   `json:"recent_transactions"`
	TopCategories      []models.CategoryTotal `json:"top_categories"`
	DailySpending      []models.DayTotal      `json:"daily_spending"`
	MonthlyTrends      []models.MonthTotals   `json:"monthly_trends"`
	Stats              DashboardStats         `json:"stats"`
}

// DashboardStats counts what the owner has. TotalTransactions covers the
// current month only.
type DashboardStats struct {
	TotalAccounts     int `json:"total_accounts"`
	TotalCategories   int `json:"total_categories"`
	TotalTransactions int `json:"total_transactions"`
}

// SummaryService computes read-only aggregates over the ledger.
type SummaryService struct {
	store    repository.SummaryStore
	accounts repository.AccountStore
}

// NewSummaryService returns a SummaryService reading from store and accounts.
func NewSummaryService(store repository.SummaryStore, accounts repository.AccountStore) *SummaryService {
	return &SummaryService{store: store, accounts: accounts}
}

// Dashboard summarizes the owner's balances and activity for the month that
// contains today.
func (s *SummaryService) Dashboard(ctx context.Context, ownerID int64, today date.Date) (*Dashboard, error) {
	if today.IsZero() {
		return nil, invalid("date", "is required")
	}
	monthStart, monthEnd := today.StartOfMonth(), today.EndOfMonth()
	trendStart := date.New(today.Year(), today.Month()-(trendMonths-1), 1)

	accounts, err := s.accounts.ListAccounts(ctx, ownerID)
	if err != nil {
		return nil, asDomainError("list accounts", err)
	}
	months, err := s.store.MonthlyTotals(ctx, ownerID, trendStart, monthEnd)
	if err != nil {
		return nil, asDomainError("monthly totals", err)
	}
	daily, err := s.store.DailyExpenses(ctx, ownerID, today.Add(-(dailySpendingDays - 1)), today)
	if err != nil {
		return nil, asDomainError("daily expenses", err)
	}
	top, err := s.store.TopExpenseCategories(ctx, ownerID, monthStart, monthEnd, topCategoryLimit)
	if err != nil {
		return nil, asDomainError("top categories", err)
	}
	recent, err := s.store.RecentTransactions(ctx, ownerID, recentTransactionLimit)
	if err != nil {
		return nil, asDomainError("recent transactions", err)
	}
	monthCount, err := s.store.CountTransactions(ctx, ownerID, monthStart, monthEnd)
	if err != nil {
		return nil, asDomainError("count transactions", err)
	}
	categoryCount, err := s.store.CountCategories(ctx, ownerID)
	if err != nil {
		return nil, asDomainError("count categories", err)
	}

	trends := monthlyTrends(months, today)
	current, previous := trends[len(trends)-1], trends[len(trends)-2]

	d := &Dashboard{
		Date:               today,
		TotalBalance:       spendableBalance(accounts),
		CurrentMonth:       current,
		PreviousMonth:      previous,
		IncomeGrowth:       percentChange(current.Income, previous.Income),
		ExpenseGrowth:      percentChange(current.Expense, previous.Expense),
		SavingsRate:        percentOf(current.Net, current.Income),
		ExpenseRatio:       percentOf(current.Expense, current.Income),
		RecentTransactions: recent,
		TopCategories:      top,
		DailySpending:      dailySpending(daily, today),
		MonthlyTrends:      trends,
		Stats: DashboardStats{
			TotalAccounts:     len(accounts),
			TotalCategories:   categoryCount,
			TotalTransactions: monthCount,
		},
	}
	if d.RecentTransactions == nil {
		d.RecentTransactions = []models.Transaction{}
	}
	if d.TopCategories == nil {
		d.TopCategories = []models.CategoryTotal{}
	}
	return d, nil
}

// spendableBalance sums the open accounts, leaving credit accounts out.
func spendableBalance(accounts []models.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a.Type != models.AccountCredit && !a.IsDeleted() {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// monthlyTrends returns trendMonths months ending with today's, oldest first.
// Months without activity are zero.
func monthlyTrends(rows []models.MonthTotals, today date.Date) []models.MonthTotals {
	type key struct {
		year  int
		month time.Month
	}
	byMonth := make(map[key]models.MonthTotals, len(rows))
	for _, m := range rows {
		byMonth[key{m.Year, m.Month}] = m
	}

	trends := make([]models.MonthTotals, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		start := date.New(today.Year(), today.Month()-time.Month(i), 1)
		m, ok := byMonth[key{start.Year(), start.Month()}]
		if !ok {
			m = models.MonthTotals{Year: start.Year(), Month: start.Month()}
		}
		m.Net = m.Income.Sub(m.Expense)
		trends = append(trends, m)
	}
	return trends
}

// dailySpending returns the expense total of each of the last
// dailySpendingDays days up to today, zero-filled.
func dailySpending(rows []models.DayTotal, today date.Date) []models.DayTotal {
	byDay := make(map[date.Date]decimal.Decimal, len(rows))
	for _, d := range rows {
		byDay[d.Date] = d.Total
	}
	out := make([]models.DayTotal, 0, dailySpendingDays)
	for i := dailySpendingDays - 1; i >= 0; i-- {
		day := today.Add(-i)
		out = append(out, models.DayTotal{Date: day, Total: byDay[day]})
	}
	return out
}

// percentChange is the change from prev to cur in percent. Growth from zero
// counts as 100.
func percentChange(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		if cur.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(hundred).Round(1)
}

// percentOf is part as a percentage of whole, zero when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}
