package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/kasflow/backend/internal/audit"
	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/recurrence"
	"github.com/kasflow/backend/internal/repository"
)

// RuleFailure names a rule that could not be processed and why.
type RuleFailure struct {
	RuleID int64  `json:"rule_id"`
	Error  string `json:"error"`
}

// RunSummary counts what one scheduler run did with each active rule.
type RunSummary struct {
	RunID      string        `json:"run_id"`
	Date       date.Date     `json:"date"`
	Considered int           `json:"considered"`
	Created    int           `json:"created"`
	Skipped    int           `json:"skipped"`
	NotDue     int           `json:"not_due"`
	Failed     int           `json:"failed"`
	Failures   []RuleFailure `json:"failures,omitempty"`
}

// Scheduler turns due recurring rules into ledger transactions.
type Scheduler struct {
	store  repository.LedgerStore
	ledger *LedgerService
	lock   *RunLock
	audit  *audit.Logger
	loc    *time.Location
	newID  func() string
}

// NewScheduler builds a scheduler. lock may be nil; loc defaults to UTC.
func NewScheduler(store repository.LedgerStore, ledger *LedgerService, lock *RunLock, auditLogger *audit.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if auditLogger == nil {
		auditLogger = audit.NewLogger()
	}
	return &Scheduler{
		store:  store,
		ledger: ledger,
		lock:   lock,
		audit:  auditLogger,
		loc:    loc,
		newID:  uuid.NewString,
	}
}

// Run materializes every rule that fires on the given day. Running twice for
// the same day creates nothing new. A failing rule is counted and logged and
// does not stop the others.
func (s *Scheduler) Run(ctx context.Context, on date.Date) (*RunSummary, error) {
	summary := &RunSummary{RunID: s.newID(), Date: on}

	release, err := s.lock.Acquire(ctx, on)
	if err != nil {
		return nil, err
	}
	defer release()

	rules, err := s.store.ListActiveRecurring(ctx, on)
	if err != nil {
		return nil, asDomainError("load recurring rules", err)
	}

	log.Printf("[SCHEDULER] run %s for %s: %d active rules", summary.RunID, on, len(rules))
	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Considered++

		if !recurrence.ShouldFire(rule, on) {
			summary.NotDue++
			continue
		}

		tr, err := s.ledger.createGenerated(ctx, rule, on)
		switch {
		case err == nil:
			summary.Created++
			log.Printf("[SCHEDULER] rule %d created transaction %d", rule.ID, tr.ID)
		case errors.Is(err, ErrAlreadyGenerated):
			summary.Skipped++
		default:
			summary.Failed++
			summary.Failures = append(summary.Failures, RuleFailure{RuleID: rule.ID, Error: err.Error()})
			log.Printf("[SCHEDULER] rule %d failed: %v", rule.ID, err)
			s.audit.LogError("RECURRING_GENERATE", rule.OwnerID, 0, err)
		}
	}

	log.Printf("[SCHEDULER] run %s for %s done: considered=%d created=%d skipped=%d not_due=%d failed=%d",
		summary.RunID, on, summary.Considered, summary.Created, summary.Skipped, summary.NotDue, summary.Failed)
	s.audit.LogRun(summary.RunID, on.String(), summary, summary.Failed > 0)
	return summary, nil
}

// RunDaily runs for today at start-up and then after every local midnight
// until ctx is cancelled.
func (s *Scheduler) RunDaily(ctx context.Context) {
	for {
		if _, err := s.Run(ctx, date.Today(s.loc)); err != nil {
			if !errors.Is(err, ErrRunInProgress) && ctx.Err() == nil {
				log.Printf("[SCHEDULER] run failed: %v", err)
			}
		}

		timer := time.NewTimer(time.Until(nextMidnight(time.Now().In(s.loc))))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("[SCHEDULER] stopped")
			return
		case <-timer.C:
		}
	}
}

func nextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}
