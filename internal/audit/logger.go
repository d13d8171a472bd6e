// Package audit writes one JSON line per ledger mutation or scheduler run.
package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// Event is one audit line.
type Event struct {
	Timestamp     time.Time       `json:"timestamp"`
	EventType     string          `json:"event_type"`
	OwnerID       int64           `json:"owner_id,omitempty"`
	TransactionID int64           `json:"transaction_id,omitempty"`
	AccountID     int64           `json:"account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Details       any             `json:"details,omitempty"`
}

// Logger prints events through the standard logger with an AUDIT: prefix.
// The zero value is ready to use.
type Logger struct {
	out *log.Logger
	now func() time.Time
}

// NewLogger returns a Logger writing through the standard logger.
func NewLogger() *Logger {
	return &Logger{}
}

// NewLoggerTo is used by tests to capture output.
func NewLoggerTo(out *log.Logger) *Logger {
	return &Logger{out: out}
}

// LogTransaction records a committed create, update or delete.
func (a *Logger) LogTransaction(op string, ownerID, transactionID, accountID int64, amount decimal.Decimal, details map[string]any) {
	a.log(Event{
		EventType:     op,
		OwnerID:       ownerID,
		TransactionID: transactionID,
		AccountID:     accountID,
		Amount:        amount,
		Status:        "SUCCESS",
		Details:       details,
	})
}

// LogError records an operation that was rolled back.
func (a *Logger) LogError(op string, ownerID, transactionID int64, err error) {
	a.log(Event{
		EventType:     op,
		OwnerID:       ownerID,
		TransactionID: transactionID,
		Status:        "FAILED",
		Details:       map[string]string{"error": err.Error()},
	})
}

// LogRun records the outcome of one scheduler run.
func (a *Logger) LogRun(runID, runDate string, summary any, failed bool) {
	status := "SUCCESS"
	if failed {
		status = "PARTIAL"
	}
	a.log(Event{
		EventType: "RECURRING_RUN",
		Status:    status,
		Details: map[string]any{
			"run_id":   runID,
			"run_date": runDate,
			"summary":  summary,
		},
	})
}

func (a *Logger) log(event Event) {
	if a.now != nil {
		event.Timestamp = a.now()
	} else {
		event.Timestamp = time.Now()
	}
	data, _ := json.Marshal(event)
	if a.out != nil {
		a.out.Printf("AUDIT: %s", string(data))
		return
	}
	log.Printf("AUDIT: %s", string(data))
}
