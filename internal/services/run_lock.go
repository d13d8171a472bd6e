package services

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/kasflow/backend/internal/date"
)

const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// RunLock keeps two scheduler instances from processing the same date at
// once. A nil RunLock, or one without a client, never blocks.
type RunLock struct {
	client *redis.Client
	ttl    time.Duration
	token  func() string
}

// NewRunLock returns a lock held in Redis for at most ttl. A nil client
// gives a lock that never blocks.
func NewRunLock(client *redis.Client, ttl time.Duration) *RunLock {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RunLock{client: client, ttl: ttl, token: uuid.NewString}
}

func runLockKey(on date.Date) string {
	return "recurring:run:" + on.String()
}

// Acquire takes the lock for on. It returns ErrRunInProgress when another
// holder has it. The returned release func is always safe to call.
func (l *RunLock) Acquire(ctx context.Context, on date.Date) (func(), error) {
	if l == nil || l.client == nil {
		return func() {}, nil
	}

	key := runLockKey(on)
	token := l.token()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, &ConsistencyError{Op: "acquire run lock", Err: err}
	}
	if !ok {
		return nil, ErrRunInProgress
	}

	return func() {
		// the run's ctx may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.client.Eval(releaseCtx, releaseScript, []string{key}, token).Err(); err != nil {
			log.Printf("[SCHEDULER] failed to release run lock %s: %v", key, err)
		}
	}, nil
}
