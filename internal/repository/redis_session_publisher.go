package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/runtime"
)

const (
	sessionChannelPrefix = "session:updates:"
	snapshotDebounce     = 300 * time.Millisecond
)

// RedisSessionPublisher pushes live session snapshots to companion displays
// over Redis pub/sub. Publishing is best effort and debounced so a burst of
// mutations collapses into one message carrying the latest snapshot.
type RedisSessionPublisher struct {
	client *redis.Client
	userID string

	mu      sync.Mutex
	pending *runtime.Snapshot
	timer   *time.Timer
}

func NewRedisSessionPublisher(client *redis.Client, userID string) *RedisSessionPublisher {
	return &RedisSessionPublisher{client: client, userID: userID}
}

// Publish queues a snapshot for delivery. Later snapshots within the debounce
// window replace earlier ones.
func (p *RedisSessionPublisher) Publish(snap runtime.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = &snap
	if p.timer == nil {
		p.timer = time.AfterFunc(snapshotDebounce, p.flush)
	}
}

// Close drops any queued snapshot without sending it.
func (p *RedisSessionPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.pending = nil
}

func (p *RedisSessionPublisher) flush() {
	p.mu.Lock()
	snap := p.pending
	p.pending = nil
	p.timer = nil
	p.mu.Unlock()

	if snap == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	// A display that misses a message just waits for the next one.
	_ = p.client.Publish(ctx, sessionChannelPrefix+p.userID, data).Err()
}
