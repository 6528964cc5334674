package pool

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"tierparse/internal/domain"
)

// Task is one unit of blocking work executed while holding a slot.
type Task func(ctx context.Context) error

// Pool gates concurrent blocking engine calls for one tier. A fixed
// number of slots is the only concurrency ceiling; there is no queue
// state beyond the waiters themselves, and admission among waiters is
// first-come-first-served.
type Pool struct {
	tier     domain.Tier
	size     int
	policy   domain.QueuePolicy
	sem      *semaphore.Weighted
	inFlight atomic.Int64
	waiting  atomic.Int64
}

// New creates a pool with the given slot count. Sizes below 1 are
// clamped to 1. Unknown policies fall back to block.
func New(tier domain.Tier, size int, policy domain.QueuePolicy) *Pool {
	if size < 1 {
		size = 1
	}
	if policy != domain.QueuePolicyReject {
		policy = domain.QueuePolicyBlock
	}
	return &Pool{
		tier:   tier,
		size:   size,
		policy: policy,
		sem:    semaphore.NewWeighted(int64(size)),
	}
}

// Submit acquires a slot, runs task, and releases the slot when the
// task returns, including on panic.
//
// With the block policy the caller waits for a slot until ctx is done,
// in which case domain.ErrTimeout is returned. With the reject policy
// a full pool returns domain.ErrPoolSaturated immediately.
//
// A task that is already running is never preempted: if ctx expires
// mid-task the task keeps running and its slot stays held until it
// returns. Callers that stop waiting must do so above this layer.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	if err := p.acquire(ctx); err != nil {
		return err
	}
	p.inFlight.Add(1)
	defer func() {
		p.inFlight.Add(-1)
		p.sem.Release(1)
	}()
	return p.run(ctx, task)
}

func (p *Pool) acquire(ctx context.Context) error {
	if p.policy == domain.QueuePolicyReject {
		if !p.sem.TryAcquire(1) {
			return domain.ErrPoolSaturated
		}
		return nil
	}
	p.waiting.Add(1)
	defer p.waiting.Add(-1)
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return domain.ErrTimeout
	}
	return nil
}

// run isolates panic recovery so a panicking engine call surfaces as
// an error instead of crashing the process.
func (p *Pool) run(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pool.Submit: recovered panic in %s tier task: %v", p.tier, r)
			err = fmt.Errorf("%w: task panic", domain.ErrEngineFailure)
		}
	}()
	return task(ctx)
}

// Stats returns a point-in-time utilization snapshot.
func (p *Pool) Stats() domain.PoolStats {
	return domain.PoolStats{
		Size:     p.size,
		InFlight: int(p.inFlight.Load()),
		Waiting:  int(p.waiting.Load()),
	}
}
