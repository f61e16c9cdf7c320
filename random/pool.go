//
// Copyright (c) 2026 ORQ authors
//
// All rights reserved.
//

package random

import (
	"fmt"

	"github.com/caspsystems/orq/orqerr"
)

// batch is a homogeneous, pre-generated block of correlated
// randomness of unspecified underlying type, opaque to the Pool
// itself; callers type-assert back to the concrete generator's
// output type (Triple[T], ShardedPermutation[T], ...) they expect.
type batch struct {
	items []any
}

// Pool is a runtime's front door to every correlation kind it may
// need, grounded in the Correlation enum of correlation_generator.h:
// operators never talk to a generator directly, they Reserve a count
// against a Correlation and GetNext to drain it, so the runtime can
// batch-generate ahead of demand (spec.md section 4.3's reservation
// and batching requirement).
type Pool struct {
	queues map[Correlation][]any
}

func NewPool() *Pool {
	return &Pool{queues: make(map[Correlation][]any)}
}

// Reserve appends n freshly produced items of kind c to its queue.
// produce is called exactly once per Reserve call with the requested
// count; pools never over- or under-produce silently.
func Reserve[T any](p *Pool, c Correlation, n int, produce func(n int) []T) {
	items := make([]any, n)
	vals := produce(n)
	for i, v := range vals {
		items[i] = v
	}
	p.queues[c] = append(p.queues[c], items...)
}

// GetNext pops n items of kind c off the front of the queue, failing
// with orqerr.Exhausted (spec.md section 7) if fewer than n remain -
// the caller must Reserve more before retrying, since Pool never
// blocks to generate on demand.
func GetNext[T any](p *Pool, c Correlation, n int) ([]T, error) {
	q := p.queues[c]
	if len(q) < n {
		return nil, orqerr.NewExhausted(c.String(), n, len(q))
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		v, ok := q[i].(T)
		if !ok {
			return nil, orqerr.NewIntegrity(fmt.Sprintf("pool: queue %s holds the wrong item type", c))
		}
		out[i] = v
	}
	p.queues[c] = q[n:]
	return out, nil
}

// Available reports how many items of kind c are queued.
func (p *Pool) Available(c Correlation) int {
	return len(p.queues[c])
}
