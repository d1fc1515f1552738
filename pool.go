package majora

import (
	"context"
	"errors"
	"fmt"

	pool "github.com/jolestar/go-commons-pool"
)

// Pool manages clones of a prototype automaton. Automata are not safe for
// concurrent use, so clients matching the same pattern against several
// streams will borrow one clone per stream.
//
// Borrow and Return are safe for concurrent use.
type Pool[T comparable] struct {
	proto *Automaton[T]
	opool *pool.ObjectPool
}

// PoolOption configures a Pool.
type PoolOption func(*pool.ObjectPoolConfig)

// MaxTotal limits the number of clones handed out at the same time.
// A negative value means no limit, which is the default.
func MaxTotal(n int) PoolOption {
	return func(config *pool.ObjectPoolConfig) {
		config.MaxTotal = n
	}
}

// MaxIdle limits the number of returned clones kept for re-use.
func MaxIdle(n int) PoolOption {
	return func(config *pool.ObjectPoolConfig) {
		config.MaxIdle = n
	}
}

// NewPool creates a pool of clones of proto. The pool keeps its own copy of
// proto, so clients may continue to use proto.
func NewPool[T comparable](ctx context.Context, proto *Automaton[T], opts ...PoolOption) *Pool[T] {
	p := &Pool[T]{proto: proto.Clone()}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return p.proto.Clone(), nil
		})
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	for _, opt := range opts {
		opt(config)
	}
	p.opool = pool.NewObjectPool(ctx, factory, config)
	return p
}

// Borrow returns an automaton from the pool, already started with Begin().
// Clients must not use the automaton after returning it to the pool.
func (p *Pool[T]) Borrow(ctx context.Context) (*Automaton[T], error) {
	o, err := p.opool.BorrowObject(ctx)
	if err != nil {
		return nil, fmt.Errorf("majora: cannot borrow automaton: %w", err)
	}
	a := o.(*Automaton[T])
	a.Begin()
	return a, nil
}

// Return clears all observers of a and puts it back into the pool.
// Automata which have been moved into a composite automaton cannot be
// returned.
func (p *Pool[T]) Return(ctx context.Context, a *Automaton[T]) error {
	if a == nil {
		return errors.New("majora: cannot return nil automaton")
	}
	if a.moved {
		return fmt.Errorf("majora: cannot return automaton: %w", ErrMoved)
	}
	a.observers = nil
	a.active = nil
	if err := p.opool.ReturnObject(ctx, a); err != nil {
		return fmt.Errorf("majora: cannot return automaton: %w", err)
	}
	return nil
}

// Active returns the number of automata currently borrowed.
func (p *Pool[T]) Active() int {
	return p.opool.GetNumActive()
}

// Close closes the pool and releases all idle automata.
func (p *Pool[T]) Close(ctx context.Context) {
	p.opool.Close(ctx)
}
