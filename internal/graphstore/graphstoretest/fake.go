// Package graphstoretest provides an in-process SessionPool for tests.
package graphstoretest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/persistorai/graphloader/internal/graphstore"
)

// Handler answers one executed statement.
type Handler func(stmt string) (*graphstore.Result, error)

// Pool records every statement and session lease.
type Pool struct {
	mu         sync.Mutex
	handler    Handler
	size       int
	stmts      []string
	leased     int
	released   int
	closed     bool
	acquireErr error
}

// NewPool returns a pool of the given size answering with h.
func NewPool(size int, h Handler) *Pool {
	return &Pool{handler: h, size: size}
}

// FailAcquire makes every subsequent Acquire return err.
func (p *Pool) FailAcquire(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acquireErr = err
}

// Acquire implements graphstore.SessionPool.
func (p *Pool) Acquire(ctx context.Context) (graphstore.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.acquireErr != nil {
		return nil, p.acquireErr
	}

	p.leased++

	return &session{pool: p}, nil
}

// Size implements graphstore.SessionPool.
func (p *Pool) Size() int { return p.size }

// Close implements graphstore.SessionPool.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Closed reports whether Close was called.
func (p *Pool) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Statements returns every executed statement in order.
func (p *Pool) Statements() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.stmts...)
}

// Leases returns how many sessions were acquired and released.
func (p *Pool) Leases() (leased, released int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.leased, p.released
}

type session struct {
	pool *Pool
	done bool
}

func (s *session) Execute(stmt string) (*graphstore.Result, error) {
	s.pool.mu.Lock()
	s.pool.stmts = append(s.pool.stmts, stmt)
	h := s.pool.handler
	s.pool.mu.Unlock()

	return h(stmt)
}

func (s *session) Release() {
	if s.done {
		return
	}
	s.done = true

	s.pool.mu.Lock()
	defer s.pool.mu.Unlock()
	s.pool.released++
}

// Rows returns a Result whose rows are built from plain Go values:
// int, int64, float64, string, bool, nil, or a graphstore.Cell.
func Rows(rows ...[]any) *graphstore.Result {
	res := &graphstore.Result{Rows: make([]graphstore.Row, 0, len(rows))}

	for _, r := range rows {
		row := make(graphstore.Row, len(r))
		for i, v := range r {
			row[i] = cellOf(v)
		}
		res.Rows = append(res.Rows, row)
	}

	return res
}

func cellOf(v any) graphstore.Cell {
	switch x := v.(type) {
	case graphstore.Cell:
		return x
	case nil:
		return graphstore.Null()
	case int:
		return graphstore.Int(int64(x))
	case int64:
		return graphstore.Int(x)
	case float64:
		return graphstore.Float(x)
	case string:
		return graphstore.String(x)
	case bool:
		return graphstore.Bool(x)
	default:
		return graphstore.Other(fmt.Sprintf("%T", v))
	}
}

// FetchIDs extracts the vertex id list of a FETCH PROP statement.
func FetchIDs(stmt string) ([]int64, error) {
	const head = "FETCH PROP ON * "

	i := strings.Index(stmt, head)
	if i < 0 {
		return nil, fmt.Errorf("not a fetch statement: %q", stmt)
	}

	rest := stmt[i+len(head):]

	j := strings.Index(rest, " YIELD")
	if j < 0 {
		return nil, fmt.Errorf("fetch statement without YIELD: %q", stmt)
	}

	var ids []int64
	for _, s := range strings.Split(rest[:j], ",") {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing fetch id %q: %w", s, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// Vertices answers FETCH PROP statements from an in-memory attribute table.
// Ids missing from the table yield no row, as in the store.
func Vertices(table map[int64][]any) Handler {
	return func(stmt string) (*graphstore.Result, error) {
		ids, err := FetchIDs(stmt)
		if err != nil {
			return nil, err
		}

		rows := make([][]any, 0, len(ids))
		for _, id := range ids {
			vals, ok := table[id]
			if !ok {
				continue
			}
			rows = append(rows, append([]any{id}, vals...))
		}

		return Rows(rows...), nil
	}
}
