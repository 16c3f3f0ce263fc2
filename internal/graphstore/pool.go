// Package graphstore provides the pooled connection to the remote graph
// store and the type-tagged result rows read from it.
package graphstore

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	nebula "github.com/vesoft-inc/nebula-go/v3"
	"golang.org/x/sync/semaphore"

	"github.com/persistorai/graphloader/internal/metrics"
	"github.com/persistorai/graphloader/internal/models"
)

// Config describes how to reach the store.
type Config struct {
	Addresses []string
	User      string
	Password  string
	PoolSize  int
	Timeout   time.Duration
}

// rawSession is the part of *nebula.Session a lease uses.
type rawSession interface {
	Execute(stmt string) (*nebula.ResultSet, error)
	Release()
}

// connector hands out raw sessions; *nebula.ConnectionPool via nebulaConnector.
type connector interface {
	getSession(user, password string) (rawSession, error)
	Close()
}

type nebulaConnector struct {
	*nebula.ConnectionPool
}

func (c nebulaConnector) getSession(user, password string) (rawSession, error) {
	sess, err := c.GetSession(user, password)
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// Pool wraps a nebula connection pool. Concurrent leases are bounded by a
// semaphore so Acquire blocks at capacity instead of failing.
// The underlying pool is unexported to force every lease through Acquire.
type Pool struct {
	conn     connector
	sem      *semaphore.Weighted
	size     int
	user     string
	password string
	log      *logrus.Logger
}

// Compile-time check: *Pool must satisfy SessionPool.
var _ SessionPool = (*Pool)(nil)

// NewPool connects to the store and verifies it answers a trivial statement.
func NewPool(ctx context.Context, cfg Config, log *logrus.Logger) (*Pool, error) {
	hosts, err := parseHosts(cfg.Addresses)
	if err != nil {
		return nil, err
	}

	if cfg.PoolSize < 1 {
		return nil, fmt.Errorf("pool size must be positive, got %d", cfg.PoolSize)
	}

	conf := nebula.GetDefaultConf()
	conf.MaxConnPoolSize = cfg.PoolSize
	conf.MinConnPoolSize = min(2, cfg.PoolSize)
	if cfg.Timeout > 0 {
		conf.TimeOut = cfg.Timeout
	}

	pool, err := nebula.NewConnectionPool(hosts, conf, logAdapter{log: log})
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	p := newPool(nebulaConnector{pool}, cfg, log)

	if err := HealthCheck(ctx, p); err != nil {
		p.Close()

		return nil, fmt.Errorf("pinging graph store: %w", err)
	}

	return p, nil
}

func newPool(conn connector, cfg Config, log *logrus.Logger) *Pool {
	return &Pool{
		conn:     conn,
		sem:      semaphore.NewWeighted(int64(cfg.PoolSize)),
		size:     cfg.PoolSize,
		user:     cfg.User,
		password: cfg.Password,
		log:      log,
	}
}

// Acquire leases a session, blocking while all sessions are in use.
func (p *Pool) Acquire(ctx context.Context) (Session, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: waiting for a free session: %w", models.ErrInvalidSession, err)
	}

	sess, err := p.conn.getSession(p.user, p.password)
	if err != nil {
		p.sem.Release(1)

		return nil, fmt.Errorf("%w: %w", models.ErrInvalidSession, err)
	}

	metrics.SessionsInUse.Inc()

	return &nebulaSession{sess: sess, pool: p}, nil
}

// Size returns the maximum number of concurrent sessions.
func (p *Pool) Size() int { return p.size }

// Close closes every connection in the pool.
func (p *Pool) Close() {
	p.conn.Close()
}

type nebulaSession struct {
	sess     rawSession
	pool     *Pool
	released bool
}

func (s *nebulaSession) Execute(stmt string) (*Result, error) {
	rs, err := s.sess.Execute(stmt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrExecutionFailure, err)
	}

	if !rs.IsSucceed() {
		return nil, fmt.Errorf("%w: %s (code %v)", models.ErrExecutionFailure, rs.GetErrorMsg(), rs.GetErrorCode())
	}

	return convertResult(rs)
}

func (s *nebulaSession) Release() {
	if s.released {
		return
	}

	s.released = true
	s.sess.Release()
	s.pool.sem.Release(1)
	metrics.SessionsInUse.Dec()
}

// convertResult copies a nebula result set into tagged cells.
func convertResult(rs *nebula.ResultSet) (*Result, error) {
	cols := rs.GetColNames()
	n := rs.GetRowSize()

	res := &Result{Columns: cols, Rows: make([]Row, 0, n)}

	for i := 0; i < n; i++ {
		record, err := rs.GetRowValuesByIndex(i)
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", i, err)
		}

		row := make(Row, len(cols))
		for j := range cols {
			v, err := record.GetValueByIndex(j)
			if err != nil {
				return nil, fmt.Errorf("reading row %d column %d: %w", i, j, err)
			}

			row[j] = convertValue(v)
		}

		res.Rows = append(res.Rows, row)
	}

	return res, nil
}

// taggedValue is the accessor set of *nebula.ValueWrapper used to tag cells.
type taggedValue interface {
	IsNull() bool
	IsInt() bool
	IsFloat() bool
	IsString() bool
	IsBool() bool
	AsInt() (int64, error)
	AsFloat() (float64, error)
	AsString() (string, error)
	AsBool() (bool, error)
	GetType() string
}

func convertValue(v taggedValue) Cell {
	switch {
	case v.IsNull():
		return Null()
	case v.IsInt():
		if n, err := v.AsInt(); err == nil {
			return Int(n)
		}
	case v.IsFloat():
		if f, err := v.AsFloat(); err == nil {
			return Float(f)
		}
	case v.IsString():
		if s, err := v.AsString(); err == nil {
			return String(s)
		}
	case v.IsBool():
		if b, err := v.AsBool(); err == nil {
			return Bool(b)
		}
	}

	return Other(v.GetType())
}

func parseHosts(addrs []string) ([]nebula.HostAddress, error) {
	if len(addrs) == 0 {
		return nil, fmt.Errorf("at least one graph store address is required")
	}

	hosts := make([]nebula.HostAddress, 0, len(addrs))

	for _, addr := range addrs {
		host, portStr, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, fmt.Errorf("parsing address %q: %w", addr, err)
		}

		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("address %q has an invalid port", addr)
		}

		hosts = append(hosts, nebula.HostAddress{Host: host, Port: port})
	}

	return hosts, nil
}

// logAdapter routes the nebula client's log lines into logrus.
type logAdapter struct {
	log *logrus.Logger
}

func (l logAdapter) Info(msg string)  { l.log.WithField("component", "nebula").Debug(msg) }
func (l logAdapter) Warn(msg string)  { l.log.WithField("component", "nebula").Warn(msg) }
func (l logAdapter) Error(msg string) { l.log.WithField("component", "nebula").Error(msg) }

// Fatal is downgraded to Error.
func (l logAdapter) Fatal(msg string) { l.log.WithField("component", "nebula").Error(msg) }
