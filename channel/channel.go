// Package channel is the entry point for training loops: it owns a pooled
// connection to the graph store and exposes subgraph sampling and bulk
// attribute gathering as dense arrays.
package channel

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/persistorai/graphloader/internal/graphstore"
	"github.com/persistorai/graphloader/internal/metrics"
	"github.com/persistorai/graphloader/internal/models"
	"github.com/persistorai/graphloader/internal/store"
)

// Default session credentials of a fresh store deployment.
const (
	DefaultUser     = "root"
	DefaultPassword = "nebula"
)

// Channel samples subgraphs and gathers attributes over a shared session pool.
// It is safe for concurrent use; every call leases its own sessions.
type Channel struct {
	pool    graphstore.SessionPool
	log     *logrus.Logger
	verbose atomic.Bool

	batchSize int
	subgraph  *store.SubgraphStore
	attrs     *store.AttributeStore
}

// Option configures a Channel.
type Option func(*settings)

type settings struct {
	log       *logrus.Logger
	batchSize int
	user      string
	password  string
	timeout   time.Duration
}

// WithLogger sets the logger. Defaults to a logrus logger at Info level.
func WithLogger(log *logrus.Logger) Option {
	return func(s *settings) { s.log = log }
}

// WithBatchSize sets the attribute gathering window. Defaults to 512.
func WithBatchSize(n int) Option {
	return func(s *settings) { s.batchSize = n }
}

// WithCredentials sets the session user and password used by Open.
func WithCredentials(user, password string) Option {
	return func(s *settings) { s.user, s.password = user, password }
}

// WithTimeout sets the store client's socket timeout used by Open.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

func newSettings(opts []Option) settings {
	s := settings{
		batchSize: store.DefaultBatchSize,
		user:      DefaultUser,
		password:  DefaultPassword,
	}
	for _, o := range opts {
		o(&s)
	}
	if s.log == nil {
		s.log = logrus.New()
	}
	return s
}

// Open connects a pool of up to poolSize sessions to the store at addresses
// ("host:port") and returns a Channel that owns it.
func Open(ctx context.Context, addresses []string, poolSize int, opts ...Option) (*Channel, error) {
	s := newSettings(opts)

	pool, err := graphstore.NewPool(ctx, graphstore.Config{
		Addresses: addresses,
		User:      s.user,
		Password:  s.password,
		PoolSize:  poolSize,
		Timeout:   s.timeout,
	}, s.log)
	if err != nil {
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	return newChannel(pool, s), nil
}

// New wraps an already initialized pool. The Channel takes ownership of it.
func New(pool SessionPool, opts ...Option) *Channel {
	return newChannel(pool, newSettings(opts))
}

func newChannel(pool graphstore.SessionPool, s settings) *Channel {
	c := &Channel{pool: pool, log: s.log}
	base := store.Base{Pool: pool, Log: s.log, Verbose: &c.verbose}
	c.subgraph = store.NewSubgraphStore(base)
	c.attrs = store.NewAttributeStore(base, s.batchSize)
	c.batchSize = c.attrs.BatchSize()
	return c
}

// Debug turns on logging of every generated statement before it runs.
func (c *Channel) Debug() {
	c.verbose.Store(true)
}

// SetVerbose turns statement logging on or off.
func (c *Channel) SetVerbose(on bool) {
	c.verbose.Store(on)
}

// BatchSize returns the attribute gathering window.
func (c *Channel) BatchSize() int { return c.batchSize }

// Close releases the pool.
func (c *Channel) Close() {
	c.pool.Close()
}

// SampleSubgraph runs the layered traversal from start and returns a [4, M]
// array of (src, dst, hop distance, timestamp) columns.
func (c *Channel) SampleSubgraph(ctx context.Context, space string, start []int64, layers []LayerSpec) (EdgeArray, error) {
	log := c.log.WithFields(logrus.Fields{
		"call_id": uuid.NewString(),
		"space":   space,
		"start":   len(start),
		"layers":  len(layers),
	})
	log.Debug("channel.sample_subgraph")

	edges, err := c.subgraph.Sample(ctx, space, start, layers)
	if err != nil {
		return EdgeArray{}, c.fail(log, err)
	}

	log.WithField("edges", edges.Len()).Debug("channel.sample_subgraph done")
	return edges, nil
}

// GatherAttributes fetches attrs for start in windows of BatchSize. The
// result holds one row per distinct id of each window.
func (c *Channel) GatherAttributes(ctx context.Context, space string, start []int64, attrs []string) (AttributeArrays, error) {
	log := c.log.WithFields(logrus.Fields{
		"call_id": uuid.NewString(),
		"space":   space,
		"start":   len(start),
		"attrs":   len(attrs),
	})
	log.Debug("channel.gather_attributes")

	out, err := c.attrs.Gather(ctx, space, start, attrs)
	if err != nil {
		return AttributeArrays{}, c.fail(log, err)
	}

	log.WithField("vertices", out.Len()).Debug("channel.gather_attributes done")
	return out, nil
}

// SampleBlock samples a subgraph and gathers attrs for every vertex it
// touches. Vertices are sorted by id and hold exactly the sampled vertex ids.
func (c *Channel) SampleBlock(ctx context.Context, space string, start []int64, attrs []string, layers []LayerSpec) (*Block, error) {
	edges, err := c.SampleSubgraph(ctx, space, start, layers)
	if err != nil {
		return nil, err
	}

	ids := edges.VertexIDs()
	if len(ids) == 0 {
		return &Block{Edges: edges, Vertices: models.NewAttributeArrays(0, len(attrs))}, nil
	}

	verts, err := c.GatherAttributes(ctx, space, ids, attrs)
	if err != nil {
		return nil, err
	}

	if verts.Len() != len(ids) {
		err := fmt.Errorf("%w: sampled %d vertices, store returned %d", models.ErrIncompleteAttributes, len(ids), verts.Len())
		return nil, c.fail(c.log.WithField("space", space), err)
	}

	verts = verts.SortedByIndex()
	if !slices.Equal(verts.Index, ids) {
		err := fmt.Errorf("%w: store returned ids outside the sampled set", models.ErrIncompleteAttributes)
		return nil, c.fail(c.log.WithField("space", space), err)
	}

	return &Block{Edges: edges, Vertices: verts}, nil
}

// BlockRequest is one SampleBlock call for SampleBlocks.
type BlockRequest struct {
	Space  string
	Start  []int64
	Attrs  []string
	Layers []LayerSpec
}

// SampleBlocks runs SampleBlock for every request concurrently, at most
// pool size at a time. Results keep request order; the first failure
// cancels the rest.
func (c *Channel) SampleBlocks(ctx context.Context, reqs []BlockRequest) ([]*Block, error) {
	out := make([]*Block, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, c.pool.Size()))

	for i, r := range reqs {
		g.Go(func() error {
			b, err := c.SampleBlock(gctx, r.Space, r.Start, r.Attrs, r.Layers)
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			out[i] = b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// HealthCheck verifies the store answers a trivial statement.
func (c *Channel) HealthCheck(ctx context.Context) error {
	return graphstore.HealthCheck(ctx, c.pool)
}

func (c *Channel) fail(log *logrus.Entry, err error) error {
	kind := models.Kind(err)
	metrics.ErrorsTotal.WithLabelValues(kind).Inc()
	log.WithError(err).WithField("kind", kind).Debug("channel call failed")
	return err
}
