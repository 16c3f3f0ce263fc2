// Package store turns sampling requests into graph store statements and
// materializes their results as dense arrays.
//
// Each store owns one operation (subgraph sampling, attribute gathering)
// and embeds shared helpers (pool, logger, verbose flag) via the Base struct.
package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphloader/internal/graphstore"
	"github.com/persistorai/graphloader/internal/metrics"
)

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool graphstore.SessionPool
	Log  *logrus.Logger

	// Verbose, when set and true, logs every statement before it runs.
	Verbose *atomic.Bool
}

// execute runs stmt on its own leased session and records metrics for op.
func (b *Base) execute(ctx context.Context, op, stmt string) (*graphstore.Result, error) {
	if b.Verbose != nil && b.Verbose.Load() {
		b.Log.WithFields(logrus.Fields{
			"op":   op,
			"stmt": stmt,
		}).Info("executing statement")
	}

	start := time.Now()
	res, err := graphstore.Exec(ctx, b.Pool, stmt)
	metrics.StatementDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.StatementsTotal.WithLabelValues(op, metrics.StatusError).Inc()
		b.Log.WithError(err).WithField("op", op).Warn("statement failed")

		return nil, err
	}

	metrics.StatementsTotal.WithLabelValues(op, metrics.StatusOK).Inc()
	metrics.RowsTotal.WithLabelValues(op).Add(float64(len(res.Rows)))

	return res, nil
}
