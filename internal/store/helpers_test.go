package store_test

import (
	"io"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/persistorai/graphloader/internal/graphstore"
	"github.com/persistorai/graphloader/internal/graphstore/graphstoretest"
	"github.com/persistorai/graphloader/internal/store"
)

func newTestBase(t *testing.T, h graphstoretest.Handler) (store.Base, *graphstoretest.Pool, *test.Hook) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.DebugLevel)
	hook := test.NewLocal(log)

	pool := graphstoretest.NewPool(4, h)

	return store.Base{Pool: pool, Log: log, Verbose: new(atomic.Bool)}, pool, hook
}

func assertBalancedLeases(t *testing.T, pool *graphstoretest.Pool, want int) {
	t.Helper()

	leased, released := pool.Leases()
	if leased != want || released != want {
		t.Errorf("leases = %d acquired / %d released, want %d/%d", leased, released, want, want)
	}
}

// result wraps rows for handlers that answer every statement the same way.
func result(res *graphstore.Result) graphstoretest.Handler {
	return func(string) (*graphstore.Result, error) { return res, nil }
}
