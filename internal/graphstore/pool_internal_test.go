package graphstore

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseHosts(t *testing.T) {
	hosts, err := parseHosts([]string{"127.0.0.1:9669", "[::1]:9670"})
	if err != nil {
		t.Fatalf("parseHosts: %v", err)
	}

	if len(hosts) != 2 || hosts[0].Host != "127.0.0.1" || hosts[0].Port != 9669 || hosts[1].Host != "::1" {
		t.Errorf("unexpected hosts: %+v", hosts)
	}

	for _, bad := range [][]string{nil, {"graphd"}, {"graphd:0"}, {"graphd:port"}} {
		if _, err := parseHosts(bad); err == nil {
			t.Errorf("parseHosts(%v) succeeded, want error", bad)
		}
	}
}

// TestPool_Live runs against a real store when TEST_GRAPH_ADDRESSES is set.
func TestPool_Live(t *testing.T) {
	addrs := os.Getenv("TEST_GRAPH_ADDRESSES")
	if addrs == "" {
		t.Skip("TEST_GRAPH_ADDRESSES not set")
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	pool, err := NewPool(context.Background(), Config{
		Addresses: strings.Split(addrs, ","),
		User:      "root",
		Password:  "nebula",
		PoolSize:  2,
	}, log)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer pool.Close()

	if err := HealthCheck(context.Background(), pool); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}

	sess, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	sess.Release()
	sess.Release()
}
