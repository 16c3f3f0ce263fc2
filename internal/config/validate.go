package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/sirupsen/logrus"
)

func (c *Config) validate() error {
	if err := c.validateGraph(); err != nil {
		return err
	}

	if err := c.validateTimeout(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateMetrics(); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateGraph() error {
	if len(c.Addresses) == 0 {
		return fmt.Errorf("GRAPH_ADDRESSES is required")
	}

	for _, addr := range c.Addresses {
		if err := validateHostPort(addr); err != nil {
			return fmt.Errorf("GRAPH_ADDRESSES entry %q: %w", addr, err)
		}
	}

	if c.User == "" {
		return fmt.Errorf("GRAPH_USER is required")
	}

	return nil
}

func (c *Config) validateTimeout() error {
	if c.Timeout < 0 {
		return fmt.Errorf("GRAPH_TIMEOUT must not be negative")
	}

	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is not a valid level: %w", err)
	}

	return nil
}

func (c *Config) validateMetrics() error {
	if c.MetricsAddr == "" {
		return nil
	}

	if err := validateHostPort(c.MetricsAddr); err != nil {
		return fmt.Errorf("METRICS_ADDR: %w", err)
	}

	host, _, _ := net.SplitHostPort(c.MetricsAddr) //nolint:errcheck // validated above.

	// Loopback for local runs, wildcard for containers where the network
	// boundary is enforced externally.
	validHosts := map[string]bool{
		"127.0.0.1": true,
		"::1":       true,
		"localhost": true,
		"0.0.0.0":   true,
		"::":        true,
		"":          true,
	}
	if !validHosts[host] {
		return fmt.Errorf("METRICS_ADDR must use a loopback address or 0.0.0.0/:: for containers (got %q)", host)
	}

	return nil
}

// validateHostPort checks addr is host:port with a port in 1..65535.
func validateHostPort(addr string) error {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("must be host:port: %w", err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("port must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	return nil
}
