// Command healthcheck calls the kbdash health endpoint for container health checks.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/ericfisherdev/kbdash/internal/config"
)

const defaultCheckAddr = "127.0.0.1:8080"

func main() {
	os.Exit(check())
}

func check() int {
	addr := normalizeAddr(listenAddr())

	client := &http.Client{Timeout: 2 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://%s/api/v1/health", addr), nil)
	if err != nil {
		return 1
	}

	resp, err := client.Do(req)
	if err != nil {
		return 1
	}
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 1
	}

	return 0
}

// listenAddr resolves listen_addr through the same .env, YAML and KBDASH_*
// layers the server reads. An invalid configuration still checks the address
// set in the environment.
func listenAddr() string {
	cfg, err := config.Load()
	if err != nil {
		return os.Getenv(config.EnvPrefix + "LISTEN_ADDR")
	}
	return cfg.ListenAddr
}

// normalizeAddr ensures the healthcheck connects to loopback rather than the
// bind-all address. The check runs inside the server's container.
func normalizeAddr(raw string) string {
	if raw == "" {
		return defaultCheckAddr
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return defaultCheckAddr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return net.JoinHostPort(host, port)
}
