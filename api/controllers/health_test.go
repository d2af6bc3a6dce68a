package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tijaralink/tijaralink-backend/pkg/config"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}
	handler := HealthLive(cfg)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get(envHeader); got != "test" {
		t.Fatalf("expected env header set to test got %q", got)
	}
}

func TestHealthReadyAllUp(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}
	handler := HealthReady(cfg, testLogger(), fakePinger{}, fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestHealthReadyReportsDownDependency(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}
	handler := HealthReady(cfg, testLogger(), fakePinger{err: errors.New("connection refused")}, fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
