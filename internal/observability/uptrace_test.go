package observability

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/config"
	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "roster-wayback-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, "api", logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv != nil {
		t.Fatalf("expected no pprof server when disabled")
	}
	if err := StopPprofServer(srv, nil, 0); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}

func TestStartPprofServer_ServesIndex(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	t.Cleanup(func() { _ = StopPprofServer(srv, logging.NewNop(), time.Second) })

	resp, err := http.Get("http://" + srv.Addr + "/debug/pprof/")
	if err != nil {
		t.Fatalf("get pprof index: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || len(body) == 0 {
		t.Fatalf("unexpected pprof index response: %d", resp.StatusCode)
	}
}

func TestPyroscopeTags(t *testing.T) {
	cfg := config.Config{AppEnv: config.EnvDev, ServiceName: "roster-wayback-api", StorageDriver: config.StorageMemory}

	tags := pyroscopeTags(cfg, "scrape")
	if tags["component"] != "scrape" || tags["storage"] != config.StorageMemory {
		t.Fatalf("unexpected tags: %+v", tags)
	}
	if _, ok := pyroscopeTags(cfg, "")["component"]; ok {
		t.Fatalf("did not expect component tag")
	}
}

func TestProfileRun_InvokesFn(t *testing.T) {
	called := false
	ProfileRun(context.Background(), "scrape", func(ctx context.Context) {
		called = ctx != nil
	})
	if !called {
		t.Fatalf("expected fn to run")
	}
}

func TestUptraceDisabledReason(t *testing.T) {
	if got := uptraceDisabledReason(config.Config{}); got != "UPTRACE_ENABLED=false" {
		t.Fatalf("unexpected reason %q", got)
	}
	if got := uptraceDisabledReason(config.Config{UptraceEnabled: true, UptraceDSN: " "}); got != "UPTRACE_DSN empty" {
		t.Fatalf("unexpected reason %q", got)
	}
	if got := uptraceDisabledReason(config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev/1"}); got != "" {
		t.Fatalf("expected enabled, got %q", got)
	}
}
