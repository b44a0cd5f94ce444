package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/moffa90/go-ddcci/ddc"
	"github.com/moffa90/go-ddcci/metrics"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "ddcci.yaml", `
bus:
  device: /dev/i2c-4
  force_address: true
delays:
  save: 500ms
log:
  level: debug
  format: json
metrics:
  enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Bus.Device != "/dev/i2c-4" || !cfg.Bus.Force {
		t.Errorf("bus = %+v", cfg.Bus)
	}
	if time.Duration(cfg.Delays.Save) != 500*time.Millisecond {
		t.Errorf("save delay = %v", time.Duration(cfg.Delays.Save))
	}
	if time.Duration(cfg.Delays.Get) != 50*time.Millisecond {
		t.Errorf("get delay = %v, want default 50ms", time.Duration(cfg.Delays.Get))
	}
	if !cfg.Metrics.Enabled || cfg.Log.Level != "debug" {
		t.Errorf("config = %+v", cfg)
	}
	if !cfg.Logging("ddcci").JSON {
		t.Error("Logging().JSON = false")
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "ddcci.toml", `
[bus]
device = "/dev/i2c-7"

[delays]
response = "60ms"
failed = "250ms"

[log]
level = "warn"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := cfg.DelaySettings()
	want := ddc.DefaultDelays()
	want.Response = 60 * time.Millisecond
	want.Failed = 250 * time.Millisecond
	if d != want {
		t.Errorf("delays = %+v, want %+v", d, want)
	}
	if cfg.Bus.Device != "/dev/i2c-7" || cfg.Bus.Force {
		t.Errorf("bus = %+v", cfg.Bus)
	}
	if len(cfg.Options(nil)) != 1 || len(cfg.BusOptions()) != 1 {
		t.Error("unexpected option counts")
	}
}

func TestMetricsOption(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantObserver bool
	}{
		{name: "enabled", content: "metrics:\n  enabled: true\n", wantObserver: true},
		{name: "disabled", content: "metrics:\n  enabled: false\n"},
		{name: "omitted", content: "bus:\n  device: /dev/i2c-1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.content), FormatYAML)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			reg := prometheus.NewRegistry()
			var hostCfg ddc.Config
			for _, opt := range cfg.Options(reg) {
				opt(&hostCfg)
			}

			if (hostCfg.Observer != nil) != tt.wantObserver {
				t.Fatalf("observer = %v, want present %v", hostCfg.Observer, tt.wantObserver)
			}
			if hostCfg.Delays != ddc.DefaultDelays() {
				t.Errorf("delays = %+v", hostCfg.Delays)
			}
			if !tt.wantObserver {
				return
			}

			m, ok := hostCfg.Observer.(*metrics.Metrics)
			if !ok {
				t.Fatalf("observer type = %T, want *metrics.Metrics", hostCfg.Observer)
			}
			m.CommandDone("get_vcp_feature", 0, nil)
			n, err := testutil.GatherAndCount(reg, "ddcci_commands_total")
			if err != nil {
				t.Fatalf("gather: %v", err)
			}
			if n != 1 {
				t.Errorf("registered series = %d, want 1", n)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.DelaySettings() != ddc.DefaultDelays() {
		t.Errorf("default delays = %+v", cfg.DelaySettings())
	}
	if cfg.Bus.Device != "/dev/i2c-0" {
		t.Errorf("device = %q", cfg.Bus.Device)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{name: "extension", file: "ddcci.json", content: "{}", errMsg: "unsupported config extension"},
		{name: "bad duration", file: "a.yaml", content: "delays:\n  get: soon\n", errMsg: "invalid duration"},
		{name: "negative delay", file: "a.toml", content: "[delays]\nset = \"-5ms\"\n", errMsg: "delays.set"},
		{name: "empty device", file: "a.yaml", content: "bus:\n  device: \"\"\n", errMsg: "bus.device"},
		{name: "bad level", file: "a.yaml", content: "log:\n  level: loud\n", errMsg: "log.level"},
		{name: "bad format", file: "a.toml", content: "[log]\nformat = \"xml\"\n", errMsg: "log.format"},
		{name: "bad toml", file: "a.toml", content: "[bus\n", errMsg: "parse TOML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %q, want substring %q", err, tt.errMsg)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDurationMarshalText(t *testing.T) {
	text, err := Duration(1500 * time.Millisecond).MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "1.5s" {
		t.Errorf("MarshalText() = %q, want 1.5s", text)
	}
}
