package i2cdev

import (
	"path/filepath"
	"testing"
)

func TestPath(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "/dev/i2c-0"},
		{4, "/dev/i2c-4"},
		{12, "/dev/i2c-12"},
	}

	for _, tt := range tests {
		if got := Path(tt.n); got != tt.want {
			t.Errorf("Path(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestOpenMissingDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2c-99")

	bus, err := Open(path)
	if err == nil {
		_ = bus.Close()
		t.Fatal("expected error for missing device node")
	}
}

func TestWithForce(t *testing.T) {
	b := &Bus{}
	WithForce(true)(b)
	if !b.force {
		t.Error("WithForce(true) did not set force")
	}
}
