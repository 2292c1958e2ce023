package cmd

import (
	"testing"
	"time"

	"assay/internal/config"
)

func TestParseProbeArguments(t *testing.T) {
	t.Run("key=value pairs", func(t *testing.T) {
		args, err := parseProbeArguments([]string{"path=/tmp/notes.txt", "recursive=true", "depth=3"}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if args["path"] != "/tmp/notes.txt" {
			t.Errorf("expected path %q, got %v", "/tmp/notes.txt", args["path"])
		}
		// JSON-looking values are decoded to their natural types
		if args["recursive"] != true {
			t.Errorf("expected recursive true, got %v", args["recursive"])
		}
		if args["depth"] != float64(3) {
			t.Errorf("expected depth 3, got %v", args["depth"])
		}
	})

	t.Run("json document", func(t *testing.T) {
		args, err := parseProbeArguments(nil, `{"path": "/tmp", "limit": 5}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if args["path"] != "/tmp" {
			t.Errorf("expected path %q, got %v", "/tmp", args["path"])
		}
		if args["limit"] != float64(5) {
			t.Errorf("expected limit 5, got %v", args["limit"])
		}
	})

	t.Run("invalid json document", func(t *testing.T) {
		_, err := parseProbeArguments(nil, `{"path": `)
		if err == nil {
			t.Fatal("expected error for truncated JSON")
		}
	})

	t.Run("invalid pair", func(t *testing.T) {
		_, err := parseProbeArguments([]string{"no-equals-sign"}, "")
		if err == nil {
			t.Fatal("expected error for pair without =")
		}
	})

	t.Run("no arguments", func(t *testing.T) {
		args, err := parseProbeArguments(nil, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if args != nil {
			t.Errorf("expected nil args, got %v", args)
		}
	})
}

func TestBuildProbeOptions(t *testing.T) {
	defaults := config.ExecutionDefaults{
		TimeoutMs:           30000,
		CreateSnapshot:      false,
		RequireConfirmation: true,
	}

	t.Run("defaults only", func(t *testing.T) {
		opts := buildProbeOptions(defaults, probeSettings{})

		if opts.Timeout != 30*time.Second {
			t.Errorf("expected timeout 30s from defaults, got %v", opts.Timeout)
		}
		if opts.CreateSnapshot {
			t.Error("expected no snapshot")
		}
		if !opts.RequireConfirmation {
			t.Error("expected confirmation gate to stay active")
		}
		if opts.Confirmed {
			t.Error("expected not confirmed")
		}
	})

	t.Run("explicit timeout wins over default", func(t *testing.T) {
		opts := buildProbeOptions(defaults, probeSettings{Timeout: 5 * time.Second, TimeoutSet: true})

		if opts.Timeout != 5*time.Second {
			t.Errorf("expected timeout 5s from flag, got %v", opts.Timeout)
		}
	})

	t.Run("zero default timeout leaves timeout unset", func(t *testing.T) {
		opts := buildProbeOptions(config.ExecutionDefaults{}, probeSettings{})

		if opts.Timeout != 0 {
			t.Errorf("expected zero timeout, got %v", opts.Timeout)
		}
	})

	t.Run("snapshot flag", func(t *testing.T) {
		opts := buildProbeOptions(defaults, probeSettings{Snapshot: true})

		if !opts.CreateSnapshot {
			t.Error("expected snapshot from flag")
		}
	})

	t.Run("snapshot default", func(t *testing.T) {
		snapshotDefaults := defaults
		snapshotDefaults.CreateSnapshot = true

		opts := buildProbeOptions(snapshotDefaults, probeSettings{})

		if !opts.CreateSnapshot {
			t.Error("expected snapshot from defaults")
		}
	})

	t.Run("confirmed and notes pass through", func(t *testing.T) {
		opts := buildProbeOptions(defaults, probeSettings{Confirmed: true, Notes: "manual run"})

		if !opts.Confirmed {
			t.Error("expected confirmed to pass through")
		}
		if opts.Notes != "manual run" {
			t.Errorf("expected notes %q, got %q", "manual run", opts.Notes)
		}
	})
}
