package main

import (
	"bytes"
	"context"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGet_MissingKey(t *testing.T) {
	_, err := runCLI(t, "get", "absent")
	if err == nil {
		t.Fatal("expected an error for an absent key")
	}
}

func TestExpire_MemoryBackend(t *testing.T) {
	if _, err := runCLI(t, "expire", "anything"); err != nil {
		t.Fatalf("expire: %v", err)
	}
}

func TestPing_MemoryBackendHasNoPinger(t *testing.T) {
	if _, err := runCLI(t, "ping"); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestSetupInstallsTelemetryShutdown(t *testing.T) {
	a := &app{}
	if err := a.setup(context.Background()); err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer a.teardown()
	if a.shutdown == nil {
		t.Fatal("telemetry shutdown hook not installed")
	}
}

func TestUnknownBackendFails(t *testing.T) {
	if _, err := runCLI(t, "--config", "does-not-exist.toml", "ping"); err == nil {
		t.Fatal("expected config load failure")
	}
}
