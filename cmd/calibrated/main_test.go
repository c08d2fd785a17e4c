package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("APP_URL", "http://app.test/")
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "calibrated.db"))
	out, err := runCLI(t, "migrate")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "schema up to date (sqlite)") {
		t.Fatalf("out = %q", out)
	}
}

func TestSeed(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "calibrated.db"))
	out, err := runCLI(t, "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(sampleQuestions()) {
		t.Fatalf("want %d lines, got %q", len(sampleQuestions()), out)
	}
	for _, l := range lines {
		f := strings.Split(l, "\t")
		if len(f) != 3 || len(f[0]) != 7 || f[1] != "http://app.test/q/"+f[0] {
			t.Fatalf("bad line %q", l)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "migrate"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "DB_DRIVER") {
		t.Fatalf("want DB_DRIVER error, got %v", err)
	}
}

func TestSampleQuestionsAreValid(t *testing.T) {
	var revealed, pinned int
	for _, sq := range sampleQuestions() {
		if sq.in.MinValue >= sq.in.MaxValue || sq.in.TrueAnswer < sq.in.MinValue || sq.in.TrueAnswer > sq.in.MaxValue {
			t.Fatalf("bad bounds: %+v", sq.in)
		}
		for _, g := range sq.guesses {
			if g.value < sq.in.MinValue || g.value > sq.in.MaxValue {
				t.Fatalf("guess %v out of range for %q", g.value, sq.in.Title)
			}
		}
		if sq.reveal {
			revealed++
		}
		if sq.in.RevealPIN != nil {
			pinned++
		}
	}
	if revealed != 1 || pinned != 1 {
		t.Fatalf("revealed=%d pinned=%d", revealed, pinned)
	}
}
