package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mapgen/pkg/engine/world"
	"mapgen/pkg/game/generator"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_VerifySucceeds(t *testing.T) {
	code, out, errOut := runCLI(t, "-seed", "42", "-size", "small", "-render", "none", "-q", "-verify")
	if code != exitOK {
		t.Fatalf("exit = %d, want %d; stderr: %s", code, exitOK, errOut)
	}
	if !strings.Contains(out, "All floor invariants hold") {
		t.Errorf("stdout = %q, want the verification line", out)
	}
}

func TestRun_InvalidParameters(t *testing.T) {
	cases := [][]string{
		{"-size", "huge"},
		{"-hidden", "5"},
		{"-niches", "extreme"},
		{"-seed", "70000"},
		{"-bogus"},
		{"stray"},
		{"-seed", "1", "-render", "hologram"},
	}
	for _, args := range cases {
		args = append(args, "-q")
		if code, _, _ := runCLI(t, args...); code != exitInvalidParameters {
			t.Errorf("run(%v) = %d, want %d", args, code, exitInvalidParameters)
		}
	}
}

func TestRun_Progress(t *testing.T) {
	code, _, errOut := runCLI(t, "-seed", "3", "-render", "none")
	if code != exitOK {
		t.Fatalf("exit = %d; stderr: %s", code, errOut)
	}
	for _, want := range []string{"Generating seed 3", "Placing rooms", "100%"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("progress output lacks %q:\n%s", want, errOut)
		}
	}
}

func TestRun_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "floor.bin")
	txt := filepath.Join(dir, "floor.txt")
	html := filepath.Join(dir, "floor.html")

	code, _, errOut := runCLI(t, "-seed", "9", "-size", "0", "-render", "none", "-q", "-out", bin, "-dump", txt, "-html", html)
	if code != exitOK {
		t.Fatalf("exit = %d; stderr: %s", code, errOut)
	}

	data, err := os.ReadFile(bin)
	if err != nil {
		t.Fatalf("binary not written: %v", err)
	}
	p := generator.Config{MapSize: generator.Small}.Parameters()
	if want := world.PackedSize(p.Width, p.Height); len(data) != want {
		t.Errorf("binary is %d bytes, want %d", len(data), want)
	}
	for _, path := range []string{txt, html} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", path, err)
		}
	}
}

func TestRun_PrintsFloor(t *testing.T) {
	code, out, _ := runCLI(t, "-seed", "5", "-size", "small", "-q")
	if code != exitOK {
		t.Fatalf("exit = %d", code)
	}
	p := generator.Config{MapSize: generator.Small}.Parameters()
	if lines := strings.Count(out, "\n"); lines < p.Height {
		t.Errorf("printed %d lines, want at least the %d map rows", lines, p.Height)
	}
}

func TestRun_SaveListLoad(t *testing.T) {
	db := filepath.Join(t.TempDir(), "floors.json")
	store := []string{"-store", "json", "-db", db, "-q", "-render", "none"}

	code, out, errOut := runCLI(t, append([]string{"-seed", "1234", "-save", "vault"}, store...)...)
	if code != exitOK {
		t.Fatalf("save: exit = %d; stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "Stored floor vault") {
		t.Errorf("save output = %q", out)
	}

	code, out, _ = runCLI(t, append([]string{"-list"}, store...)...)
	if code != exitOK || strings.TrimSpace(out) != "vault" {
		t.Errorf("list: exit %d output %q, want vault", code, out)
	}

	code, out, errOut = runCLI(t, append([]string{"-load", "vault", "-verify"}, store...)...)
	if code != exitOK {
		t.Fatalf("load: exit = %d; stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "Loaded floor vault (seed 1234)") {
		t.Errorf("load output = %q", out)
	}

	if code, _, _ := runCLI(t, append([]string{"-load", "missing"}, store...)...); code != exitGenerationFailed {
		t.Errorf("load missing: exit = %d, want %d", code, exitGenerationFailed)
	}
}

func TestRun_DevGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.bin")
	if code, _, errOut := runCLI(t, "-devgrid", path); code != exitOK {
		t.Fatalf("exit = %d; stderr: %s", code, errOut)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("palette not written: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("seed 1: %w", generator.ErrPlacementShortfall), exitGenerationFailed},
		{fmt.Errorf("seed 1: %w", generator.ErrConnectionFailure), exitGenerationFailed},
		{fmt.Errorf("bad: %w", generator.ErrInvalidParameter), exitInvalidParameters},
	}
	for _, c := range cases {
		if got := exitCode(c.err); got != c.want {
			t.Errorf("exitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
