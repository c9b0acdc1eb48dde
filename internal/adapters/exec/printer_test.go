package exec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	logAdapter "github.com/bft-labs/labelwatch/internal/adapters/log"
	"github.com/bft-labs/labelwatch/internal/domain"
)

// writeScript creates an executable shell script standing in for the print driver.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake_brother_ql")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func testJob(path string) domain.PrintJob {
	return domain.PrintJob{
		ID:          "job-1",
		Path:        path,
		GlobalArgs:  []string{"-m", "QL-800"},
		PrintArgs:   []string{"-l", "62"},
		ErrorSuffix: ".error",
		DoneSuffix:  ".done",
		Timeout:     5 * time.Second,
	}
}

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		job  domain.PrintJob
		want []string
	}{
		{
			name: "cut",
			job:  testJob("/labels/a.png"),
			want: []string{"-m", "QL-800", "print", "-l", "62", "/labels/a.png"},
		},
		{
			name: "no cut",
			job: func() domain.PrintJob {
				j := testJob("/labels/a.png")
				j.NoCut = true
				return j
			}(),
			want: []string{"-m", "QL-800", "print", "-l", "62", "--no-cut", "/labels/a.png"},
		},
		{
			name: "no pass-through args",
			job:  domain.PrintJob{Path: "/labels/b.png"},
			want: []string{"print", "/labels/b.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Args(tt.job); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandPrinter_Success(t *testing.T) {
	out := filepath.Join(t.TempDir(), "argv")
	script := writeScript(t, `echo "$@" > "`+out+`"`)

	p := NewCommandPrinter(script, logAdapter.NewNoopLogger())
	job := testJob("/labels/a.png")
	job.NoCut = true

	res := p.Print(context.Background(), job)
	if res.Outcome != domain.OutcomeSuccess {
		t.Fatalf("Outcome = %v, want success (err=%v)", res.Outcome, res.Err)
	}
	if !res.OK() || res.ExitCode != 0 {
		t.Errorf("OK() = %v, ExitCode = %d", res.OK(), res.ExitCode)
	}

	argv, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read argv: %v", err)
	}
	want := "-m QL-800 print -l 62 --no-cut /labels/a.png"
	if got := strings.TrimSpace(string(argv)); got != want {
		t.Errorf("argv = %q, want %q", got, want)
	}
}

func TestCommandPrinter_ExitFailure(t *testing.T) {
	script := writeScript(t, `echo "paper jam" >&2; exit 1`)
	p := NewCommandPrinter(script, logAdapter.NewNoopLogger())

	res := p.Print(context.Background(), testJob("/labels/solo.png"))
	if res.Outcome != domain.OutcomeExitFailure {
		t.Fatalf("Outcome = %v, want exit-failure", res.Outcome)
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
	if res.Stderr != "paper jam" {
		t.Errorf("Stderr = %q, want paper jam", res.Stderr)
	}
	if res.Fatal() {
		t.Error("exit failure must not be fatal")
	}
}

func TestCommandPrinter_Timeout(t *testing.T) {
	script := writeScript(t, `exec sleep 10`)
	p := NewCommandPrinter(script, logAdapter.NewNoopLogger())

	job := testJob("/labels/slow.png")
	job.Timeout = 100 * time.Millisecond

	start := time.Now()
	res := p.Print(context.Background(), job)
	if res.Outcome != domain.OutcomeTimeout {
		t.Fatalf("Outcome = %v, want timeout (err=%v)", res.Outcome, res.Err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Print took %v, expected to be killed near the timeout", elapsed)
	}
}

func TestCommandPrinter_CommandNotFound(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{"not on PATH", "labelwatch-test-missing-binary"},
		{"missing absolute path", filepath.Join(t.TempDir(), "brother_ql")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewCommandPrinter(tt.command, logAdapter.NewNoopLogger())
			res := p.Print(context.Background(), testJob("/labels/a.png"))
			if res.Outcome != domain.OutcomeEnvironmentFatal {
				t.Fatalf("Outcome = %v, want environment-fatal (err=%v)", res.Outcome, res.Err)
			}
			if !res.Fatal() {
				t.Error("Fatal() = false, want true")
			}
			if !errors.Is(res.Err, domain.ErrCommandNotFound) {
				t.Errorf("Err = %v, want ErrCommandNotFound", res.Err)
			}
		})
	}
}

func TestNewCommandPrinter_DefaultCommand(t *testing.T) {
	p := NewCommandPrinter("", logAdapter.NewNoopLogger())
	if p.Command() != DefaultCommand {
		t.Errorf("Command() = %s, want %s", p.Command(), DefaultCommand)
	}
}
