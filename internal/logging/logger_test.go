package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpenWritesDatedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	l, err := Open("tweetsense")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Info("api base resolved", "base", "http://localhost:5000/api")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	name := fmt.Sprintf("tweetsense-%s.log", time.Now().Format("2006-01-02"))
	path := filepath.Join(os.Getenv("HOME"), ".tweetsense", "logs", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	for _, want := range []string{"started", "api base resolved", "shutting down"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestOpenAppendsAcrossRuns(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for i := 0; i < 2; i++ {
		l, err := Open("tweetsense-admin")
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		l.Close()
	}

	name := fmt.Sprintf("tweetsense-admin-%s.log", time.Now().Format("2006-01-02"))
	data, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), ".tweetsense", "logs", name))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(data), "started"); got != 2 {
		t.Fatalf("started lines = %d, want 2", got)
	}
}
