package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autoplayer/internal/logger"
)

func TestReportPerLane(t *testing.T) {
	m := New()
	e := m.ForLane(0, "e")
	r := m.ForLane(1, "r")

	e.Pressed()
	e.Pressed()
	e.Released()
	r.SampleFailed()
	r.InjectFailed()

	var out bytes.Buffer
	if err := m.Report(logger.New(&out, false)); err != nil {
		t.Fatalf("Report: %v", err)
	}

	log := out.String()
	for _, want := range []string{
		"[STATS] lane 0 (e): presses=2 releases=1 sample_errors=0 inject_errors=0",
		"[STATS] lane 1 (r): presses=0 releases=0 sample_errors=1 inject_errors=1",
	} {
		if !strings.Contains(log, want) {
			t.Errorf("report missing %q:\n%s", want, log)
		}
	}
	if strings.Index(log, "lane 0") > strings.Index(log, "lane 1") {
		t.Errorf("lanes out of order:\n%s", log)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ForLane(0, "e").Pressed()

	path := filepath.Join(t.TempDir(), "textfile", "autoplayer.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `autoplayer_key_presses_total{key="e",lane="0"} 1`) {
		t.Fatalf("unexpected textfile:\n%s", data)
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

func TestZeroCountersAreNoop(t *testing.T) {
	var c LaneCounters
	c.Pressed()
	c.Released()
	c.SampleFailed()
	c.InjectFailed()
}
