package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/olimci/depcat/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, r *Recorder, decision, strictness string) float64 {
	t.Helper()
	families, err := r.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "depcat_decisions_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["decision"] == decision && labels["strictness"] == strictness {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("series decision=%s strictness=%s not found", decision, strictness)
	return 0
}

func TestObserveDecision(t *testing.T) {
	r := New()

	r.ObserveDecision(policy.Decision{Kind: policy.Accept}, policy.Strict)
	r.ObserveDecision(policy.Decision{Kind: policy.Accept}, policy.Strict)
	r.ObserveDecision(policy.Decision{Kind: policy.Warn}, policy.Loose)

	assert.Equal(t, 2.0, counterValue(t, r, "accept", "strict"))
	assert.Equal(t, 1.0, counterValue(t, r, "warn", "loose"))
	assert.Equal(t, 0.0, counterValue(t, r, "reject", "loosely"))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.SetManifestEntries(12)
	r.ObserveCheck(150 * time.Millisecond)
	r.ObserveDecision(policy.Decision{Kind: policy.Reject}, policy.Strict)

	path := filepath.Join(t.TempDir(), "depcat.prom")
	require.NoError(t, r.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(b)

	assert.Contains(t, text, "depcat_manifest_entries 12")
	assert.Contains(t, text, `depcat_decisions_total{decision="reject",strictness="strict"} 1`)
	assert.Contains(t, text, "depcat_check_duration_seconds_count 1")
	assert.True(t, strings.HasPrefix(text, "# HELP"))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.ObserveDecision(policy.Decision{Kind: policy.Accept}, policy.Strict)
	r.SetManifestEntries(1)
	r.ObserveCheck(time.Second)
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}
