package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSWOTPrompt(t *testing.T) {
	p := SWOT(Inputs{Company: "ACME Robotics", Scope: "Manufacturing", Product: "IoT Sensors", Geo: "US"})
	assert.Contains(t, p, "Company: ACME Robotics")
	assert.Contains(t, p, "Geography: US")
	assert.Contains(t, p, "5-8 bullets")
	assert.Contains(t, p, "Support/Success")
	assert.Contains(t, p, `"S": ["...", "..."]`)
}

func TestGeoDefaults(t *testing.T) {
	p := Ansoff(Inputs{Company: "A"})
	assert.Contains(t, p, "Geography: unspecified")
	assert.Contains(t, p, "the target market")
}

func TestBenchmarkPeers(t *testing.T) {
	p := Benchmark(Inputs{Company: "Acme", Peers: []string{"Rival A", "Rival B"}})
	assert.Contains(t, p, "Peers: Rival A, Rival B")
	assert.Contains(t, p, `"Acme": "..."`)
	assert.Contains(t, Benchmark(Inputs{Company: "Acme"}), "the main competitors")
}

func TestRecommendationsEmbedsResults(t *testing.T) {
	p, err := Recommendations(map[string]any{"SWOT": map[string]any{"S": []string{"brand"}}})
	require.NoError(t, err)
	start := strings.Index(p, "{")
	end := strings.Index(p, "\n\nTASK")
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(p[start:end]), &v))
	assert.Contains(t, v, "SWOT")
}

func TestSystemPromptDemandsJSON(t *testing.T) {
	assert.Contains(t, System, "strict JSON")
	assert.Contains(t, Scope("Acme"), `{"scope": "..."}`)
}
