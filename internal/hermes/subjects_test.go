package hermes

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Ranker/internal/simulation"
)

func TestAnalysisSubjects(t *testing.T) {
	id := "3f1c"
	assert.Equal(t, "ranker.analysis.3f1c.completed", SubjectAnalysisCompleted(id))
	assert.Equal(t, "ranker.analysis.3f1c.failed", SubjectAnalysisFailed(id))

	prefix := strings.TrimSuffix(StreamSubjects, ">")
	for _, s := range []string{SubjectAnalysisRequest, SubjectAnalysisCompleted(id), SubjectAnalysisFailed(id)} {
		assert.True(t, strings.HasPrefix(s, prefix), "%s is captured by the stream", s)
	}
}

func TestAnalysisRequestEventDecode(t *testing.T) {
	raw := `{
		"name": "nightly",
		"table": {"headers": ["Intervention", "Safety (100%)"], "rows": [["Metformin", "5"]]},
		"params": {"replicates": 100, "score_noise": 0.2, "weight_perturbation": 0.01, "score_seed": 1, "weight_seed": 2}
	}`
	var ev AnalysisRequestEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))

	assert.Equal(t, "nightly", ev.Name)
	assert.Equal(t, []string{"Intervention", "Safety (100%)"}, ev.Table.Headers)
	require.NotNil(t, ev.Params)
	assert.Equal(t, simulation.Params{Replicates: 100, ScoreNoise: 0.2, WeightPerturbation: 0.01, ScoreSeed: 1, WeightSeed: 2}, *ev.Params)
}
