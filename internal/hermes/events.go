package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/Ranker/internal/sheet"
	"github.com/MikeSquared-Agency/Ranker/internal/simulation"
)

// AnalysisRequestEvent asks the service to run an analysis over a table.
type AnalysisRequestEvent struct {
	RequestID string             `json:"request_id,omitempty"`
	Name      string             `json:"name"`
	IDColumn  string             `json:"id_column,omitempty"`
	Table     sheet.Table        `json:"table"`
	Params    *simulation.Params `json:"params,omitempty"`
}

// TopItem is one entry of the ranking headline in a completed event.
type TopItem struct {
	Item      string  `json:"item"`
	MeanScore float64 `json:"mean_score"`
	MeanRank  float64 `json:"mean_rank"`
	PTop1     float64 `json:"p_top1"`
}

type AnalysisCompletedEvent struct {
	AnalysisID string    `json:"analysis_id"`
	RequestID  string    `json:"request_id,omitempty"`
	Name       string    `json:"name"`
	Items      int       `json:"items"`
	Domains    int       `json:"domains"`
	Replicates int       `json:"replicates"`
	Top        []TopItem `json:"top"`
	DurationMs int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

type AnalysisFailedEvent struct {
	AnalysisID string    `json:"analysis_id"`
	RequestID  string    `json:"request_id,omitempty"`
	Name       string    `json:"name"`
	Error      string    `json:"error"`
	Timestamp  time.Time `json:"timestamp"`
}
