package hermes

const (
	SubjectAnalysisRequest = "ranker.analysis.request"

	StreamName     = "RANKER_EVENTS"
	StreamSubjects = "ranker.analysis.>"
	StreamMaxAge   = "720h" // 30 days
)

func SubjectAnalysisCompleted(analysisID string) string {
	return "ranker.analysis." + analysisID + ".completed"
}

func SubjectAnalysisFailed(analysisID string) string {
	return "ranker.analysis." + analysisID + ".failed"
}
