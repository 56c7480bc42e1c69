package topics

const (
	// Resultados de sorteios raspados pelo ingest
	DrawResults = "draw_results"

	// DLQ
	DrawResultsDLQ = "draw_results_dlq"
)
