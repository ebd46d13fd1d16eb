package evaluation

const (
	predictionQueryColumn = "Query"
	predictionURLColumn   = "Assessment_url"

	viewMarker = "/view/"
)

// header keywords that identify a query column, in match order
var queryColumnHints = []string{"query", "text", "job"}
