package catalogue

const (
	categorySeparator = "|"

	flagYes = "Yes"
	flagNo  = "No"

	defaultAdaptiveSupport = flagNo
	defaultRemoteSupport   = flagYes
	defaultDuration        = 0

	SourceSample = "sample"
)

// columns a catalogue CSV must carry; the rest are optional with defaults
var requiredColumns = []string{"url", "name"}

// columns whose absence degrades but does not reject the file
var expectedColumns = []string{"description", "adaptive_support", "remote_support", "duration", "test_type"}

// alternative header names accepted for a column
var columnAliases = map[string][]string{
	"duration": {"duration_minutes"},
}
