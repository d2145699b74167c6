package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Found          int
	Current        int
	Corrected      int
	Skipped        int
	Incomplete     int
	CommandsRun    int
	CommandsFailed int
	BytesWritten   int64
}

// Processed returns how many clips were either corrected, skipped or left
// incomplete.
func (s *RunStats) Processed() int {
	return s.Corrected + s.Skipped + s.Incomplete
}
