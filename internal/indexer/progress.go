package indexer

// ProgressReporter provides callbacks for reporting extraction progress.
// Implementations can display progress bars, log messages, or remain silent.
// The indexer never invokes callbacks concurrently.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(files int)

	// OnFileProcessingStart is called before processing files.
	OnFileProcessingStart(totalFiles int)

	// OnFileSkipped is called for a file that produced no metadata, just
	// before its OnFileProcessed.
	OnFileSkipped(fileName string, err error)

	// OnFileProcessed is called after each file is processed.
	OnFileProcessed(fileName string)

	// OnComplete is called when extraction completes successfully.
	OnComplete(stats *ProcessingStats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                        {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(files int)            {}
func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int)     {}
func (n *NoOpProgressReporter) OnFileSkipped(fileName string, err error) {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string)          {}
func (n *NoOpProgressReporter) OnComplete(stats *ProcessingStats)        {}
