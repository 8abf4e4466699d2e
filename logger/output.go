package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
//	0 (default) - stub path, warnings, final summary
//	1 (-v)      - + progress bar, skipped command list
//	2 (-vv)     - + page fetches, cache hits, override tables loaded
//	3 (-vvv)    - + per-command signature counts, SQL statements

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Written stub path, check results
	OutputErrors                        // Errors with hints
	OutputSummary                       // Run summary table

	// Level 1 (-v) - Informational
	OutputProgress // Progress bar over commands
	OutputSkipped  // Names of undocumented or malformed commands

	// Level 2 (-vv) - Detailed
	OutputFetches // Documentation page fetches and cache hits
	OutputTables  // Override tables loaded
	OutputConfig  // Config values loaded/applied

	// Level 3 (-vvv) - Debug
	OutputSynthesis // Per-command signature details
	OutputSQL       // Page cache statements
)

var categoryLevels = map[OutputCategory]int{
	OutputResults: VerbosityUser,
	OutputErrors:  VerbosityUser,
	OutputSummary: VerbosityUser,

	OutputProgress: VerbosityInfo,
	OutputSkipped:  VerbosityInfo,

	OutputFetches: VerbosityDebug,
	OutputTables:  VerbosityDebug,
	OutputConfig:  VerbosityDebug,

	OutputSynthesis: VerbosityTrace,
	OutputSQL:       VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:   "results",
	OutputErrors:    "errors",
	OutputSummary:   "summary",
	OutputProgress:  "progress",
	OutputSkipped:   "skipped",
	OutputFetches:   "fetches",
	OutputTables:    "tables",
	OutputConfig:    "config",
	OutputSynthesis: "synthesis",
	OutputSQL:       "sql",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
