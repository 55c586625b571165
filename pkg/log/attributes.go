// Standard attribute keys for pipeline logging. Using these keys keeps run
// transcripts greppable across the tuning and raster tools.

package log

// Run and pipeline context.
const (
	// RunIDKey identifies one invocation of a pipeline command.
	RunIDKey = "run.id"

	// StageKey names the pipeline stage emitting the record.
	// Values: "load", "sample", "split", "tune", "write", "convert",
	// "validate", "merge", "visualize".
	StageKey = "pipeline.stage"

	// ToolKey names the subcommand, e.g. "tune" or "convert".
	ToolKey = "pipeline.tool"
)

// Data shape.
const (
	// RowsKey is the number of rows in the frame being processed.
	RowsKey = "data.rows"

	// FeaturesKey is the number of covariate columns used for modeling.
	FeaturesKey = "data.features"

	// YearKey is the temporal bucket a record refers to.
	YearKey = "data.year"

	// PositivesKey and NegativesKey describe the label balance.
	PositivesKey = "data.positives"
	NegativesKey = "data.negatives"
)

// Tuning.
const (
	// TrialKey is the 1-based index of a search trial.
	TrialKey = "tune.trial"

	// ScoreKey is the validation PR-AUC of a trial.
	ScoreKey = "tune.val_pr_auc"

	// BestScoreKey is the best validation PR-AUC seen so far.
	BestScoreKey = "tune.best_val_pr_auc"
)

// Timing.
const (
	// DurationSecKey is the wall time of a stage in seconds.
	DurationSecKey = "duration_seconds"
)
