package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gianluca-kaufmann/pa3030/dataset"
	"github.com/gianluca-kaufmann/pa3030/pathcfg"
	"github.com/gianluca-kaufmann/pa3030/pkg/log"
	"github.com/gianluca-kaufmann/pa3030/tracking"
	"github.com/gianluca-kaufmann/pa3030/tuning"
)

const (
	tuneSeed = 42

	defaultTrials      = 50
	defaultTrainMax    = 2014
	defaultValMin      = 2015
	defaultValMax      = 2017
	defaultMinYear     = 2001
	defaultNegPerYear  = 100000
	defaultResultsDir  = "outputs/Results/ml_models"
	defaultArtifact    = "lgbm_best_params.json"
	defaultRunBaseName = "model1_tuning_lgbm"
)

func newTuneCmd() *cobra.Command {
	var (
		input      string
		out        string
		resultsDir string
		trials     int
		trainMax   int
		valMin     int
		valMax     int
	)

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "randomized LightGBM hyperparameter search over the training parquet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := log.NewTranscript(resultsDir, defaultRunBaseName)
			if err != nil {
				return err
			}
			defer transcript.Close()
			log.SetupLoggerTo(logLevel, transcript.Writer())
			slog.Info("run transcript", "path", transcript.Path())

			if input == "" {
				input, err = pathcfg.ResolveTrainParquet()
				if err != nil {
					return err
				}
			}

			start := time.Now()
			frame, report, err := dataset.LoadParquet(input)
			if err != nil {
				return err
			}
			slog.Info("dataset loaded",
				log.StageKey, "load",
				"path", input,
				log.RowsKey, report.Rows,
				"columns", report.Columns,
				"downcast_columns", len(report.Downcast),
				"skipped_columns", len(report.Skipped),
			)

			frame, droppedTarget := frame.DropMissingTarget()
			minYear := envInt("TRANSITION_MIN_YEAR", defaultMinYear)
			frame, droppedYear := frame.FilterMinYear(minYear)
			slog.Info("rows filtered",
				log.StageKey, "load",
				"dropped_missing_target", droppedTarget,
				"dropped_before_min_year", droppedYear,
				"min_year", minYear,
				log.RowsKey, frame.NumRows(),
			)

			maxNeg := envInt("MAX_NEG_PER_YEAR", defaultNegPerYear)
			sampled, perYear, err := dataset.SampleByYear(frame, maxNeg, tuneSeed)
			if err != nil {
				return err
			}
			for _, ys := range perYear {
				slog.Info("year sampled",
					log.StageKey, "sample",
					log.YearKey, ys.Year,
					log.PositivesKey, ys.Positives,
					log.NegativesKey, ys.Negatives,
					"negatives_available", ys.NegativesAll,
				)
			}

			train, val := dataset.TemporalSplit(sampled, trainMax, valMin, valMax)
			features := sampled.FeatureColumns()
			design, err := tuning.NewDesign(train, val, features)
			if err != nil {
				return err
			}
			slog.Info("temporal split",
				log.StageKey, "split",
				"n_train", design.NumTrain,
				"n_val", design.NumVal,
				log.FeaturesKey, len(features),
			)

			trainPos, trainNeg := train.TargetCounts()
			auto := tuning.AutoScalePosWeight(trainPos, trainNeg)
			grid := tuning.DefaultLGBMGrid()
			grid.ExtendScalePosWeight(auto)

			numThreads := tuning.NumThreadsFromEnv()
			fixed := tuning.FixedLGBMParams(tuneSeed, numThreads)

			ctx := cmd.Context()
			run := tracking.FromEnv("pa3030")
			run.StartRun(ctx, defaultRunBaseName, map[string]any{
				"n_iter":                trials,
				"scoring":               tuning.Scoring,
				"param_grid":            tuning.Coerce(grid.Map()),
				"fixed_params":          tuning.Coerce(fixed),
				"auto_scale_pos_weight": auto,
			})

			result, err := tuning.RandomizedSearch(design, grid, fixed, tuning.SearchConfig{
				NumTrials:    trials,
				Seed:         tuneSeed,
				NumThreads:   numThreads,
				ShowProgress: true,
			})
			if err != nil {
				return err
			}

			for _, trial := range result.Trials {
				run.LogMetrics(ctx, trial.Index, map[string]any{
					"val_pr_auc": trial.ValScore,
					"params":     tuning.Coerce(trial.Params),
				})
			}

			best := &tuning.BestResult{
				BestParams:        result.BestParams,
				BestValScore:      result.BestScore,
				ParamGrid:         grid.Map(),
				FixedParams:       fixed,
				NumIter:           trials,
				Scoring:           tuning.Scoring,
				TuningTimeSeconds: result.Duration.Seconds(),
				SplitInfo:         tuning.NewSplitInfo(trainMax, valMin, valMax, design.NumTrain, design.NumVal, auto),
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := tuning.WriteBestResult(out, best); err != nil {
				return err
			}

			run.LogSummary(ctx, map[string]any{
				"best_val_score": result.BestScore,
				"best_params":    tuning.Coerce(result.BestParams),
				"best_trial":     result.BestTrial,
			})
			run.Finish(ctx)

			transcript.Printf("\n")
			transcript.Printf("tuning finished in %s\n", result.Duration.Round(time.Second))
			transcript.Printf("  rows:        %s sampled (%s train / %s val)\n",
				humanize.Comma(int64(sampled.NumRows())),
				humanize.Comma(int64(design.NumTrain)),
				humanize.Comma(int64(design.NumVal)))
			transcript.Printf("  best trial:  %d of %d\n", result.BestTrial, trials)
			transcript.Printf("  val PR-AUC:  %.6f\n", result.BestScore)
			transcript.Printf("  artifact:    %s\n", out)

			slog.Info("tuning finished",
				log.StageKey, "write",
				log.BestScoreKey, result.BestScore,
				"best_trial", result.BestTrial,
				log.DurationSecKey, time.Since(start).Seconds(),
				"artifact", out,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "training parquet (default: resolved from SCRATCH / data layout)")
	cmd.Flags().StringVar(&out, "out", filepath.Join(defaultResultsDir, defaultArtifact), "best-parameter JSON artifact")
	cmd.Flags().StringVar(&resultsDir, "results-dir", defaultResultsDir, "directory for run transcripts")
	cmd.Flags().IntVar(&trials, "trials", defaultTrials, "number of parameter combinations to sample")
	cmd.Flags().IntVar(&trainMax, "train-max", defaultTrainMax, "last training year (inclusive)")
	cmd.Flags().IntVar(&valMin, "val-min", defaultValMin, "first validation year (inclusive)")
	cmd.Flags().IntVar(&valMax, "val-max", defaultValMax, "last validation year (inclusive)")
	return cmd
}
