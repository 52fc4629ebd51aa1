package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/attrition-report/internal/dataset"
	"github.com/spigell/attrition-report/internal/evaluation"
	"github.com/spigell/attrition-report/internal/logger"
	"github.com/spigell/attrition-report/internal/model"
	"github.com/spigell/attrition-report/internal/report"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptImportance  = "Show attribute importance"
	PromptSweep       = "Show k sweep"
	PromptCrossTabs   = "Show attrition by category"
	PromptConfusion   = "Show confusion matrices"
	PromptDumpToFile  = "Dump report to file"
	PromptExit        = "Exit"
	maxLoggedWarnings = 300
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "More?",
	Items: []string{PromptImportance, PromptSweep, PromptCrossTabs, PromptConfusion, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the attrition analysis and print the model comparison",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-aprove", "y", false, "print the comparison and exit without the follow-up menu")
	runCmd.Flags().StringP("dataset", "f", "", "path to the attrition csv. Overrides the config value.")

	viper.BindPFlag("dataset.path", runCmd.Flags().Lookup("dataset"))
}

// analysis is everything a run produces, retained for the follow-up menu.
type analysis struct {
	results   []evaluation.Result
	best      int
	sweep     []evaluation.KPoint
	crosstabs []dataset.CrossTab

	treeImportance   map[string]float64
	forestImportance map[string]float64
	fullLeaves       int
	prunedLeaves     int
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the attrition-report", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config.Dataset.Path == "" {
		logger.Fatal(
			"dataset path is required",
			zap.String("hint", "set ATTRITION_DATASET, the --dataset flag or the dataset.path key in the configuration file"),
		)
	}

	a, err := runAnalysis(config, logger)
	if err != nil {
		var schemaErr *dataset.SchemaError
		if errors.As(err, &schemaErr) {
			logger.Fatal("input file does not match the expected schema", zap.Error(schemaErr))
		}
		var strataErr *dataset.InsufficientDataError
		if errors.As(err, &strataErr) {
			logger.Fatal("not enough data to split", zap.Error(strataErr))
		}
		logger.Fatal("analysis failed", zap.Error(err))
	}

	report.Comparison(os.Stdout, a.results, a.best)
	if a.best >= 0 {
		logger.Info("best model by recall",
			zap.String("model", a.results[a.best].Model),
			zap.Float64("recall", a.results[a.best].Recall),
		)
	}

	if cmd.Flag("auto-aprove").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, a, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, a *analysis, logger *zap.Logger) error {
	switch action {
	case PromptImportance:
		report.Importance(os.Stdout, "decision tree", a.treeImportance)
		report.Importance(os.Stdout, "random forest", a.forestImportance)
		return nil
	case PromptSweep:
		report.Sweep(os.Stdout, a.sweep)
		return nil
	case PromptCrossTabs:
		report.CrossTabs(os.Stdout, a.crosstabs)
		return nil
	case PromptConfusion:
		for _, r := range a.results {
			report.Confusion(os.Stdout, r)
		}
		return nil
	case PromptDumpToFile:
		filename, err := dumpToTmpFile(a)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// runAnalysis executes the whole pipeline: load, encode, split, train each
// model, evaluate it on the held-out rows and collect the comparison.
func runAnalysis(config *Config, zlog *zap.Logger) (*analysis, error) {
	raw, warnings, err := dataset.Load(config.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	zlog.Info("loaded the dataset",
		zap.String(logger.FieldStage, "load"),
		zap.Int("rows", raw.Len()),
		zap.Int("attributes", len(raw.Columns)),
	)
	if len(warnings) > 0 {
		zlog.Warn("dataset verification",
			zap.String("details", logger.TruncateForLog(strings.Join(warnings, "; "), maxLoggedWarnings)),
		)
	}

	enc, err := dataset.Encode(raw)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	zlog.Info("encoded the dataset",
		zap.String(logger.FieldStage, "encode"),
		zap.Float64("positive_share", enc.PositiveShare()),
	)

	split, err := dataset.StratifiedSplit(enc, config.Split.Ratio, config.Split.Seed)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	zlog.Info("split the dataset",
		zap.String(logger.FieldStage, "split"),
		zap.Float64("ratio", config.Split.Ratio),
		zap.Int64("seed", config.Split.Seed),
		zap.Int("train", len(split.Train)),
		zap.Int("test", len(split.Test)),
		zap.Float64("train_positive_share", enc.Take(split.Train).PositiveShare()),
		zap.Float64("test_positive_share", enc.Take(split.Test).PositiveShare()),
	)

	// Two matrix views over the same rows: one-hot normalized features for
	// distance and linear models, level-coded features for the probabilistic
	// and tree models. Normalization statistics come from the full dataset.
	hot, err := dataset.Matrix(enc, dataset.MatrixOptions{OneHot: true, Normalize: true})
	if err != nil {
		return nil, fmt.Errorf("building one-hot features: %w", err)
	}
	coded, err := dataset.Matrix(enc, dataset.MatrixOptions{})
	if err != nil {
		return nil, fmt.Errorf("building coded features: %w", err)
	}
	y, err := enc.Labels()
	if err != nil {
		return nil, err
	}
	trainY := gather(y, split.Train)
	testY := gather(y, split.Test)

	a := &analysis{best: -1}
	evaluate := func(c model.Classifier, feats *dataset.Features) error {
		mlog := logger.WithCommonFields(zlog, "train", c.Name())
		if err := c.Fit(feats.Rows(split.Train), trainY); err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
		res := evaluation.Evaluate(c, feats.Rows(split.Test), testY)
		for _, w := range res.Warnings {
			mlog.Warn("model degraded", zap.String("reason", w))
		}
		mlog.Info("model evaluated",
			zap.Float64("recall", res.Recall),
			zap.Float64("accuracy", res.Accuracy),
		)
		a.results = append(a.results, res)
		return nil
	}

	logistic := model.NewLogistic("logistic regression")
	logistic.LearningRate = config.Models.Logistic.LearningRate
	logistic.MaxIter = config.Models.Logistic.MaxIter
	if err := evaluate(logistic, hot); err != nil {
		return nil, err
	}

	// A reduced-feature variant is a modeling choice expressed by re-invoking
	// the same trainer on a column subset.
	if len(config.Models.Logistic.Exclude) > 0 {
		reducedFeats, err := dataset.Matrix(enc, dataset.MatrixOptions{
			OneHot:    true,
			Normalize: true,
			Exclude:   config.Models.Logistic.Exclude,
		})
		if err != nil {
			return nil, fmt.Errorf("building reduced features: %w", err)
		}
		reduced := model.NewLogistic("logistic regression (reduced)")
		reduced.LearningRate = config.Models.Logistic.LearningRate
		reduced.MaxIter = config.Models.Logistic.MaxIter
		if err := evaluate(reduced, reducedFeats); err != nil {
			return nil, err
		}
	}

	bayes := model.NewNaiveBayes(bayesName(config.Models.Bayes), coded)
	bayes.Laplace = config.Models.Bayes.Laplace
	bayes.Kernel = config.Models.Bayes.Kernel
	if err := evaluate(bayes, coded); err != nil {
		return nil, err
	}

	if err := evaluate(model.NewKNN(config.Models.KNN.K), hot); err != nil {
		return nil, err
	}

	tree := model.NewTree("decision tree", coded)
	tree.MinSamplesSplit = config.Models.Tree.MinSplit
	if err := evaluate(tree, coded); err != nil {
		return nil, err
	}
	pruned := tree.Prune(config.Models.Tree.PruneAlpha)
	a.fullLeaves = tree.LeafCount()
	a.prunedLeaves = pruned.LeafCount()
	a.results = append(a.results, evaluation.Evaluate(pruned, coded.Rows(split.Test), testY))
	a.treeImportance = tree.Importance()
	zlog.Info("pruned the decision tree",
		zap.String(logger.FieldStage, "train"),
		zap.Float64("alpha", config.Models.Tree.PruneAlpha),
		zap.Int("leaves", a.fullLeaves),
		zap.Int("leaves_after", a.prunedLeaves),
	)

	forest := model.NewForest("random forest", coded)
	forest.NTrees = config.Models.Forest.Trees
	forest.Seed = config.Models.Forest.Seed
	if err := evaluate(forest, coded); err != nil {
		return nil, err
	}
	a.forestImportance = forest.Importance()

	a.best, _ = evaluation.Best(a.results)

	sweepCfg := config.Models.KNN.Sweep
	a.sweep, err = evaluation.SweepK(
		hot.Rows(split.Train), trainY,
		hot.Rows(split.Test), testY,
		sweepCfg.From, sweepCfg.To,
	)
	if err != nil {
		return nil, fmt.Errorf("k sweep: %w", err)
	}

	a.crosstabs, err = dataset.CrossTabs(enc)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func bayesName(cfg *BayesConfig) string {
	switch {
	case cfg.Kernel:
		return "naive bayes (kernel)"
	case cfg.Laplace > 0:
		return fmt.Sprintf("naive bayes (laplace=%g)", cfg.Laplace)
	default:
		return "naive bayes"
	}
}

func dumpToTmpFile(a *analysis) (string, error) {
	f, err := os.CreateTemp("", app+"-*.txt")
	if err != nil {
		return "", err
	}
	defer f.Close()

	report.Comparison(f, a.results, a.best)
	for _, r := range a.results {
		report.Confusion(f, r)
	}
	report.Importance(f, "decision tree", a.treeImportance)
	report.Importance(f, "random forest", a.forestImportance)
	report.Sweep(f, a.sweep)
	report.CrossTabs(f, a.crosstabs)
	return f.Name(), nil
}

func gather(y []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, r := range idx {
		out[i] = y[r]
	}
	return out
}
