package cmd

import (
	"log"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "attrition-report"
)

type Config struct {
	Dataset *DatasetConfig `mapstructure:"dataset"`
	Split   *SplitConfig   `mapstructure:"split"`
	Models  *ModelsConfig  `mapstructure:"models"`
}

type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

type SplitConfig struct {
	Ratio float64 `mapstructure:"ratio"`
	Seed  int64   `mapstructure:"seed"`
}

type ModelsConfig struct {
	Logistic *LogisticConfig `mapstructure:"logistic"`
	Bayes    *BayesConfig    `mapstructure:"bayes"`
	KNN      *KNNConfig      `mapstructure:"knn"`
	Tree     *TreeConfig     `mapstructure:"tree"`
	Forest   *ForestConfig   `mapstructure:"forest"`
}

type LogisticConfig struct {
	LearningRate float64  `mapstructure:"learning-rate"`
	MaxIter      int      `mapstructure:"max-iter"`
	Exclude      []string `mapstructure:"exclude"`
}

type BayesConfig struct {
	Laplace float64 `mapstructure:"laplace"`
	Kernel  bool    `mapstructure:"kernel"`
}

type KNNConfig struct {
	K     int          `mapstructure:"k"`
	Sweep *SweepConfig `mapstructure:"sweep"`
}

type SweepConfig struct {
	From int `mapstructure:"from"`
	To   int `mapstructure:"to"`
}

type TreeConfig struct {
	MinSplit   int     `mapstructure:"min-split"`
	PruneAlpha float64 `mapstructure:"prune-alpha"`
}

type ForestConfig struct {
	Trees int   `mapstructure:"trees"`
	Seed  int64 `mapstructure:"seed"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "attrition-report fits five classifiers to the employee attrition table and compares them by recall",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("dataset.path", "ATTRITION_DATASET"); err != nil {
		log.Fatalf("binding ATTRITION_DATASET environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is attrition-report.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.StringToSliceHookFunc(","),
	))
	if err != nil {
		return config, err
	}

	return config.withDefaults(), nil
}

// withDefaults fills the gaps a sparse config file leaves, so every model
// trains even with an empty models section.
func (c *Config) withDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if c.Dataset == nil {
		c.Dataset = &DatasetConfig{}
	}
	if c.Split == nil {
		c.Split = &SplitConfig{}
	}
	if c.Split.Ratio <= 0 || c.Split.Ratio >= 1 {
		c.Split.Ratio = 0.7
	}
	if c.Models == nil {
		c.Models = &ModelsConfig{}
	}
	if c.Models.Logistic == nil {
		c.Models.Logistic = &LogisticConfig{}
	}
	if c.Models.Logistic.LearningRate <= 0 {
		c.Models.Logistic.LearningRate = 0.1
	}
	if c.Models.Logistic.MaxIter <= 0 {
		c.Models.Logistic.MaxIter = 2000
	}
	if c.Models.Bayes == nil {
		c.Models.Bayes = &BayesConfig{Laplace: 2}
	}
	if c.Models.KNN == nil {
		c.Models.KNN = &KNNConfig{}
	}
	if c.Models.KNN.K <= 0 {
		c.Models.KNN.K = 5
	}
	if c.Models.KNN.Sweep == nil {
		c.Models.KNN.Sweep = &SweepConfig{}
	}
	if c.Models.KNN.Sweep.From <= 0 {
		c.Models.KNN.Sweep.From = 1
	}
	if c.Models.KNN.Sweep.To < c.Models.KNN.Sweep.From {
		c.Models.KNN.Sweep.To = 20
	}
	if c.Models.Tree == nil {
		c.Models.Tree = &TreeConfig{}
	}
	if c.Models.Tree.MinSplit <= 0 {
		c.Models.Tree.MinSplit = 20
	}
	if c.Models.Tree.PruneAlpha <= 0 {
		c.Models.Tree.PruneAlpha = 0.01
	}
	if c.Models.Forest == nil {
		c.Models.Forest = &ForestConfig{}
	}
	if c.Models.Forest.Trees <= 0 {
		c.Models.Forest.Trees = 500
	}
	return c
}
