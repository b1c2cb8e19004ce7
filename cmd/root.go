package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/interview-prep/internal/generator"
	"github.com/spigell/interview-prep/internal/session"
)

const (
	app       = "interview-prep"
	envPrefix = "INTERVIEW_PREP"
)

type Config struct {
	AI         *AIConfig        `mapstructure:"ai"`
	Generation GenerationConfig `mapstructure:"generation"`
	Storage    session.Config   `mapstructure:"storage"`
	Export     ExportConfig     `mapstructure:"export"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	Model        string        `mapstructure:"model"`
	Temperature  float32       `mapstructure:"temperature"`
	MaxTokens    int           `mapstructure:"max-tokens"`
	Timeout      time.Duration `mapstructure:"timeout"`
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	BaseURL      string        `mapstructure:"base-url"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type GenerationConfig struct {
	generator.Config `mapstructure:",squash"`
	ExcludeFile      string `mapstructure:"exclude-file"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interview-prep runs AI mock interviews in the terminal and keeps the history of past sessions",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interview-prep.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.temperature", 0.7)
	viper.SetDefault("ai.timeout", "120s")
	viper.SetDefault("ai.max-log-length", 200)
	viper.SetDefault("generation.over-generation-factor", generator.DefaultOverGenerationFactor)
	viper.SetDefault("generation.max-passes", generator.DefaultMaxPasses)
	viper.SetDefault("storage.backend", session.BackendFile)
	viper.SetDefault("storage.dir", session.DefaultDir)
	viper.SetDefault("storage.redis.prefix", session.DefaultPrefix)
	viper.SetDefault("export.dir", ".")
}

func initConfig() {
	// The version command needs nothing from the environment.
	if versionCmd.CalledAs() != "" {
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Without an explicit --config a missing file means defaults only.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.AI == nil {
		config.AI = &AIConfig{}
	}

	return config, nil
}
