package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/ai"
	"github.com/spigell/interview-prep/internal/ai/gemini"
	"github.com/spigell/interview-prep/internal/ai/openai"
	"github.com/spigell/interview-prep/internal/evaluation"
	"github.com/spigell/interview-prep/internal/filtering"
	"github.com/spigell/interview-prep/internal/generator"
	"github.com/spigell/interview-prep/internal/interview"
	"github.com/spigell/interview-prep/internal/interviewer"
	"github.com/spigell/interview-prep/internal/logger"
	"github.com/spigell/interview-prep/internal/report"
	"github.com/spigell/interview-prep/internal/resources"
	"github.com/spigell/interview-prep/internal/secrets"
	"github.com/spigell/interview-prep/internal/session"
	"github.com/spigell/interview-prep/internal/summary"
)

const (
	PromptRetry               = "Retry"
	PromptAbort               = "Abort"
	PromptExit                = "Exit"
	PromptExportHTML          = "Export report to HTML"
	PromptAppendToExcludeFile = "Append questions to exclude file"
	PromptNoDomain            = "(no specific domain)"

	defaultCount = 5
	minCLICount  = 3
	maxCLICount  = 10
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive mock interview",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)

	viper.BindPFlag("generation.exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

func addRunFlags(c *cobra.Command) {
	c.Flags().StringP("role", "r", "", "interview role, asked interactively when unset")
	c.Flags().String("domain", "", "optional domain of the role")
	c.Flags().StringP("type", "t", "", "interview type: technical or behavioral")
	c.Flags().IntP("count", "n", defaultCount, fmt.Sprintf("number of questions (%d-%d)", minCLICount, maxCLICount))
	c.Flags().StringP("export", "o", "", "write the HTML report to this file when the interview ends")
	c.Flags().StringP("exclude-file", "e", "", "file with questions that must not be asked again. Default is unset.")
}

// run is the interactive interview loop.
func run(cmd *cobra.Command) {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the interview-prep", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	cfg, err := interviewConfig(cmd)
	if err != nil {
		zlog.Fatal("reading the interview config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		zlog.Fatal("invalid interview config", zap.Error(err))
	}

	excluded, err := filtering.LoadExcludeFile(config.Generation.ExcludeFile)
	if err != nil {
		zlog.Fatal("loading exclude file", zap.Error(err), zap.String("filename", config.Generation.ExcludeFile))
	}
	genCfg := config.Generation.Config
	genCfg.Exclude = excluded.Texts(cfg.Role, cfg.Type)
	if len(genCfg.Exclude) > 0 {
		zlog.Info("excluding questions from file", zap.Int("count", len(genCfg.Exclude)))
	}

	completer, err := newCompleter(ctx, config.AI, zlog)
	if err != nil {
		zlog.Fatal("building the completion client", zap.Error(err))
	}

	store, err := session.New(ctx, config.Storage, zlog)
	if err != nil {
		zlog.Fatal("opening the session store", zap.Error(err))
	}

	ivLogger := zlog.With(logger.InterviewFields(cfg)...)
	iv := interviewer.New(
		generator.New(completer, genCfg, ivLogger),
		evaluation.New(completer, ivLogger),
		summary.New(completer, ivLogger),
		resources.New(completer, ivLogger),
		ivLogger,
	)

	var s *interview.Session
	err = withRetry(zlog, "generating questions", func() error {
		var err error
		s, err = iv.Start(ctx, cfg)
		return err
	})
	if err != nil {
		zlog.Fatal("starting the interview", zap.Error(err))
	}

	fmt.Fprintf(out, "\n%s interview: %d questions. Submit an empty answer to skip.\n", report.Title(cfg), len(s.Questions))

	for {
		q, ok := s.Current()
		if !ok {
			break
		}

		pos, total := s.Position()
		fmt.Fprintf(out, "\nQuestion %d/%d %s\n%s\n", pos, total, categoryTag(q), q.Text)

		answerPrompt := promptui.Prompt{Label: "Your answer"}
		text, err := answerPrompt.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}

		var ev *interview.Evaluation
		err = withRetry(zlog, "evaluating the answer", func() error {
			var err error
			ev, err = iv.Answer(ctx, s, text)
			return err
		})
		if err != nil {
			zlog.Fatal("evaluating the answer", zap.Error(err))
		}

		if err := report.RenderEvaluation(out, *ev); err != nil {
			zlog.Fatal("printing feedback", zap.Error(err))
		}
	}

	var final *interview.Report
	err = withRetry(zlog, "summarizing the interview", func() error {
		var err error
		final, err = iv.Finish(ctx, s)
		return err
	})
	if err != nil {
		zlog.Fatal("finishing the interview", zap.Error(err))
	}

	fmt.Fprintln(out)
	if err := report.RenderText(out, final); err != nil {
		zlog.Fatal("printing the report", zap.Error(err))
	}

	// The report is already on screen, a storage failure only loses the history entry.
	if id, err := store.Save(ctx, final); err != nil {
		zlog.Error("saving the session", zap.Error(err))
	} else {
		zlog.Info("session saved", zap.String(logger.FieldSession, id))
	}

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		if err := exportHTML(final, path); err != nil {
			zlog.Error("exporting the report", zap.Error(err))
		} else {
			zlog.Info("report exported", zap.String("filename", path))
		}
	}

	for {
		items := []string{PromptExportHTML}
		if config.Generation.ExcludeFile != "" {
			items = append(items, PromptAppendToExcludeFile)
		}

		actions := promptui.Select{
			Label: "What next?",
			Items: append(items, PromptExit),
		}

		_, action, err := actions.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, zlog, config, final); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			zlog.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, final *interview.Report) error {
	switch action {
	case PromptExportHTML:
		path := filepath.Join(config.Export.Dir, fmt.Sprintf("session_%s.html", final.ID))
		if err := exportHTML(final, path); err != nil {
			return err
		}
		logger.Info("report exported", zap.String("filename", path))
		return nil
	case PromptAppendToExcludeFile:
		excludeFile := config.Generation.ExcludeFile
		excluded, err := filtering.LoadExcludeFile(excludeFile)
		if err != nil {
			return err
		}

		excluded.Append(filtering.ToExcluded(final.Config, final.Questions))

		if err = excluded.ToFile(excludeFile); err != nil {
			return err
		}

		logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", len(final.Questions)))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// withRetry runs step and, while it fails with a service error, asks whether to try again.
func withRetry(logger *zap.Logger, step string, fn func() error) error {
	for {
		err := fn()
		if err == nil {
			return nil
		}

		var svcErr *ai.ServiceError
		if !errors.As(err, &svcErr) {
			return err
		}

		logger.Warn("text generation service failed", zap.String("during", step), zap.Error(err))

		retry := promptui.Select{
			Label: fmt.Sprintf("The service failed while %s. Try again?", step),
			Items: []string{PromptRetry, PromptAbort},
		}
		_, choice, perr := retry.Run()
		if perr != nil || choice != PromptRetry {
			return err
		}
	}
}

// interviewConfig takes values from flags and asks for the missing ones.
func interviewConfig(cmd *cobra.Command) (interview.Config, error) {
	role, _ := cmd.Flags().GetString("role")
	domain, _ := cmd.Flags().GetString("domain")
	typ, _ := cmd.Flags().GetString("type")
	count, _ := cmd.Flags().GetInt("count")

	var err error
	if role == "" {
		role, err = choose("Choose a role", interview.Roles())
		if err != nil {
			return interview.Config{}, err
		}
	}

	if domain == "" && !cmd.Flags().Changed("domain") {
		if _, ok := interview.LookupRole(role); ok {
			domain, err = choose("Choose a domain", append([]string{PromptNoDomain}, interview.DomainsFor(role)...))
			if err != nil {
				return interview.Config{}, err
			}
			if domain == PromptNoDomain {
				domain = ""
			}
		}
	}

	if typ == "" {
		typ, err = choose("Choose an interview type", []string{interview.TypeTechnical.Title(), interview.TypeBehavioral.Title()})
		if err != nil {
			return interview.Config{}, err
		}
	}
	t, err := interview.ParseType(typ)
	if err != nil {
		return interview.Config{}, err
	}

	if !cmd.Flags().Changed("count") {
		count, err = askCount()
		if err != nil {
			return interview.Config{}, err
		}
	}
	if count < minCLICount || count > maxCLICount {
		return interview.Config{}, &interview.ConfigurationError{
			Field:   "question_count",
			Message: fmt.Sprintf("must be between %d and %d", minCLICount, maxCLICount),
		}
	}

	return interview.Config{Role: role, Domain: domain, Type: t, QuestionCount: count}, nil
}

func choose(label string, items []string) (string, error) {
	sel := promptui.Select{Label: label, Items: items, Size: len(items)}
	_, value, err := sel.Run()
	return value, err
}

func askCount() (int, error) {
	p := promptui.Prompt{
		Label:   fmt.Sprintf("Number of questions (%d-%d)", minCLICount, maxCLICount),
		Default: strconv.Itoa(defaultCount),
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return errors.New("enter a number")
			}
			if n < minCLICount || n > maxCLICount {
				return fmt.Errorf("enter a number between %d and %d", minCLICount, maxCLICount)
			}
			return nil
		},
	}

	value, err := p.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(value))
}

func categoryTag(q interview.Question) string {
	if q.Category == "" {
		return ""
	}
	return "[" + q.Category.Label() + "]"
}

func exportHTML(r *interview.Report, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := report.RenderHTML(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newCompleter(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Completer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", "gemini":
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.APIKey,
			File:  cfg.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, err
		}
		gen, err := gemini.NewGenerator(ctx, gemini.Options{
			APIKey:       apiKey,
			Model:        cfg.Model,
			Temperature:  cfg.Temperature,
			Timeout:      cfg.Timeout,
			MaxLogLength: cfg.MaxLogLength,
		}, log)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case "openai":
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: cfg.APIKey,
			File:  cfg.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, err
		}
		client, err := openai.NewClient(openai.Options{
			APIKey:       apiKey,
			BaseURL:      cfg.BaseURL,
			Model:        cfg.Model,
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
			Timeout:      cfg.Timeout,
			MaxLogLength: cfg.MaxLogLength,
		}, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// redacted hides credentials before the config is logged.
func redacted(config *Config) Config {
	c := *config
	if c.AI != nil {
		aiCfg := *c.AI
		if aiCfg.APIKey != "" {
			aiCfg.APIKey = "***"
		}
		c.AI = &aiCfg
	}
	c.Storage.Redis.Password = strings.Repeat("*", min(len(c.Storage.Redis.Password), 3))
	return c
}
