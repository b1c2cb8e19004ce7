package cmd

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/logger"
	"github.com/spigell/interview-prep/internal/report"
	"github.com/spigell/interview-prep/internal/session"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse saved interview sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		zlog, store := openStore(ctx)

		entries, err := store.List(ctx)
		if err != nil {
			zlog.Fatal("listing sessions", zap.Error(err))
		}

		if len(entries) == 0 {
			zlog.Info("no saved sessions")
			return
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tROLE\tDOMAIN\tTYPE\tSCORE")
		for _, e := range entries {
			domain := e.Domain
			if domain == "" {
				domain = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\n",
				e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Role, domain, e.Type.Title(), e.FinalScore)
		}
		if err := w.Flush(); err != nil {
			zlog.Fatal("printing sessions", zap.Error(err))
		}
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the report of a saved session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		zlog, store := openStore(ctx)

		r, err := store.Load(ctx, args[0])
		if err != nil {
			zlog.Fatal("loading the session", zap.Error(err))
		}

		if err := report.RenderText(cmd.OutOrStdout(), r); err != nil {
			zlog.Fatal("printing the report", zap.Error(err))
		}
	},
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved session as an HTML document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		zlog, store := openStore(ctx)

		r, err := store.Load(ctx, args[0])
		if err != nil {
			zlog.Fatal("loading the session", zap.Error(err))
		}

		path, _ := cmd.Flags().GetString("out")
		if path == "" {
			path = filepath.Join(viper.GetString("export.dir"), fmt.Sprintf("session_%s.html", r.ID))
		}

		if err := exportHTML(r, path); err != nil {
			zlog.Fatal("exporting the report", zap.Error(err))
		}
		zlog.Info("report exported", zap.String(logger.FieldSession, r.ID), zap.String("filename", path))
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsExportCmd)

	sessionsExportCmd.Flags().StringP("out", "o", "", "output file (default is session_<id>.html in the export dir)")
}

func openStore(ctx context.Context) (*zap.Logger, session.Store) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	store, err := session.New(ctx, config.Storage, zlog)
	if err != nil {
		zlog.Fatal("opening the session store", zap.Error(err))
	}
	return zlog, store
}
