package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tmscope/formatter"
	"github.com/gnolang/tmscope/internal"
	tt "github.com/gnolang/tmscope/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-check files as they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		_, engine, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		w, err := engine.NewWatcher(args...)
		if err != nil {
			logger.Fatal("Failed to watch directories", zap.Error(err))
		}
		logger.Info("Watching for changes", zap.Strings("dirs", args))
		if err := w.Run(ctx, reportChange(os.Stdout)); err != nil {
			logger.Error("Watcher stopped", zap.Error(err))
			os.Exit(1)
		}
	},
}

// reportChange prints the issues of a changed file, or a clean mark.
func reportChange(w io.Writer) func(string, []tt.Issue) {
	return func(filename string, issues []tt.Issue) {
		if len(issues) == 0 {
			fmt.Fprintf(w, "%s: ok\n", filename)
			return
		}
		sourceCode, err := internal.ReadSourceCode(filename)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			return
		}
		fmt.Fprintln(w, formatter.GenerateFormattedIssue(issues, sourceCode))
	}
}
