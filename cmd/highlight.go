package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tmscope/formatter"
	"github.com/gnolang/tmscope/internal"
)

var (
	style         string
	formatterName string
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [paths...]",
	Short: "Render files with syntax highlighting",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, engine, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}
		if style == "" {
			style = config.Style
		}
		if formatterName == "" {
			formatterName = config.Formatter
		}

		if err := runHighlight(ctx, engine, args, os.Stdout, formatterName, style); err != nil {
			logger.Error("Error highlighting files", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	highlightCmd.Flags().StringVar(&style, "style", "", "Chroma style (default from config)")
	highlightCmd.Flags().StringVar(&formatterName, "formatter", "", "Chroma formatter: terminal256, html, json, ... (default from config)")
}

func runHighlight(ctx context.Context, engine *internal.Engine, paths []string, w io.Writer, formatterName, style string) error {
	return eachResult(ctx, engine, paths, func(res *internal.Result) error {
		return formatter.Highlight(w, res.Text, res.Tokens, formatterName, style)
	})
}
