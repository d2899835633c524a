package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tmscope/batch"
	"github.com/gnolang/tmscope/formatter"
	"github.com/gnolang/tmscope/internal"
)

var (
	tokenizeJsonOutput bool
	tokenizeOutPath    string
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [paths...]",
	Short: "Print the scoped tokens of files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		_, engine, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		out := io.Writer(os.Stdout)
		if tokenizeOutPath != "" {
			f, err := os.Create(tokenizeOutPath)
			if err != nil {
				logger.Fatal("Error creating output file", zap.Error(err))
			}
			defer f.Close()
			out = f
		}

		if err := runTokenize(ctx, engine, args, out, tokenizeJsonOutput); err != nil {
			logger.Error("Error tokenizing files", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	tokenizeCmd.Flags().BoolVar(&tokenizeJsonOutput, "json", false, "Output tokens in JSON format")
	tokenizeCmd.Flags().StringVarP(&tokenizeOutPath, "output", "o", "", "Output path")
}

func runTokenize(ctx context.Context, engine *internal.Engine, paths []string, w io.Writer, isJson bool) error {
	return eachResult(ctx, engine, paths, func(res *internal.Result) error {
		if isJson {
			return formatter.WriteTokensJSON(w, res.Filename, res.Text, res.Tokens)
		}
		if _, err := fmt.Fprintf(w, "%s (%s)\n", res.Filename, res.Scope); err != nil {
			return err
		}
		return formatter.WriteTokens(w, res.Text, res.Tokens)
	})
}

// eachResult tokenizes every file below paths and hands the results to fn in file order.
func eachResult(ctx context.Context, engine *internal.Engine, paths []string, fn func(*internal.Result) error) error {
	files, err := batch.Files(engine, paths)
	if err != nil {
		return err
	}
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		res, err := engine.Tokenize(ctx, file, source)
		if err != nil {
			return err
		}
		if err := fn(res); err != nil {
			return err
		}
	}
	return nil
}
