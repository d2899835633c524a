package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tmscope/batch"
	"github.com/gnolang/tmscope/formatter"
	"github.com/gnolang/tmscope/internal"
	tt "github.com/gnolang/tmscope/internal/types"
)

var (
	ignoreRules     string
	ignorePaths     string
	checkJsonOutput bool
	outPath         string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Tokenize files and report grammar warnings",
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

		if ignoreRules != "" {
			for _, rule := range strings.Split(ignoreRules, ",") {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}

		if ignorePaths != "" {
			for _, path := range strings.Split(ignorePaths, ",") {
				engine.IgnorePath(strings.TrimSpace(path))
			}
		}

		runCheck(ctx, logger, engine, args, checkJsonOutput, outPath)
	},
}

func init() {
	checkCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of warning kinds to ignore")
	checkCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	checkCmd.Flags().BoolVar(&checkJsonOutput, "json", false, "Output issues in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func runCheck(ctx context.Context, logger *zap.Logger, engine batch.Engine, paths []string, isJson bool, jsonOutput string) {
	issues, err := batch.ProcessFiles(ctx, logger, engine, paths, batch.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	if isJson && jsonOutput != "" {
		f, err := os.Create(jsonOutput)
		if err != nil {
			logger.Error("Error creating JSON output file", zap.Error(err))
			os.Exit(1)
		}
		defer f.Close()
		err = printIssues(logger, f, issues, true)
		if err != nil {
			logger.Error("Error writing JSON output file", zap.Error(err))
		}
	} else if err := printIssues(logger, os.Stdout, issues, isJson); err != nil {
		logger.Error("Error printing issues", zap.Error(err))
	}

	if len(issues) > 0 {
		os.Exit(1)
	}
}

// printIssues writes the issues grouped by file, in file order.
func printIssues(logger *zap.Logger, w io.Writer, issues []tt.Issue, isJson bool) error {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	if isJson {
		d, err := json.Marshal(issuesByFile)
		if err != nil {
			return fmt.Errorf("error marshalling issues to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(d))
		return err
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	for _, filename := range sortedFiles {
		sourceCode, err := internal.ReadSourceCode(filename)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			continue
		}
		output := formatter.GenerateFormattedIssue(issuesByFile[filename], sourceCode)
		if _, err := fmt.Fprintln(w, output); err != nil {
			return err
		}
	}
	return nil
}
