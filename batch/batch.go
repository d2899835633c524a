// Package batch tokenizes many files at once on a pool of workers.
package batch

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnolang/tmscope/grammar"
	"github.com/gnolang/tmscope/grammars"
	"github.com/gnolang/tmscope/internal"
	tt "github.com/gnolang/tmscope/internal/types"
	"github.com/gnolang/tmscope/scanner"
	"github.com/gnolang/tmscope/tokenizer"
)

type Engine interface {
	Run(ctx context.Context, filePath string) ([]tt.Issue, error)
	RunSource(ctx context.Context, scope string, source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
	Extensions() []string
}

// New builds an engine with the built-in grammars and those the configuration names.
func New(logger *zap.Logger, config Config) (*internal.Engine, error) {
	opts := []grammar.Option{grammar.WithMatchTimeout(config.MatchTimeout)}
	gs, err := grammars.All(opts...)
	if err != nil {
		return nil, err
	}
	for _, path := range config.Grammars {
		g, err := grammar.Load(path, opts...)
		if err != nil {
			return nil, fmt.Errorf("error loading grammar %s: %w", path, err)
		}
		gs = append(gs, g)
	}

	var topts []tokenizer.Option
	if config.MaxCaptureDepth != nil {
		topts = append(topts, tokenizer.WithMaxCaptureDepth(*config.MaxCaptureDepth))
	}
	engine, err := internal.NewEngine(logger, gs, config.Rules, topts...)
	if err != nil {
		return nil, err
	}

	if config.CacheDir != "" {
		cache, err := internal.NewCache(config.CacheDir, config.Grammars...)
		if err != nil {
			return nil, err
		}
		engine.UseCache(cache)
	}
	return engine, nil
}

// Files expands paths into the files to process: directories are scanned for
// the extensions the engine knows, files are kept as given.
func Files(engine Engine, paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := scanner.New(path, engine.Extensions()...).Scan()
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", path, err)
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	return files, nil
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	scope string,
	sources [][]byte,
	processor func(context.Context, Engine, string, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		issues, err := processor(ctx, engine, scope, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor func(context.Context, Engine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allIssues, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessPath processes a file, or every target file below a directory. Files
// that fail are logged and skipped. When ctx is done no new file is started
// and the issues found so far are returned with the context error.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	processor func(context.Context, Engine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		return processor(ctx, engine, path)
	}

	files, err := Files(engine, []string{path})
	if err != nil {
		return nil, err
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	defer bar.Finish()

	// results are kept by file index so the output order does not depend on scheduling
	results := make([][]tt.Issue, len(files))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

dispatch:
	for i, fp := range files {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int, fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileIssues, err := processor(ctx, engine, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
			} else {
				results[i] = fileIssues
			}
			_ = bar.Add(1)
		}(i, fp)
	}
	wg.Wait()

	issues := make([]tt.Issue, 0)
	for _, r := range results {
		issues = append(issues, r...)
	}
	return issues, ctx.Err()
}

func ProcessFile(ctx context.Context, engine Engine, filePath string) ([]tt.Issue, error) {
	return engine.Run(ctx, filePath)
}

func ProcessSource(ctx context.Context, engine Engine, scope string, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(ctx, scope, source)
}
