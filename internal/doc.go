// Package internal runs grammars over files for the tmscope command.
//
// Key components:
//
// Engine: selects a grammar for each file by extension or first line,
// tokenizes it and turns tokenizer warnings into issues with line and column
// positions. The severity of each warning kind is configurable; a kind set to
// off is dropped, and comments holding a tmscope:ignore directive silence
// the issues next to them.
//
// Cache: keeps the issues of unchanged files on disk between runs.
//
// Watcher: re-runs the engine on files that change below a set of directories.
//
// SourceCode: the lines of a source file, used when rendering issues.
//
// Usage:
//
//	engine, err := internal.NewEngine(logger, grammars, config.Rules)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run(ctx, "path/to/Main.kt")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("%s at %s\n", issue.Message, issue.Start)
//	}
//
// This package is intended for internal use within tmscope and should not be
// imported by external packages.
package internal
