package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnolang/tmscope/grammar"
	"github.com/gnolang/tmscope/grammars"
)

var validateCmd = &cobra.Command{
	Use:   "validate [grammar files...]",
	Short: "Report every error of grammar documents",
	Long: `Loads and compiles each grammar document and lists all of its errors.
Without arguments the built-in grammars are checked.`,
	Run: func(cmd *cobra.Command, args []string) {
		n, err := runValidate(os.Stdout, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if n > 0 {
			os.Exit(1)
		}
	},
}

// runValidate prints the errors of each document and returns how many it found.
func runValidate(w io.Writer, paths []string) (int, error) {
	if len(paths) == 0 {
		count := 0
		for _, scope := range grammars.Scopes() {
			doc, _ := grammars.Document(scope)
			n, err := reportGrammar(w, scope, doc)
			if err != nil {
				return count, err
			}
			count += n
		}
		return count, nil
	}

	count := 0
	for _, path := range paths {
		doc, err := grammar.LoadDocument(path)
		if err != nil {
			if _, err := fmt.Fprintf(w, "%s: %v\n", path, err); err != nil {
				return count, err
			}
			count++
			continue
		}
		n, err := reportGrammar(w, path, doc)
		if err != nil {
			return count, err
		}
		count += n
	}
	return count, nil
}

func reportGrammar(w io.Writer, name string, doc *grammar.Document) (int, error) {
	_, err := grammar.Compile(doc)
	if err == nil {
		_, err = fmt.Fprintf(w, "%s: ok\n", name)
		return 0, err
	}

	var list grammar.ErrorList
	if !errors.As(err, &list) {
		_, werr := fmt.Fprintf(w, "%s: %v\n", name, err)
		return 1, werr
	}
	for _, e := range list {
		if _, err := fmt.Fprintf(w, "%s: %s: %v\n", name, e.Kind, e); err != nil {
			return len(list), err
		}
	}
	return len(list), nil
}
