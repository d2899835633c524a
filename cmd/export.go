package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tmscope/grammar"
	"github.com/gnolang/tmscope/grammars"
)

var (
	exportFormat  string
	exportOutPath string
)

var exportCmd = &cobra.Command{
	Use:   "export [scope]",
	Short: "Write a built-in grammar as a tmLanguage document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := io.Writer(os.Stdout)
		if exportOutPath != "" {
			f, err := os.Create(exportOutPath)
			if err != nil {
				logger.Fatal("Error creating output file", zap.Error(err))
			}
			defer f.Close()
			out = f
		}

		if err := runExport(out, args[0], grammar.Format(exportFormat)); err != nil {
			logger.Error("Error exporting grammar", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", string(grammar.FormatJSON), "Document format: json, yaml or toml")
	exportCmd.Flags().StringVarP(&exportOutPath, "output", "o", "", "Output path")
}

func runExport(w io.Writer, scope string, format grammar.Format) error {
	doc, ok := grammars.Document(scope)
	if !ok {
		return fmt.Errorf("no built-in grammar for %q (have %s)", scope, strings.Join(grammars.Scopes(), ", "))
	}
	return doc.Encode(w, format)
}
