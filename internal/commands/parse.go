package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/extractor"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/logging"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/models"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/parser"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/tokenizer"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/writer"
)

// ParseResult is the machine-readable output of the parse command.
type ParseResult struct {
	Source         string        `json:"source" yaml:"source"`
	Issuer         string        `json:"issuer" yaml:"issuer"`
	Parser         string        `json:"parser" yaml:"parser"`
	DetectedIssuer string        `json:"detectedIssuer,omitempty" yaml:"detected_issuer,omitempty"`
	Fields         models.Fields `json:"fields" yaml:"fields"`
}

func newParseCommand(a *app) *cobra.Command {
	var (
		issuer string
		format string
		output string
		header bool
	)

	cmd := &cobra.Command{
		Use:   "parse <statement.pdf|statement.txt> [more files...]",
		Short: "Extract the statement fields from one or more files",
		Example: `  ccsa parse march.pdf
  ccsa parse --issuer "Chase" --format yaml march.pdf
  ccsa parse --format csv --output march.csv march.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return errors.New("--output needs a single input file")
			}
			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file %q: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			for _, path := range args {
				res, err := a.parseFile(path, issuer)
				if err != nil {
					return fmt.Errorf("processing %s: %w", path, err)
				}
				if err := writeResult(out, res, format, header); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&issuer, "issuer", "AUTO", "issuer name used to pick a parser (e.g. Chase, Amex, Citi)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&header, "header", true, "include source/issuer/parser rows in CSV output")
	return cmd
}

func newLinesCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lines <statement.pdf|statement.txt>",
		Short: "Show every text line that carries numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := extractor.ExtractFile(args[0])
			if err != nil {
				return err
			}
			entries := tokenizer.LineMap(text)
			a.log.Debug("Built line map",
				logging.F(logging.FieldFile, args[0]),
				logging.F(logging.FieldCount, len(entries)))

			if asJSON {
				if entries == nil {
					entries = []models.LineEntry{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(entries)
			}
			return tokenizer.WriteLineMap(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the line map as JSON")
	return cmd
}

// parseFile extracts and parses one statement file.
func (a *app) parseFile(path, issuer string) (ParseResult, error) {
	text, err := extractor.ExtractFile(path)
	if err != nil {
		return ParseResult{}, err
	}

	p := parser.Route(issuer)
	if g, ok := p.(*parser.GenericParser); ok {
		g.Logger = a.log
	}
	fields, err := p.Parse(text)
	if err != nil {
		return ParseResult{}, err
	}

	res := ParseResult{
		Source: filepath.Base(path),
		Issuer: issuer,
		Parser: p.Name(),
		Fields: fields,
	}
	if strings.EqualFold(issuer, "AUTO") {
		if detected, ok := parser.AutoDetect(text); ok {
			res.DetectedIssuer = string(detected)
		}
	}

	a.log.Info("Statement parsed",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldParser, p.Name()))
	return res, nil
}

func writeResult(out io.Writer, res ParseResult, format string, header bool) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case "csv":
		w := &writer.CSVWriter{IncludeHeader: header}
		return w.Write(out, models.StatementRecord{
			Source: res.Source,
			Issuer: res.Issuer,
			Parser: res.Parser,
			Fields: res.Fields,
		})
	default:
		return fmt.Errorf("unknown format %q (use json, yaml or csv)", format)
	}
}
