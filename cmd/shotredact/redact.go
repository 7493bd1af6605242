package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ivlev/shotredact/internal/engine"
	"github.com/ivlev/shotredact/internal/report"
	"github.com/ivlev/shotredact/internal/source"
	"github.com/ivlev/shotredact/internal/system"
)

func newRedactCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redact [screenshot]",
		Short: "Detect secrets in a screenshot and write a blurred copy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(c.v, cmd.Flags()); err != nil {
				return err
			}
			return c.runRedact(cmd, args)
		},
	}

	addDetectionFlags(cmd)
	f := cmd.Flags()
	f.StringP("output", "o", "", "output PNG (default: <name>_redacted_<timestamp>.png next to the input)")
	f.Int("kernel-size", 99, "Gaussian kernel size (odd, >= 3)")
	f.Float64("sigma", 30, "Gaussian sigma")
	return cmd
}

// runRedact keeps stdout for the report; progress goes to stderr.
func (c *cli) runRedact(cmd *cobra.Command, args []string) error {
	start := time.Now()
	progress := cmd.ErrOrStderr()

	cfg, err := c.load()
	if err != nil {
		return err
	}

	input, err := resolveInput(progress, cfg.InputPath, args)
	if err != nil {
		return err
	}
	output := cfg.OutputPath
	if output == "" {
		output = system.DefaultOutputPath(input, time.Now())
	}

	p, err := buildPipeline(cmd.Context(), cfg, c.log, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(progress, "[*] Redacting %s\n", input)
	res, err := p.RedactFile(cmd.Context(), source.NewFileSource(input), output)
	if err != nil {
		return err
	}

	if cfg.ReportPath != "" {
		r := report.FromResult(res, input, output, cfg.BuildVersion)
		if err := emitReport(cmd.OutOrStdout(), progress, r, cfg.ReportPath); err != nil {
			return err
		}
	}

	printSummary(progress, res)
	color.New(color.FgGreen).Fprintf(progress, "[+++] Done in %s! Output: %s\n", elapsed(start), output)
	return nil
}

// emitReport writes the YAML report to path, or to out when path is "-"
func emitReport(out, progress io.Writer, r *report.Report, path string) error {
	if path == "-" {
		return report.Encode(out, r)
	}
	if err := report.Write(r, path); err != nil {
		return err
	}
	fmt.Fprintf(progress, "[*] Report: %s\n", path)
	return nil
}

func printSummary(w io.Writer, res *engine.Result) {
	if len(res.Regions) == 0 {
		color.New(color.FgYellow).Fprintln(w, "[!] No sensitive regions found")
		return
	}
	fmt.Fprintf(w, "[*] %d region(s) from %d token(s), %d box(es) blurred\n", len(res.Regions), res.Tokens, len(res.Boxes))
}
