package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ivlev/shotredact/internal/engine"
	"github.com/ivlev/shotredact/internal/report"
	"github.com/ivlev/shotredact/internal/source"
)

func newScanCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [screenshot]",
		Short: "Detect secrets and list the regions without writing an image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(c.v, cmd.Flags()); err != nil {
				return err
			}
			return c.runScan(cmd, args)
		},
	}
	addDetectionFlags(cmd)
	return cmd
}

func (c *cli) runScan(cmd *cobra.Command, args []string) error {
	progress := cmd.ErrOrStderr()

	cfg, err := c.load()
	if err != nil {
		return err
	}
	input, err := resolveInput(progress, cfg.InputPath, args)
	if err != nil {
		return err
	}

	img, err := source.NewFileSource(input).Image()
	if err != nil {
		return err
	}
	p, err := buildPipeline(cmd.Context(), cfg, c.log, progress)
	if err != nil {
		return err
	}
	res, err := p.Scan(cmd.Context(), img)
	if err != nil {
		return err
	}

	if cfg.ReportPath != "" {
		r := report.FromResult(res, input, "", cfg.BuildVersion)
		return emitReport(cmd.OutOrStdout(), progress, r, cfg.ReportPath)
	}
	printRegions(cmd.OutOrStdout(), res)
	return nil
}

func printRegions(out io.Writer, res *engine.Result) {
	if len(res.Regions) == 0 {
		fmt.Fprintln(out, "[!] No sensitive regions found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPROVENANCE\tBOX\tSCORE")
	for i, r := range res.Regions {
		score := "-"
		if r.Score > 0 {
			score = fmt.Sprintf("%.2f", r.Score)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, r.Source, r.Box, score)
	}
	w.Flush()
	fmt.Fprintf(out, "[*] %d region(s), %d box(es) after expansion\n", len(res.Regions), len(res.Boxes))
}
