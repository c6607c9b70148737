package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ledger/internal/api"
	"ledger/internal/config"
	"ledger/internal/delivery"
	"ledger/internal/fileutil"
	"ledger/internal/labels"
)

func newLabelsCommand(ctx *commandContext) *cobra.Command {
	labelsCmd := &cobra.Command{
		Use:   "labels",
		Short: "Generate shipment label documents",
	}
	labelsCmd.AddCommand(newLabelsPrintCommand(ctx))
	return labelsCmd
}

func newLabelsPrintCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var statuses []string
	var search string
	var output string

	cmd := &cobra.Command{
		Use:   "print [id...]",
		Short: "Render labels for the selected shipments into one PDF",
		Long: "Render one label page per selected shipment into a single PDF.\n\n" +
			"Without --output the document goes to the configured storage backend.\n" +
			"--output - streams the PDF to stdout, which must not be a terminal.",
		Example: "  ledger labels print --status pending\n" +
			"  ledger labels print 3f2a... 9bc1... --output labels.pdf\n" +
			"  ledger labels print --all --output - | lp",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.LabelRequest{IDs: args, Statuses: statuses, Search: search, All: all}
			if req.Empty() {
				return errors.New("select shipments by id, --status, --search or --all")
			}

			output = strings.TrimSpace(output)
			if output == "-" {
				if err := ensureNotTerminal(cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			return ctx.withService(cmd, func(svc *api.ShipmentService) error {
				result, err := svc.GenerateLabels(cmd.Context(), req, output == "")
				if err != nil {
					return err
				}
				report := cmd.OutOrStdout()
				if output == "-" {
					report = cmd.ErrOrStderr()
				}
				if output != "" {
					location, err := writeArtifact(cmd, output, result.Artifact)
					if err != nil {
						return err
					}
					result.Location = location
				}

				if ctx.jsonOutput() && output != "-" {
					return writeJSON(cmd, api.FromDelivery(result))
				}
				printLabelSummary(report, result)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Print every shipment")
	cmd.Flags().StringSliceVarP(&statuses, "status", "s", nil, "Select shipments by status (repeatable)")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Select shipments matching a search term")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the PDF to a path, or - for stdout")
	return cmd
}

// writeArtifact writes the document to stdout ("-") or a path. Write failures
// are reported like sink failures.
func writeArtifact(cmd *cobra.Command, output string, artifact *labels.Artifact) (string, error) {
	if output == "-" {
		location, err := delivery.NewWriter(cmd.OutOrStdout(), "stdout").Deliver(cmd.Context(), artifact)
		if err != nil {
			return "", &labels.SerializationError{Op: "deliver", Err: err}
		}
		return location, nil
	}
	path, err := config.ExpandPath(output)
	if err != nil {
		return "", err
	}
	if err := fileutil.WriteFileAtomic(path, artifact.Data, 0o644); err != nil {
		return "", &labels.SerializationError{Op: "deliver", Err: err}
	}
	return path, nil
}

// ensureNotTerminal refuses to stream binary PDF data to an interactive terminal.
func ensureNotTerminal(w io.Writer) error {
	file, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd()) {
		return errors.New("refusing to write PDF to a terminal; redirect stdout or use --output <path>")
	}
	return nil
}

func printLabelSummary(w io.Writer, result *labels.Delivery) {
	art := result.Artifact
	fmt.Fprintf(w, "Generated %s: %d page(s), %d bytes\n", art.Filename, art.Pages, art.Size())
	if result.Location != "" {
		fmt.Fprintf(w, "Saved to %s\n", result.Location)
	}
	if degraded := art.Degraded(); degraded > 0 {
		fmt.Fprintf(w, "Warning: %d page(s) printed without barcode or QR code\n", degraded)
		for _, outcome := range art.Outcomes {
			if outcome.Err != nil {
				fmt.Fprintf(w, "  page %d (%s): %v\n", outcome.Index+1, outcome.HouseBillNumber, outcome.Err)
			}
		}
	}
}
