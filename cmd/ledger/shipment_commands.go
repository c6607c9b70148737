package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ledger/internal/api"
)

func newShipmentsCommand(ctx *commandContext) *cobra.Command {
	shipmentsCmd := &cobra.Command{
		Use:     "shipments",
		Aliases: []string{"shipment", "s"},
		Short:   "Inspect and manage shipments",
	}

	shipmentsCmd.AddCommand(newShipmentListCommand(ctx))
	shipmentsCmd.AddCommand(newShipmentShowCommand(ctx))
	shipmentsCmd.AddCommand(newShipmentAddCommand(ctx))
	shipmentsCmd.AddCommand(newShipmentEditCommand(ctx))
	shipmentsCmd.AddCommand(newShipmentDeleteCommand(ctx))
	shipmentsCmd.AddCommand(newShipmentImportCommand(ctx))
	shipmentsCmd.AddCommand(newShipmentGenerateCommand(ctx))
	shipmentsCmd.AddCommand(newShipmentStatusCommand(ctx))
	shipmentsCmd.AddCommand(newShipmentStatsCommand(ctx))

	return shipmentsCmd
}

func newShipmentListCommand(ctx *commandContext) *cobra.Command {
	var statuses []string
	var search string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shipments, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.ShipmentService) error {
				items, err := svc.List(cmd.Context(), statuses, search, limit)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					if items == nil {
						items = []api.Shipment{}
					}
					return writeJSON(cmd, api.ShipmentListResponse{Items: items})
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No shipments found")
					return nil
				}
				writeTable(cmd.OutOrStdout(),
					[]string{"ID", "House Bill", "Consignee", "Container", "Status", "Created"},
					buildShipmentListRows(items),
					nil,
				)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&statuses, "status", "s", nil, "Filter by status (repeatable)")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Search house bill, consignee, container or status")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of shipments to show")
	return cmd
}

func newShipmentShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.ShipmentService) error {
				item, err := svc.Describe(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, item)
				}
				writeTable(cmd.OutOrStdout(), []string{"Field", "Value"}, buildShipmentDetailRows(*item), nil)
				return nil
			})
		},
	}
}

func newShipmentAddCommand(ctx *commandContext) *cobra.Command {
	var flags shipmentFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a shipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.ShipmentService) error {
				item, err := svc.Create(cmd.Context(), flags.fields(cmd))
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, item)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added shipment %s (%s)\n", item.HouseBillNumber, item.ID)
				return nil
			})
		},
	}

	flags.register(cmd, true)
	_ = cmd.MarkFlagRequired("house-bill")
	return cmd
}

func newShipmentEditCommand(ctx *commandContext) *cobra.Command {
	var flags shipmentFlags

	cmd := &cobra.Command{
		Use:   "edit <id>...",
		Short: "Set fields on one or more shipments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.ShipmentService) error {
				resp, err := svc.Patch(cmd.Context(), api.BulkPatchRequest{IDs: args, Patch: flags.patch(cmd)})
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d shipment(s)\n", resp.Count)
				return nil
			})
		},
	}

	flags.register(cmd, false)
	return cmd
}

func newShipmentDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete shipments",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.ShipmentService) error {
				resp, err := svc.DeleteMany(cmd.Context(), args)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d shipment(s)\n", resp.Count)
				if missing := int64(len(args)) - resp.Count; missing > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "%d id(s) did not match a shipment\n", missing)
				}
				return nil
			})
		},
	}
}

func newShipmentImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Import shipments from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open spreadsheet: %w", err)
			}
			defer file.Close()

			return ctx.withService(cmd, func(svc *api.ShipmentService) error {
				resp, err := svc.Import(cmd.Context(), file, filepath.Base(args[0]))
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d shipment(s)", resp.Imported)
				if resp.Skipped > 0 {
					fmt.Fprintf(out, ", skipped %d row(s)", resp.Skipped)
				}
				fmt.Fprintln(out)
				if len(resp.Issues) > 0 {
					writeTable(out, []string{"Row", "Column", "Value", "Problem"}, buildImportIssueRows(resp.Issues),
						[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft})
				}
				return nil
			})
		},
	}
}

func newShipmentGenerateCommand(ctx *commandContext) *cobra.Command {
	var req api.BatchRequest

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create placeholder shipments with sequential house bill numbers",
		Example: "  ledger shipments generate --prefix ERDF --start 1 --count 50\n" +
			"  # creates ERDF001 through ERDF050",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.ShipmentService) error {
				resp, err := svc.CreateBatch(cmd.Context(), req)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %d shipment(s)\n", len(resp.IDs))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&req.Prefix, "prefix", "p", "", "House bill prefix, up to 4 characters")
	cmd.Flags().IntVar(&req.Start, "start", 1, "First sequence number")
	cmd.Flags().IntVarP(&req.Count, "count", "n", 1, "Number of shipments to create")
	_ = cmd.MarkFlagRequired("prefix")
	return cmd
}

func newShipmentStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <house-bill-prefix> <status>",
		Short: "Set the status of every shipment whose house bill starts with a prefix",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.ShipmentService) error {
				resp, err := svc.SetStatusByPrefix(cmd.Context(), api.StatusByPrefixRequest{Prefix: args[0], Status: args[1]})
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				if resp.Count == 0 {
					return errors.New("no shipments matched prefix " + args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d shipment(s)\n", resp.Count)
				return nil
			})
		},
	}
}

func newShipmentStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show shipment counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(svc *api.ShipmentService) error {
				stats, err := svc.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, stats)
				}
				writeTable(cmd.OutOrStdout(), []string{"Status", "Count"}, buildStatsRows(stats),
					[]columnAlignment{alignLeft, alignRight})
				return nil
			})
		},
	}
}
