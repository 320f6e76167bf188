package main

import (
	"errors"

	"github.com/spf13/cobra"

	client "github.com/hsn0918/docproc-client"
)

func newTemplatesCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage document matching templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List matching templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			resp, err := cli.ListTemplates(cmd.Context())
			if err != nil {
				return opts.fail("templates", err)
			}
			return opts.print(cmd, resp.Raw)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <template-id>",
		Short: "Fetch a matching template with its regions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			resp, err := cli.GetTemplate(cmd.Context(), args[0])
			if err != nil {
				return opts.fail(args[0], err)
			}
			return opts.print(cmd, resp.Raw)
		},
	})

	cmd.AddCommand(newTemplateCreateCmd(opts))
	cmd.AddCommand(newTemplateUpdateCmd(opts))

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <template-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a matching template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			resp, err := cli.DeleteTemplate(cmd.Context(), args[0])
			if err != nil {
				return opts.fail(args[0], err)
			}
			opts.log.Infow("Template deleted", "template_id", args[0], "trace_id", resp.TraceID)
			return opts.print(cmd, resp.Raw)
		},
	})

	return cmd
}

func newTemplateCreateCmd(opts *cliOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a matching template from a YAML or JSON definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			var req client.CreateTemplateRequest
			if err := readDefinition(file, &req); err != nil {
				return opts.fail(file, err)
			}

			resp, err := cli.CreateTemplate(cmd.Context(), req)
			if err != nil {
				return opts.fail(req.Name, err)
			}
			opts.log.Infow("Template created", "template_id", resp.ID, "rois", len(resp.ROIs))
			return opts.print(cmd, resp.Raw)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Definition with name, description, matchFingerprint and rois")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newTemplateUpdateCmd(opts *cliOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update <template-id>",
		Short: "Replace a matching template and its regions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			var req client.UpdateTemplateRequest
			if err := readDefinition(file, &req); err != nil {
				return opts.fail(args[0], err)
			}
			req.ID = args[0]

			resp, err := cli.UpdateTemplate(cmd.Context(), req)
			if err != nil {
				return opts.fail(args[0], err)
			}
			return opts.print(cmd, resp.Raw)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Definition with name, description, matchFingerprint and rois")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newStylesCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "styles",
		Aliases: []string{"export-templates"},
		Short:   "Manage export templates used by convert and preview --template",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List export template names",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			resp, err := cli.ListExportStyles(cmd.Context())
			if err != nil {
				return opts.fail("styles", err)
			}
			return opts.print(cmd, resp.Raw)
		},
	})

	var file string
	upsert := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or replace a custom export template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			var style client.ExportStyle
			if err := readDefinition(file, &style); err != nil {
				return opts.fail(args[0], err)
			}
			if style.Name == "" {
				style.Name = args[0]
			}
			if style.Name != args[0] {
				return opts.fail(args[0], errors.New("style name in file does not match argument"))
			}

			resp, err := cli.UpsertExportStyle(cmd.Context(), client.UpsertExportStyleRequest{Name: args[0], Data: style})
			if err != nil {
				return opts.fail(args[0], err)
			}
			return opts.print(cmd, resp.Raw)
		},
	}
	upsert.Flags().StringVarP(&file, "file", "f", "", "Style definition (page, fonts, headings, paragraph, list, table)")
	_ = upsert.MarkFlagRequired("file")
	cmd.AddCommand(upsert)

	return cmd
}

func newMetricsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show the processing metrics dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			resp, err := cli.MetricsDashboard(cmd.Context())
			if err != nil {
				return opts.fail("metrics", err)
			}
			opts.log.Debugw("Dashboard fetched", "documents", resp.Totals.Documents, "recent_runs", len(resp.RecentRuns))
			return opts.print(cmd, resp.Raw)
		},
	}
}
