package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	client "github.com/hsn0918/docproc-client"
)

func newConvertCmd(opts *cliOptions) *cobra.Command {
	co := &convertOptions{
		opts: opts,
	}

	cmd := &cobra.Command{
		Use:   "convert <document-id>",
		Short: "Export a processed document to another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return co.run(cmd, args[0])
		},
	}

	co.addFlags(cmd)

	return cmd
}

type convertOptions struct {
	format       string
	mode         string
	template     string
	fontFamily   string
	download     bool
	output       string
	opts         *cliOptions
	targetFormat client.OutputFormat
	renderMode   client.RenderMode
}

func (o *convertOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", string(client.FormatMarkdown), "Target format: docx|pdf|html|markdown|txt")
	cmd.Flags().StringVar(&o.mode, "mode", string(client.RenderModeEditable), "Render mode: exact|editable")
	cmd.Flags().StringVar(&o.template, "template", "", "Export template name (see: docproc styles list)")
	cmd.Flags().StringVar(&o.fontFamily, "font-family", "", "Optional preferred font family")
	cmd.Flags().BoolVar(&o.download, "download", false, "Download the converted file when ready")
	cmd.Flags().StringVarP(&o.output, "out", "O", "", "Download path (used when --download is set)")
}

func (o *convertOptions) complete() error {
	format, err := parseOutputFormat(o.format)
	if err != nil {
		return err
	}
	o.targetFormat = format

	mode, err := parseRenderMode(o.mode)
	if err != nil {
		return err
	}
	o.renderMode = mode

	if o.output != "" && !o.download {
		return errors.New("flag --out requires --download")
	}

	return nil
}

func (o *convertOptions) run(cmd *cobra.Command, documentID string) error {
	cli, err := o.opts.setup(cmd)
	if err != nil {
		return err
	}

	if err := o.complete(); err != nil {
		return o.opts.fail(documentID, err)
	}

	ctx := cmd.Context()

	resp, err := cli.Convert(ctx, client.ConvertRequest{
		DocumentID: documentID,
		Format:     o.targetFormat,
		Mode:       o.renderMode,
		Template:   o.template,
		FontFamily: o.fontFamily,
	})
	if err != nil {
		return o.opts.fail(documentID, err)
	}

	o.opts.log.Infow("Conversion finished", "document_id", documentID, "output_id", resp.OutputID, "trace_id", resp.TraceID)

	if o.download {
		outPath := o.output
		if outPath == "" {
			outPath = defaultDownloadName(resp.DownloadURL, resp.OutputID)
		}

		data, err := cli.DownloadFile(ctx, resp.DownloadURL)
		if err != nil {
			return o.opts.fail(documentID, err)
		}
		if err := writeFile(outPath, data); err != nil {
			return o.opts.fail(documentID, err)
		}

		o.opts.log.Infow("Downloaded", "document_id", documentID, "path", outPath, "bytes", len(data))
	}

	return o.opts.print(cmd, resp.Raw)
}

func newOutputsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "outputs <document-id>",
		Short: "List exported outputs of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			resp, err := cli.ListOutputs(cmd.Context(), args[0])
			if err != nil {
				return opts.fail(args[0], err)
			}
			return opts.print(cmd, resp.Raw)
		},
	}
}

func newPreviewCmd(opts *cliOptions) *cobra.Command {
	var mode, template, htmlPath string

	cmd := &cobra.Command{
		Use:   "preview <document-id>",
		Short: "Fetch an HTML preview of a processed document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			req := client.PreviewRequest{DocumentID: args[0], Template: template}
			if mode != "" {
				if req.Mode, err = parseRenderMode(mode); err != nil {
					return opts.fail(args[0], err)
				}
			}

			resp, err := cli.Preview(cmd.Context(), req)
			if err != nil {
				return opts.fail(args[0], err)
			}

			if htmlPath == "" {
				return opts.print(cmd, resp.Raw)
			}

			if err := writeFile(htmlPath, []byte(resp.HTML)); err != nil {
				return opts.fail(args[0], err)
			}
			opts.log.Infow("Preview saved", "document_id", args[0], "path", htmlPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Render mode: exact|editable (omitted when empty)")
	cmd.Flags().StringVar(&template, "template", "", "Export template name, omitted when empty (see: docproc styles list)")
	cmd.Flags().StringVar(&htmlPath, "html", "", "Write the preview HTML to this file instead of printing the response")

	return cmd
}

func parseOutputFormat(format string) (client.OutputFormat, error) {
	switch strings.ToLower(format) {
	case string(client.FormatDocx):
		return client.FormatDocx, nil
	case string(client.FormatPDF):
		return client.FormatPDF, nil
	case string(client.FormatHTML):
		return client.FormatHTML, nil
	case string(client.FormatMarkdown), "md":
		return client.FormatMarkdown, nil
	case string(client.FormatText), "text":
		return client.FormatText, nil
	default:
		return "", fmt.Errorf("unsupported target format: %s", format)
	}
}

func parseRenderMode(mode string) (client.RenderMode, error) {
	switch strings.ToLower(mode) {
	case string(client.RenderModeExact):
		return client.RenderModeExact, nil
	case string(client.RenderModeEditable):
		return client.RenderModeEditable, nil
	default:
		return "", fmt.Errorf("unsupported render mode: %s", mode)
	}
}
