package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	client "github.com/hsn0918/docproc-client"
)

type uploadOptions struct {
	file     string
	filename string
	mimeType string
	size     int64
	put      bool
	opts     *cliOptions
}

func newUploadCmd(opts *cliOptions) *cobra.Command {
	uo := &uploadOptions{opts: opts}

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Register a document upload and optionally send the file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return uo.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&uo.file, "file", "f", "", "Local file; filename, MIME type and size are derived from it")
	cmd.Flags().StringVar(&uo.filename, "filename", "", "Filename to register (without --file)")
	cmd.Flags().StringVar(&uo.mimeType, "mime-type", "", "MIME type to register (without --file)")
	cmd.Flags().Int64Var(&uo.size, "size", 0, "File size in bytes (without --file)")
	cmd.Flags().BoolVar(&uo.put, "put", false, "PUT the file to the returned upload URL (requires --file)")

	return cmd
}

func (o *uploadOptions) complete() (client.UploadRequest, error) {
	if o.file != "" {
		info, err := inspectFile(o.file)
		if err != nil {
			return client.UploadRequest{}, err
		}
		req := client.UploadRequest{Filename: info.name, MimeType: info.mimeType, FileSize: info.size}
		if o.filename != "" {
			req.Filename = o.filename
		}
		if o.mimeType != "" {
			req.MimeType = o.mimeType
		}
		return req, nil
	}

	if o.put {
		return client.UploadRequest{}, errors.New("flag --put requires --file")
	}
	if o.filename == "" || o.mimeType == "" {
		return client.UploadRequest{}, errors.New("flag --file, or --filename and --mime-type, is required")
	}

	return client.UploadRequest{Filename: o.filename, MimeType: o.mimeType, FileSize: o.size}, nil
}

func (o *uploadOptions) run(cmd *cobra.Command) error {
	cli, err := o.opts.setup(cmd)
	if err != nil {
		return err
	}

	req, err := o.complete()
	if err != nil {
		return o.opts.fail(o.file, err)
	}

	resp, err := cli.Upload(cmd.Context(), req)
	if err != nil {
		return o.opts.fail(req.Filename, err)
	}
	o.opts.log.Infow("Upload registered", "file", req.Filename, "document_id", resp.DocumentID, "trace_id", resp.TraceID)

	if o.put {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return o.opts.fail(o.file, fmt.Errorf("read file %s: %w", o.file, err))
		}
		if err := cli.UploadToSignedURL(cmd.Context(), resp.UploadURL, data); err != nil {
			return o.opts.fail(resp.DocumentID, err)
		}
		o.opts.log.Infow("File uploaded", "file", req.Filename, "document_id", resp.DocumentID, "bytes", len(data))
	}

	return o.opts.print(cmd, resp.Raw)
}

type processOptions struct {
	mode     string
	quality  string
	wait     bool
	interval time.Duration
	opts     *cliOptions
}

func newProcessCmd(opts *cliOptions) *cobra.Command {
	po := &processOptions{opts: opts}

	cmd := &cobra.Command{
		Use:   "process <document-id>",
		Short: "Run text and structure extraction for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return po.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&po.mode, "mode", "", "Processing mode: auto|local|cloud (omitted when empty)")
	cmd.Flags().StringVar(&po.quality, "quality", "", "Quality: fast|best (omitted when empty)")
	cmd.Flags().BoolVar(&po.wait, "wait", false, "Poll the document until processing completes")
	cmd.Flags().DurationVar(&po.interval, "interval", client.DefaultPollInterval, "Polling interval with --wait")

	return cmd
}

func (o *processOptions) run(cmd *cobra.Command, documentID string) error {
	cli, err := o.opts.setup(cmd)
	if err != nil {
		return err
	}

	resp, err := cli.Process(cmd.Context(), client.ProcessRequest{
		DocumentID: documentID,
		Mode:       client.ProcessingMode(o.mode),
		Quality:    client.Quality(o.quality),
	})
	if err != nil {
		return o.opts.fail(documentID, err)
	}
	o.opts.log.Infow("Processing requested", "document_id", documentID, "status", resp.Status, "trace_id", resp.TraceID)

	if !o.wait {
		return o.opts.print(cmd, resp.Raw)
	}

	doc, err := cli.WaitForProcessing(cmd.Context(), documentID, o.interval)
	if err != nil {
		return o.opts.fail(documentID, err)
	}
	o.opts.log.Infow("Processing finished", "document_id", documentID, "status", doc.ProcessingStatus)

	return o.opts.print(cmd, doc.Raw)
}

func newGetCmd(opts *cliOptions) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "get <document-id>...",
		Short: "Fetch one or more documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				doc, err := cli.GetDocument(cmd.Context(), args[0])
				if err != nil {
					return opts.fail(args[0], err)
				}
				return opts.print(cmd, doc.Raw)
			}

			docs := make([]json.RawMessage, len(args))
			eg, ctx := errgroup.WithContext(cmd.Context())
			if concurrency > 0 {
				eg.SetLimit(concurrency)
			}
			for i, id := range args {
				i, id := i, id
				eg.Go(func() error {
					doc, err := cli.GetDocument(ctx, id)
					if err != nil {
						return opts.fail(id, err)
					}
					docs[i] = doc.Raw
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			raw, err := json.Marshal(docs)
			if err != nil {
				return err
			}
			return opts.print(cmd, raw)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Maximum parallel requests when fetching several documents")

	return cmd
}

func newListCmd(opts *cliOptions) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			var req client.ListDocumentsRequest
			if cmd.Flags().Changed("limit") {
				req.Limit = client.Int(limit)
			}
			if cmd.Flags().Changed("offset") {
				req.Offset = client.Int(offset)
			}

			resp, err := cli.ListDocuments(cmd.Context(), req)
			if err != nil {
				return opts.fail("documents", err)
			}
			return opts.print(cmd, resp.Raw)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (sent only when set)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset (sent only when set)")

	return cmd
}

func newUpdateCmd(opts *cliOptions) *cobra.Command {
	var text, structureFile string

	cmd := &cobra.Command{
		Use:   "update <document-id>",
		Short: "Replace the extracted text and/or structure of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" && structureFile == "" {
				return errors.New("flag --text or --structure is required")
			}

			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			req := client.UpdateDocumentRequest{ID: args[0], ExtractedText: text}
			if structureFile != "" {
				content, err := os.ReadFile(structureFile)
				if err != nil {
					return opts.fail(args[0], fmt.Errorf("read structure: %w", err))
				}
				var structure client.DocumentStructure
				if err := json.Unmarshal(content, &structure); err != nil {
					return opts.fail(args[0], fmt.Errorf("parse structure %s: %w", structureFile, err))
				}
				req.DocumentStructure = &structure
			}

			resp, err := cli.UpdateDocument(cmd.Context(), req)
			if err != nil {
				return opts.fail(args[0], err)
			}
			return opts.print(cmd, resp.Raw)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Replacement extracted text")
	cmd.Flags().StringVar(&structureFile, "structure", "", "JSON file holding a replacement document structure")

	return cmd
}

func newCompareCmd(opts *cliOptions) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "compare <document-a> <document-b>",
		Short: "Diff two documents and report CER/WER",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			resp, err := cli.Compare(cmd.Context(), client.CompareRequest{
				AID:  args[0],
				BID:  args[1],
				Mode: client.CompareMode(mode),
			})
			if err != nil {
				return opts.fail(args[0]+","+args[1], err)
			}
			return opts.print(cmd, resp.Raw)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Compare mode: text|structure (server default text)")

	return cmd
}

func newBatchCmd(opts *cliOptions) *cobra.Command {
	var req client.BatchProcessRequest
	var convertTo, mode, processingMode string

	cmd := &cobra.Command{
		Use:   "batch <document-id>...",
		Short: "Process, and optionally convert, several documents server-side",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			req.DocumentIDs = args
			req.ConvertTo = client.OutputFormat(convertTo)
			req.Mode = client.RenderMode(mode)
			req.ProcessingMode = client.ProcessingMode(processingMode)

			resp, err := cli.BatchProcess(cmd.Context(), req)
			if err != nil {
				return opts.fail("batch", err)
			}

			failed := 0
			for _, r := range resp.Results {
				if r.Status == client.ProcessingStatusFailed {
					failed++
					opts.log.Warnw("Batch item failed", "document_id", r.DocumentID, "error", r.Error)
				}
			}
			opts.log.Infow("Batch finished", "documents", len(resp.Results), "failed", failed)

			return opts.print(cmd, resp.Raw)
		},
	}

	cmd.Flags().StringVar(&convertTo, "convert-to", "", "Convert each processed document: docx|pdf|html|markdown|txt")
	cmd.Flags().StringVar(&mode, "mode", "", "Render mode for conversion: exact|editable")
	cmd.Flags().StringVar(&processingMode, "processing-mode", "", "Processing mode: auto|local|cloud")
	cmd.Flags().StringSliceVar(&req.Languages, "languages", nil, "OCR language codes, e.g. eng,deu")
	cmd.Flags().StringVar(&req.Template, "template", "", "Export template name (see: docproc styles list)")
	cmd.Flags().StringVar(&req.FontFamily, "font-family", "", "Preferred font family")

	return cmd
}

func newVersionCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "versions <document-id> <version-id>",
		Short: "Fetch the structure stored for a document version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			resp, err := cli.GetVersion(cmd.Context(), args[0], args[1])
			if err != nil {
				return opts.fail(args[0], err)
			}
			return opts.print(cmd, resp.Raw)
		},
	}
}
