package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	client "github.com/hsn0918/docproc-client"
	"github.com/hsn0918/docproc-client/internal/config"
)

func buildClient(cfg *config.Config, log *zap.SugaredLogger) client.Client {
	options := []client.Option{
		client.WithHeaders(cfg.Headers),
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(log),
	}
	if cfg.Trace {
		options = append(options, client.WithTracing())
	}
	if cfg.RequestIDs {
		options = append(options, client.WithRequestIDs())
	}
	return client.NewClient(cfg.BaseURL, options...)
}

// render writes a verbatim JSON response body in the configured format.
func render(w io.Writer, format string, raw json.RawMessage) error {
	switch format {
	case "yaml":
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return fmt.Errorf("format json: %w", err)
		}
		buf.WriteByte('\n')
		_, err := buf.WriteTo(w)
		return err
	}
}

func (o *cliOptions) print(cmd *cobra.Command, raw json.RawMessage) error {
	return render(cmd.OutOrStdout(), o.cfg.Output, raw)
}

// fail records err in the fail log and returns it, joined with any log write error.
func (o *cliOptions) fail(target string, err error) error {
	path := ""
	if o.cfg != nil {
		path = o.cfg.FailLog
	}
	if logErr := logFailure(path, traceIDOf(err), target, err); logErr != nil {
		return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
	}
	return err
}

func traceIDOf(err error) string {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.TraceID
	}
	return ""
}

// fileUpload describes a local file about to be registered.
type fileUpload struct {
	name     string
	mimeType string
	size     int64
}

func inspectFile(p string) (fileUpload, error) {
	info, err := os.Stat(p)
	if err != nil {
		return fileUpload{}, fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fileUpload{}, fmt.Errorf("not a regular file: %s", p)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(p)))
	if mimeType == "" {
		mimeType, err = sniffContentType(p)
		if err != nil {
			return fileUpload{}, err
		}
	}

	return fileUpload{
		name:     filepath.Base(p),
		mimeType: mimeType,
		size:     info.Size(),
	}, nil
}

func sniffContentType(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read file: %w", err)
	}
	return http.DetectContentType(head[:n]), nil
}

func defaultDownloadName(urlStr, outputID string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return outputID
	}

	base := path.Base(parsed.Path)
	if base == "" || base == "/" || base == "." {
		return outputID
	}

	return base
}

func writeFile(targetPath string, data []byte) error {
	if dir := filepath.Dir(targetPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	if err := os.WriteFile(targetPath, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// readDefinition decodes a YAML or JSON file into v using v's JSON field names.
func readDefinition(p string, v any) error {
	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("read definition: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse definition %s: %w", p, err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode definition %s: %w", p, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode definition %s: %w", p, err)
	}

	return nil
}
