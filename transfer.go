package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-resty/resty/v2"
)

// UploadToSignedURL PUTs file data to the signed URL returned by Upload.
// The static headers are not sent to the storage host.
func (c *client) UploadToSignedURL(ctx context.Context, url string, fileData []byte) error {
	if url == "" {
		return ErrEmptySignedURL
	}

	if len(fileData) == 0 {
		return ErrEmptyFileData
	}

	resp, err := c.transferClient.R().
		SetContext(ctx).
		SetBody(fileData).
		Put(url)

	if err != nil {
		return &TransportError{Operation: OperationSignedUpload, Err: err}
	}

	if !resp.IsSuccess() {
		return transferStatusError(OperationSignedUpload, resp)
	}

	return nil
}

// DownloadFile downloads a converted output from its download URL.
func (c *client) DownloadFile(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrEmptyDownloadURL
	}

	resp, err := c.transferClient.R().
		SetContext(ctx).
		Get(normalizeDownloadURL(url))

	if err != nil {
		return nil, &TransportError{Operation: OperationDownload, Err: fmt.Errorf("download file from %s: %w", url, err)}
	}

	if !resp.IsSuccess() {
		return nil, transferStatusError(OperationDownload, resp)
	}

	data := resp.Body()
	if len(data) == 0 {
		return nil, fmt.Errorf("downloaded file is empty")
	}

	return data, nil
}

// DownloadFileTo downloads a converted output into dst.
func (c *client) DownloadFileTo(ctx context.Context, url string, dst io.Writer) error {
	if dst == nil {
		return ErrNilWriter
	}

	data, err := c.DownloadFile(ctx, url)
	if err != nil {
		return err
	}

	if _, err := dst.Write(data); err != nil {
		return fmt.Errorf("write downloaded file: %w", err)
	}

	return nil
}

// normalizeDownloadURL undoes JSON-escaped ampersands some signers leave in query strings.
func normalizeDownloadURL(url string) string {
	return strings.ReplaceAll(url, "\\u0026", "&")
}

func transferStatusError(operation Operation, resp *resty.Response) error {
	return &HTTPError{
		Operation:  operation,
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       resp.Body(),
		TraceID:    resp.Header().Get(TraceIDHeader),
	}
}
