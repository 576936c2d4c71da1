package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"

	"github.com/xufanglin/rimmich/tool"
	"github.com/xufanglin/rimmich/types"
)

// DeviceID identifies this client to the server.
const DeviceID = "rimmich-desktop"

const (
	assetFieldName  = "assetData"
	apiKeyHeader    = "x-api-key"
	maxErrorBodyLen = 64 * 1024
)

// Uploader pushes single files to the asset endpoint. The zero value uses the
// shared upload client and no speed limit.
type Uploader struct {
	Client     *http.Client
	SpeedLimit int64 // bytes per second, 0 = unlimited
}

// NewUploader returns an Uploader on the shared upload client.
func NewUploader(speedLimit int64) *Uploader {
	return &Uploader{Client: tool.GetHttpClient(), SpeedLimit: speedLimit}
}

// UploadAsset uploads one file with the shared client and no speed limit.
func UploadAsset(ctx context.Context, req types.UploadRequest) error {
	return (&Uploader{}).Upload(ctx, req)
}

// Upload streams req.FilePath as a multipart body to {server}/api/assets.
// The file is never loaded into memory as a whole. No retries are done here.
func (u *Uploader) Upload(ctx context.Context, req types.UploadRequest) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	default:
	}

	meta, err := tool.GetAssetMetadata(req.FilePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	tool.DefaultLogger.Debugf("[Upload] Starting upload for %s (%s, %d bytes)", meta.FileName, meta.ContentType, meta.Size)

	file, err := os.Open(req.FilePath)
	if err != nil {
		return fmt.Errorf("%w: failed to open file: %w", ErrIO, err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	writeDone := make(chan error, 1)
	go func() {
		werr := writeAssetForm(ctx, form, file, meta, u.SpeedLimit)
		pw.CloseWithError(werr)
		writeDone <- werr
	}()
	// closing the read side unblocks the writer goroutine on every exit path
	var writeErr error
	writerJoined := false
	joinWriter := func() error {
		if !writerJoined {
			pr.Close()
			writeErr = <-writeDone
			writerJoined = true
		}
		return writeErr
	}
	defer joinWriter()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, tool.BuildAssetsURL(req.ServerURL), pr)
	if err != nil {
		return fmt.Errorf("%w: failed to create upload request: %w", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(apiKeyHeader, req.APIKey)

	client := u.Client
	if client == nil {
		client = tool.GetHttpClient()
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
		}
		var readErr *fileReadError
		if werr := joinWriter(); errors.As(werr, &readErr) {
			return fmt.Errorf("%w: %w", ErrIO, readErr)
		}
		return fmt.Errorf("%w: failed to send upload request: %w", ErrTransport, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		text := strings.TrimSpace(string(body))
		if readErr != nil {
			text = "Failed to read error messages"
		}
		tool.DefaultLogger.Errorf("[Upload] File upload failed for %s: status %s, error: %s", meta.FileName, resp.Status, text)
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: text}
	}
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyLen))

	tool.DefaultLogger.Infof("[Upload] File uploaded successfully: %s", meta.FileName)
	return nil
}

// fileReadError marks a failure reading the local file while the body streams,
// so it can be told apart from network write failures.
type fileReadError struct {
	err error
}

func (e *fileReadError) Error() string { return "failed to read file: " + e.err.Error() }
func (e *fileReadError) Unwrap() error { return e.err }

type readErrorTagger struct {
	r io.Reader
}

func (t readErrorTagger) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		err = &fileReadError{err: err}
	}
	return n, err
}

func writeAssetForm(ctx context.Context, form *multipart.Writer, file io.Reader, meta types.AssetMetadata, speedLimit int64) error {
	fields := [][2]string{
		{"deviceAssetId", meta.DeviceAssetID},
		{"deviceId", DeviceID},
		{"fileCreatedAt", meta.FileCreatedAt},
		{"fileModifiedAt", meta.FileModifiedAt},
		{"isFavorite", "false"},
		{"isReadOnly", "false"},
		{"filename", meta.FileName},
	}
	for _, f := range fields {
		if err := form.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, assetFieldName, escapeQuotes(meta.FileName)))
	h.Set("Content-Type", meta.ContentType)
	part, err := form.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := tool.RateLimitedCopy(ctx, part, readErrorTagger{r: file}, speedLimit); err != nil {
		return err
	}
	return form.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
