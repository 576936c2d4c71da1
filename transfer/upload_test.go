package transfer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xufanglin/rimmich/types"
)

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}

type receivedAsset struct {
	apiKey      string
	fields      map[string]string
	fileName    string
	contentType string
	data        []byte
}

// newAssetServer records every multipart upload and answers with status.
func newAssetServer(t *testing.T, status int, body string) (*httptest.Server, func() []receivedAsset) {
	t.Helper()
	var mu sync.Mutex
	var got []receivedAsset
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/assets" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec := receivedAsset{apiKey: r.Header.Get("x-api-key"), fields: map[string]string{}}
		for k, v := range r.MultipartForm.Value {
			rec.fields[k] = v[0]
		}
		f, hdr, err := r.FormFile("assetData")
		if err == nil {
			rec.fileName = hdr.Filename
			rec.contentType = hdr.Header.Get("Content-Type")
			rec.data, _ = io.ReadAll(f)
			f.Close()
		}
		mu.Lock()
		got = append(got, rec)
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, func() []receivedAsset {
		mu.Lock()
		defer mu.Unlock()
		return append([]receivedAsset(nil), got...)
	}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestUploadSendsMultipartAsset(t *testing.T) {
	srv, received := newAssetServer(t, http.StatusCreated, `{"id":"1","status":"created"}`)
	data := append(append([]byte{}, jpegHeader...), make([]byte, 2048)...)
	path := writeFile(t, t.TempDir(), "holiday.jpg", data)
	mod := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.FixedZone("CEST", 2*3600))
	require.NoError(t, os.Chtimes(path, mod, mod))

	// trailing slash must not produce a double slash in the endpoint
	err := UploadAsset(context.Background(), types.UploadRequest{ServerURL: srv.URL + "/", APIKey: "secret", FilePath: path})
	require.NoError(t, err)

	got := received()
	require.Len(t, got, 1)
	asset := got[0]
	assert.Equal(t, "secret", asset.apiKey)
	assert.Equal(t, "holiday.jpg-2060", asset.fields["deviceAssetId"])
	assert.Equal(t, DeviceID, asset.fields["deviceId"])
	assert.Equal(t, "2024-05-06T05:08:09.123Z", asset.fields["fileModifiedAt"])
	assert.NotEmpty(t, asset.fields["fileCreatedAt"])
	_, err = time.Parse(time.RFC3339, asset.fields["fileCreatedAt"])
	assert.NoError(t, err)
	assert.Equal(t, "false", asset.fields["isFavorite"])
	assert.Equal(t, "false", asset.fields["isReadOnly"])
	assert.Equal(t, "holiday.jpg", asset.fields["filename"])
	assert.Equal(t, "holiday.jpg", asset.fileName)
	assert.Equal(t, "image/jpeg", asset.contentType)
	assert.Equal(t, data, asset.data)
}

func TestUploadUnknownContentIsOctetStream(t *testing.T) {
	srv, received := newAssetServer(t, http.StatusOK, "")
	path := writeFile(t, t.TempDir(), "blob.bin", []byte{0x00, 0xFF, 0x13, 0x00, 0xFF, 0x13, 0x00, 0x01})

	require.NoError(t, UploadAsset(context.Background(), types.UploadRequest{ServerURL: srv.URL, APIKey: "k", FilePath: path}))
	got := received()
	require.Len(t, got, 1)
	assert.Equal(t, "application/octet-stream", got[0].contentType)
}

func TestUploadNon2xxIsStatusError(t *testing.T) {
	srv, _ := newAssetServer(t, http.StatusUnauthorized, `{"message":"Invalid API key"}`)
	path := writeFile(t, t.TempDir(), "a.jpg", jpegHeader)

	err := UploadAsset(context.Background(), types.UploadRequest{ServerURL: srv.URL, APIKey: "bad", FilePath: path})
	require.Error(t, err)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestUploadMissingFileIsIOError(t *testing.T) {
	srv, received := newAssetServer(t, http.StatusOK, "")
	err := UploadAsset(context.Background(), types.UploadRequest{ServerURL: srv.URL, APIKey: "k", FilePath: filepath.Join(t.TempDir(), "missing.jpg")})
	assert.ErrorIs(t, err, ErrIO)
	assert.Empty(t, received())
}

func TestUploadDirectoryIsIOError(t *testing.T) {
	srv, received := newAssetServer(t, http.StatusOK, "")
	err := UploadAsset(context.Background(), types.UploadRequest{ServerURL: srv.URL, APIKey: "k", FilePath: t.TempDir()})
	assert.ErrorIs(t, err, ErrIO)
	assert.Empty(t, received())
}

func TestUploadUnreachableServerIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	path := writeFile(t, t.TempDir(), "a.jpg", jpegHeader)

	err := UploadAsset(context.Background(), types.UploadRequest{ServerURL: url, APIKey: "k", FilePath: path})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestUploadCancelledContext(t *testing.T) {
	srv, received := newAssetServer(t, http.StatusOK, "")
	path := writeFile(t, t.TempDir(), "a.jpg", jpegHeader)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := UploadAsset(ctx, types.UploadRequest{ServerURL: srv.URL, APIKey: "k", FilePath: path})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, received())
}

func TestUploadCancelAbortsInFlightTransfer(t *testing.T) {
	entered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-r.Context().Done()
	}))
	defer srv.Close()
	path := writeFile(t, t.TempDir(), "a.jpg", jpegHeader)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- UploadAsset(ctx, types.UploadRequest{ServerURL: srv.URL, APIKey: "k", FilePath: path})
	}()
	<-entered
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrCancelled)
	case <-time.After(5 * time.Second):
		t.Fatal("upload did not stop after cancellation")
	}
}

func TestUploaderSpeedLimitStillDelivers(t *testing.T) {
	srv, received := newAssetServer(t, http.StatusOK, "")
	data := append(append([]byte{}, jpegHeader...), make([]byte, 4096)...)
	path := writeFile(t, t.TempDir(), "slow.jpg", data)

	u := &Uploader{Client: srv.Client(), SpeedLimit: 1 << 20}
	require.NoError(t, u.Upload(context.Background(), types.UploadRequest{ServerURL: srv.URL, APIKey: "k", FilePath: path}))
	got := received()
	require.Len(t, got, 1)
	assert.Equal(t, data, got[0].data)
}
