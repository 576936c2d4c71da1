package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xufanglin/rimmich/batch"
	"github.com/xufanglin/rimmich/tool"
)

type cliEnv struct {
	configPath string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	old := tool.ConfigPath
	t.Cleanup(func() { tool.ConfigPath = old })
	return &cliEnv{configPath: filepath.Join(t.TempDir(), "config.yaml")}
}

func (e *cliEnv) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := NewCLI()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", e.configPath, "--no-log-file", "--log", "error"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestUserCommands(t *testing.T) {
	env := newCLIEnv(t)

	out, _, err := env.run("user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No users")

	out, _, err = env.run("user", "add", "alice", "alice-key-0001")
	require.NoError(t, err)
	assert.Contains(t, out, "User added")
	_, _, err = env.run("user", "add", "bob", "bob-key-0002")
	require.NoError(t, err)

	out, _, err = env.run("user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "0001")
	assert.NotContains(t, out, "alice-key")

	out, _, err = env.run("user", "default", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Default user changed to: bob")
	assert.Equal(t, "bob", tool.GetCurrentConfig().CurrentUser)

	_, _, err = env.run("user", "remove", "carol")
	assert.ErrorIs(t, err, tool.ErrUserNotFound)
}

func TestConfigSet(t *testing.T) {
	env := newCLIEnv(t)

	_, stderr, err := env.run("config", "set", "concurrency", "17")
	assert.ErrorIs(t, err, tool.ErrInvalidConcurrency)
	assert.Contains(t, stderr, "Concurrency must be between 1 and 16")

	out, _, err := env.run("config", "set", "concurrency", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Concurrency settings saved")

	out, _, err = env.run("config", "set", "language", "zh")
	require.NoError(t, err)
	assert.Contains(t, out, "语言设置已保存")

	_, _, err = env.run("config", "set", "colour", "blue")
	assert.Error(t, err)

	out, _, err = env.run("config", "set", "skip-tls-verify", "true")
	require.NoError(t, err)
	assert.Contains(t, out, "证书校验设置已保存")
	assert.True(t, tool.GetCurrentConfig().SkipTLSVerify)

	_, _, err = env.run("config", "set", "skip-tls-verify", "maybe")
	assert.Error(t, err)
	assert.True(t, tool.GetCurrentConfig().SkipTLSVerify)

	out, _, err = env.run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "concurrency")
	assert.Contains(t, out, "4")
	assert.Contains(t, out, "zh (中文)")
	assert.Contains(t, out, "skip-tls-verify")
	assert.Contains(t, out, "true")
}

func TestConfigShowLanguageName(t *testing.T) {
	env := newCLIEnv(t)
	out, _, err := env.run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "en (English)")
	assert.Contains(t, out, "false")
}

func newImmich(t *testing.T, rejectName string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/server/ping":
			_, _ = io.WriteString(w, `{"res":"pong"}`)
		case "/api/assets":
			hits.Add(1)
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if r.FormValue("filename") == rejectName {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, "invalid key")
				return
			}
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func writeFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("not really a photo: "+name), 0o644))
		paths = append(paths, p)
	}
	return paths
}

func TestUploadCommand(t *testing.T) {
	env := newCLIEnv(t)
	srv, hits := newImmich(t, "")
	_, _, err := env.run("config", "set", "server-url", srv.URL)
	require.NoError(t, err)
	_, _, err = env.run("user", "add", "alice", "key")
	require.NoError(t, err)

	files := writeFiles(t, "a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg")
	out, _, err := env.run(append([]string{"upload", "--concurrency", "2"}, files...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "5 files selected")
	assert.Contains(t, out, "Starting upload of 5 files ...")
	assert.Contains(t, out, "[5/5] Successfully uploaded:")
	assert.Contains(t, out, "Successfully uploaded all 5 files!")
	assert.EqualValues(t, 5, hits.Load())
}

func TestUploadCommandAborts(t *testing.T) {
	env := newCLIEnv(t)
	srv, hits := newImmich(t, "b.jpg")
	_, _, err := env.run("config", "set", "server-url", srv.URL)
	require.NoError(t, err)
	_, _, err = env.run("user", "add", "alice", "key")
	require.NoError(t, err)

	files := writeFiles(t, "a.jpg", "b.jpg", "c.jpg")
	out, _, err := env.run(append([]string{"upload", "-c", "1"}, files...)...)
	require.ErrorIs(t, err, ErrBatchAborted)
	assert.Contains(t, err.Error(), "completed_before_failure=1")
	assert.Contains(t, out, "[1/3] Successfully uploaded: a.jpg")
	assert.Contains(t, out, "Failed to upload b.jpg: Upload failed with status 401 Unauthorized: invalid key")
	assert.EqualValues(t, 2, hits.Load())
}

func TestUploadCommandRejectsInput(t *testing.T) {
	env := newCLIEnv(t)
	files := writeFiles(t, "a.jpg")

	_, stderr, err := env.run(append([]string{"upload"}, files...)...)
	assert.ErrorIs(t, err, batch.ErrMissingCredentials)
	assert.Contains(t, stderr, "API Key not found for selected user")

	_, _, err = env.run("user", "add", "alice", "key")
	require.NoError(t, err)
	_, stderr, err = env.run(append([]string{"upload", "--concurrency", "0"}, files...)...)
	assert.ErrorIs(t, err, batch.ErrInvalidConcurrency)
	assert.Contains(t, stderr, "Concurrency must be between 1 and 16")
}

func TestPingCommand(t *testing.T) {
	env := newCLIEnv(t)
	srv, _ := newImmich(t, "")
	_, _, err := env.run("config", "set", "server-url", srv.URL+"/")
	require.NoError(t, err)

	out, _, err := env.run("ping")
	require.NoError(t, err)
	assert.Contains(t, out, "is reachable")
}
