package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/xufanglin/rimmich/tool"
)

type pingResponse struct {
	Res string `json:"res"`
}

// PingServer checks that serverURL answers GET /api/server/ping with {"res":"pong"}.
func PingServer(ctx context.Context, serverURL string) error {
	url := tool.BuildPingURL(serverURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := tool.GetDetectHttpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to send ping request to %s: %w", ErrTransport, url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	if err != nil {
		return fmt.Errorf("%w: failed to read ping response: %w", ErrTransport, err)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: "Ping", StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	var pong pingResponse
	if err := sonic.Unmarshal(body, &pong); err != nil {
		return fmt.Errorf("failed to parse ping response: %w", err)
	}
	if pong.Res != "pong" {
		return fmt.Errorf("unexpected ping response: %q", pong.Res)
	}
	tool.DefaultLogger.Infof("Ping to %s succeeded", url)
	return nil
}
