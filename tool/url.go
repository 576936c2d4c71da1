package tool

import "strings"

func trimServerURL(serverURL string) string {
	return strings.TrimRight(strings.TrimSpace(serverURL), "/")
}

// BuildAssetsURL builds the asset upload endpoint, POST {server}/api/assets.
func BuildAssetsURL(serverURL string) string {
	return trimServerURL(serverURL) + "/api/assets"
}

// BuildPingURL builds the reachability endpoint, GET {server}/api/server/ping.
func BuildPingURL(serverURL string) string {
	return trimServerURL(serverURL) + "/api/server/ping"
}
