package tool

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

var (
	DefaultTimeout = 30 * time.Second
	// UploadHttpClient carries asset uploads. It has no overall timeout since a
	// single large video may take longer than any fixed bound.
	UploadHttpClient *http.Client
	// DetectHttpClient is used for short requests such as the server ping.
	DetectHttpClient *http.Client
)

func init() {
	InitHTTPClients(false)
}

// newHTTPClient creates an HTTP client. With skipVerify, self-signed server certificates are accepted.
func newHTTPClient(timeout time.Duration, skipVerify bool) *http.Client {
	dialer := &net.Dialer{
		Timeout:   DefaultTimeout,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: skipVerify},
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   MaxConcurrency,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// InitHTTPClients (re)initializes the HTTP clients, call it after the config is loaded.
func InitHTTPClients(skipVerify bool) {
	UploadHttpClient = newHTTPClient(0, skipVerify)
	DetectHttpClient = newHTTPClient(DefaultTimeout, skipVerify)
}

func GetHttpClient() *http.Client {
	return UploadHttpClient
}

func GetDetectHttpClient() *http.Client {
	return DetectHttpClient
}
