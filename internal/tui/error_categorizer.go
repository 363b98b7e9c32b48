package tui

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/studiowebux/metawrite/internal/executor"
)

const (
	hintTimeout = "Request timeout - the service is slow to respond, raise --timeout or METAWRITE_TIMEOUT"
	hintRefused = "Connection refused - check that the service is running and the port is correct"
)

// failureHint returns a hint for transport failures. Failures reported by
// the service itself already carry their own message and get no hint.
func failureHint(cause error) string {
	if cause == nil {
		return ""
	}
	var apiErr *executor.APIError
	if errors.As(cause, &apiErr) {
		return ""
	}
	if errors.Is(cause, executor.ErrMalformedResponse) {
		return "The service answered with an unexpected payload - check that the endpoint points to the generation service"
	}
	return categorizeError(cause)
}

// categorizeRequestError analyzes error strings from HTTP requests and provides
// actionable, user-friendly error messages based on the error type.
func categorizeRequestError(errStr string) string {
	if errStr == "" {
		return ""
	}

	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "context canceled") ||
		strings.Contains(errLower, "context cancelled") {
		return "Request cancelled"
	}

	if strings.Contains(errLower, "context deadline exceeded") ||
		strings.Contains(errLower, "deadline exceeded") {
		return hintTimeout
	}

	// Proxy errors often contain "connection refused" too
	if strings.Contains(errLower, "proxy") {
		return "Proxy connection failed - verify HTTPS_PROXY / HTTP_PROXY in the environment"
	}

	if strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "dns") ||
		strings.Contains(errLower, "dial tcp: lookup") {
		return "DNS resolution failed - verify the endpoint hostname and that the network is available"
	}

	if strings.Contains(errLower, "connection refused") {
		return hintRefused
	}

	if strings.Contains(errLower, "connection reset") {
		return "Connection reset by server - the service may have restarted, submit again"
	}

	if strings.Contains(errLower, "network is unreachable") ||
		strings.Contains(errLower, "no route to host") {
		return "Network unreachable - check network connection and firewall settings"
	}

	if strings.Contains(errLower, "tls") ||
		strings.Contains(errLower, "ssl") ||
		strings.Contains(errLower, "certificate") ||
		strings.Contains(errLower, "x509") {
		return categorizeSSLError(errStr)
	}

	if strings.Contains(errLower, "stopped after") && strings.Contains(errLower, "redirect") {
		return "Too many redirects - check the endpoint URL"
	}

	if strings.Contains(errLower, "invalid url") ||
		strings.Contains(errLower, "unsupported protocol") {
		return "Invalid endpoint - use a full http:// or https:// address"
	}

	if strings.Contains(errLower, "eof") {
		return "Connection closed unexpectedly - the service terminated the connection prematurely"
	}

	if strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "timed out") {
		return hintTimeout
	}

	// Uncategorized: the failure message already shows the error text
	return ""
}

// categorizeSSLError provides specific guidance for TLS/SSL certificate errors
func categorizeSSLError(errStr string) string {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "unknown authority") ||
		strings.Contains(errLower, "certificate is not trusted") {
		return "TLS certificate verification failed - the endpoint certificate is not trusted by this system"
	}

	if strings.Contains(errLower, "expired") {
		return "TLS certificate has expired - contact the service administrator"
	}

	if strings.Contains(errLower, "certificate is valid for") ||
		strings.Contains(errLower, "name mismatch") ||
		strings.Contains(errLower, "doesn't match") {
		return "TLS hostname mismatch - certificate doesn't match the endpoint hostname"
	}

	if strings.Contains(errLower, "handshake") {
		return "TLS handshake failed - the endpoint may not speak HTTPS, try http://"
	}

	return "TLS/SSL error: " + errStr
}

// categorizeError unwraps err to its root cause and categorizes it
func categorizeError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return hintTimeout
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}

	var rootErr error = err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}

	switch e := rootErr.(type) {
	case *url.Error:
		return categorizeURLError(e)
	case *net.OpError:
		return categorizeNetError(e)
	case x509.UnknownAuthorityError:
		return "TLS certificate verification failed - the endpoint certificate is not trusted by this system"
	case x509.CertificateInvalidError:
		return "TLS certificate is invalid: " + e.Error()
	case syscall.Errno:
		if hint := categorizeErrno(e); hint != "" {
			return hint
		}
	}

	return categorizeRequestError(err.Error())
}

// categorizeURLError provides specific handling for url.Error types
func categorizeURLError(e *url.Error) string {
	if e.Timeout() {
		return hintTimeout
	}
	return categorizeError(e.Err)
}

// categorizeNetError provides specific handling for net.OpError types
func categorizeNetError(e *net.OpError) string {
	if e.Timeout() {
		return hintTimeout
	}
	if errno, ok := e.Err.(syscall.Errno); ok {
		if hint := categorizeErrno(errno); hint != "" {
			return hint
		}
	}
	return categorizeError(e.Err)
}

func categorizeErrno(errno syscall.Errno) string {
	switch errno {
	case syscall.ECONNREFUSED:
		return hintRefused
	case syscall.ECONNRESET:
		return "Connection reset by server - the service may have restarted, submit again"
	case syscall.ENETUNREACH:
		return "Network unreachable - check network connection and firewall settings"
	case syscall.EHOSTUNREACH:
		return "Host unreachable - check that the service is online"
	}
	return ""
}
