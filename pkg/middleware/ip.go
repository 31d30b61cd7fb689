package middleware

import (
	"context"
	"strings"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/Suhaibinator/SHook/pkg/hook"
	"github.com/Suhaibinator/SHook/pkg/request"
)

// IPSourceType defines the source for client IP addresses
type IPSourceType string

const (
	// IPSourceRemoteAddr uses the request's remoteAddr field
	IPSourceRemoteAddr IPSourceType = "remote_addr"

	// IPSourceXForwardedFor uses the X-Forwarded-For header
	IPSourceXForwardedFor IPSourceType = "x_forwarded_for"

	// IPSourceXRealIP uses the X-Real-IP header
	IPSourceXRealIP IPSourceType = "x_real_ip"

	// IPSourceCustomHeader uses a custom header specified in the configuration
	IPSourceCustomHeader IPSourceType = "custom_header"
)

// IPConfig defines configuration for IP extraction
type IPConfig struct {
	// Source specifies where to extract the client IP from
	Source IPSourceType

	// CustomHeader is the name of the custom header to use when Source is IPSourceCustomHeader
	CustomHeader string

	// TrustProxy determines whether to trust proxy headers like X-Forwarded-For
	// If false, remoteAddr will be used as a fallback for all sources
	TrustProxy bool
}

// DefaultIPConfig returns the default IP configuration
func DefaultIPConfig() *IPConfig {
	return &IPConfig{
		Source:     IPSourceXForwardedFor,
		TrustProxy: true,
	}
}

// ClientIPKey is the ctx.state key under which the client IP is stored
const ClientIPKey = "clientIp"

// ClientIP extracts the client IP stored in ctx.state by ClientIPMiddleware
func ClientIP(req *common.Request) string {
	return stateString(req, ClientIPKey)
}

// ClientIPMiddleware creates a callback that extracts the client IP from the
// request headers or remote address and stores it in ctx.state
func ClientIPMiddleware[S any](config *IPConfig) hook.BeforeFunc[S] {
	if config == nil {
		config = DefaultIPConfig()
	}

	return func(ctx context.Context, req *common.Request, caller S) error {
		return req.State().Set(ClientIPKey, extractClientIP(req, config))
	}
}

// extractClientIP extracts the client IP from the request based on the configuration
func extractClientIP(req *common.Request, config *IPConfig) string {
	var ip string

	switch config.Source {
	case IPSourceXForwardedFor:
		ip = extractIPFromXForwardedFor(req)
	case IPSourceXRealIP:
		ip = request.Header(req, "X-Real-IP")
	case IPSourceCustomHeader:
		ip = request.Header(req, config.CustomHeader)
	case IPSourceRemoteAddr:
		ip = remoteAddr(req)
	default:
		ip = extractIPFromXForwardedFor(req)
	}

	// If we don't trust proxy headers or couldn't extract an IP, fall back to remoteAddr
	if !config.TrustProxy || ip == "" {
		ip = remoteAddr(req)
	}

	return cleanIP(ip)
}

func remoteAddr(req *common.Request) string {
	v, _ := req.Fields().GetString(request.RemoteAddrKey)
	return v
}

// extractIPFromXForwardedFor extracts the client IP from the X-Forwarded-For header
// The header holds a comma-separated list of IPs, with the leftmost being the original client
func extractIPFromXForwardedFor(req *common.Request) string {
	xff := request.Header(req, "X-Forwarded-For")
	if xff == "" {
		return ""
	}

	ip, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(ip)
}

// cleanIP removes the port from an IP address if present
func cleanIP(ip string) string {
	// IPv6 addresses with ports are formatted as [IPv6]:port
	if strings.HasPrefix(ip, "[") {
		end := strings.LastIndex(ip, "]")
		if end > 0 {
			if end+1 < len(ip) && ip[end+1] == ':' {
				return ip[:end+1]
			}
			return ip
		}
	}

	// IPv6 without brackets has several colons and no port
	if strings.Count(ip, ":") > 1 {
		return ip
	}

	// IPv4 addresses with ports are formatted as IPv4:port
	if end := strings.LastIndex(ip, ":"); end > 0 {
		return ip[:end]
	}

	return ip
}
