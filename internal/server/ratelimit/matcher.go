package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint resolves the limit that applies to a request. Exact
// path+method matches win over prefix rules, and the first prefix rule in
// config order wins among prefixes. Returns nil when only the default
// limit applies. GET /health always resolves to an unlimited config, so a
// misbehaving client cannot lock out liveness probes.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == http.MethodGet {
		return &EndpointConfig{}
	}

	var prefixRule *EndpointConfig
	for i := range configs {
		rule := &configs[i]
		if rule.Method != method {
			continue
		}
		if rule.Path == path {
			return rule
		}
		if prefixRule == nil && strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			prefixRule = rule
		}
	}
	return prefixRule
}
