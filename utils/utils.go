// Package utils provides utility functions for the application.
package utils

import "strings"

func ToPtr[T any](v T) *T {
	return &v
}

func IsTrue(b *bool) bool {
	return b != nil && *b
}

// EmptyToNil returns nil for blank strings so optional click metadata is
// stored as NULL rather than "".
func EmptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ClientIP resolves the originating client address: the first entry of the
// X-Forwarded-For header when present, otherwise the socket remote address.
func ClientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		if i := strings.IndexByte(forwardedFor, ','); i >= 0 {
			forwardedFor = forwardedFor[:i]
		}
		if ip := strings.TrimSpace(forwardedFor); ip != "" {
			return ip
		}
	}
	return remoteAddr
}
