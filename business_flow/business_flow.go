// Package businessflow contains the core business logic for link minting,
// redirect tracking, and analytics aggregation
package businessflow

// ClickMetadata carries the click-time request context recorded alongside a
// durable click row. All fields are optional; blank values are stored as NULL.
type ClickMetadata struct {
	IPAddress string `json:"ip_address,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// NewClickMetadata creates a ClickMetadata from raw header values
func NewClickMetadata(ipAddress, referrer, userAgent string) *ClickMetadata {
	return &ClickMetadata{
		IPAddress: ipAddress,
		Referrer:  referrer,
		UserAgent: userAgent,
	}
}
