// Package businessflow contains the core business logic for link minting,
// redirect tracking, and analytics aggregation
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Entity lookups
	ErrLinkNotFound     = errors.New("link not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOfferNotFound    = errors.New("offer not found")

	// Link minting
	ErrCampaignEnded         = errors.New("campaign has ended")
	ErrOfferProductMismatch  = errors.New("offer does not belong to product")
	ErrShortCodeExhausted    = errors.New("could not allocate unique code")
	ErrDuplicateLink         = errors.New("link already exists")
	ErrOfferDuplicateListing = errors.New("offer duplicates another listing of the product")

	// Analytics
	ErrInvalidDateRange = errors.New("unknown date range")

	// Auth
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsLinkNotFound(err error) bool {
	return errors.Is(err, ErrLinkNotFound)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsProductNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}

func IsOfferNotFound(err error) bool {
	return errors.Is(err, ErrOfferNotFound)
}

func IsCampaignEnded(err error) bool {
	return errors.Is(err, ErrCampaignEnded)
}

func IsOfferProductMismatch(err error) bool {
	return errors.Is(err, ErrOfferProductMismatch)
}

func IsShortCodeExhausted(err error) bool {
	return errors.Is(err, ErrShortCodeExhausted)
}

func IsDuplicateLink(err error) bool {
	return errors.Is(err, ErrDuplicateLink)
}

func IsOfferDuplicateListing(err error) bool {
	return errors.Is(err, ErrOfferDuplicateListing)
}

func IsInvalidDateRange(err error) bool {
	return errors.Is(err, ErrInvalidDateRange)
}

func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsNotFound(err error) bool {
	return IsLinkNotFound(err) || IsCampaignNotFound(err) ||
		IsProductNotFound(err) || IsOfferNotFound(err)
}
