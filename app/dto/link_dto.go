package dto

import "time"

// CreateLinkRequest mints a tracked short link for an offer inside a campaign
type CreateLinkRequest struct {
	ProductID  uint `json:"product_id" validate:"required,gt=0"`
	CampaignID uint `json:"campaign_id" validate:"required,gt=0"`
	OfferID    uint `json:"offer_id" validate:"required,gt=0"`
}

// LinkDTO is the minted link as returned to the operator
type LinkDTO struct {
	ID         uint      `json:"id"`
	UUID       string    `json:"uuid"`
	ShortCode  string    `json:"short_code"`
	ShortURL   string    `json:"short_url"`
	ProductID  uint      `json:"product_id"`
	CampaignID uint      `json:"campaign_id"`
	OfferID    uint      `json:"offer_id"`
	TargetURL  string    `json:"target_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateLinkResponse answers POST /api/links
type CreateLinkResponse struct {
	Link LinkDTO `json:"link"`
}
