package sales

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/felixonline247/opolo-cbt-app/internal"
)

type CreateSaleDTO struct {
	ClientName   string `json:"client_name"`
	Service      string `json:"service"`
	Amount       string `json:"amount"`
	PartnerShare string `json:"partner_share"`
	StaffID      int64  `json:"staff_id"`
	SoldAt       string `json:"sold_at"`
}

// Validate normalizes the payload. StaffID zero means "attribute to the
// creator"; SoldAt empty means "now".
func (d *CreateSaleDTO) Validate() (*Sale, error) {
	var verrs internal.ValidationErrors

	clientName := strings.TrimSpace(d.ClientName)
	if clientName == "" {
		verrs.Errors = append(verrs.Errors, internal.ValidationError{Field: "client_name", Message: "client name is required", Code: "required"})
	}

	service := strings.TrimSpace(d.Service)
	if service == "" {
		verrs.Errors = append(verrs.Errors, internal.ValidationError{Field: "service", Message: "service is required", Code: "required"})
	}

	amount, amountErr := decimal.NewFromString(strings.TrimSpace(d.Amount))
	if amountErr != nil || amount.IsNegative() {
		verrs.Errors = append(verrs.Errors, internal.ValidationError{Field: "amount", Message: "amount must be a non-negative decimal", Code: "invalid"})
	}

	partnerShare := decimal.Zero
	if strings.TrimSpace(d.PartnerShare) != "" {
		var shareErr error
		partnerShare, shareErr = decimal.NewFromString(strings.TrimSpace(d.PartnerShare))
		if shareErr != nil || partnerShare.IsNegative() {
			verrs.Errors = append(verrs.Errors, internal.ValidationError{Field: "partner_share", Message: "partner share must be a non-negative decimal", Code: "invalid"})
		}
	}
	if amountErr == nil && partnerShare.GreaterThan(amount) {
		verrs.Errors = append(verrs.Errors, internal.ValidationError{Field: "partner_share", Message: "partner share cannot exceed the sale amount", Code: "invalid"})
	}

	soldAt := time.Now().UTC()
	if strings.TrimSpace(d.SoldAt) != "" {
		var soldErr error
		soldAt, soldErr = time.Parse(time.RFC3339, strings.TrimSpace(d.SoldAt))
		if soldErr != nil {
			verrs.Errors = append(verrs.Errors, internal.ValidationError{Field: "sold_at", Message: "sold_at must be an RFC3339 timestamp", Code: "invalid"})
		}
	}

	if len(verrs.Errors) > 0 {
		return nil, internal.NewValidationError(verrs.Messages(), internal.ErrCodeValidationFailed).WithDetails(verrs)
	}

	return &Sale{
		ClientName:   clientName,
		Service:      service,
		Amount:       amount,
		PartnerShare: partnerShare,
		StaffID:      d.StaffID,
		SoldAt:       soldAt,
	}, nil
}

type UpdateSaleDTO struct {
	ClientName   *string `json:"client_name"`
	Service      *string `json:"service"`
	Amount       *string `json:"amount"`
	PartnerShare *string `json:"partner_share"`
}

// Apply copies the provided fields onto the sale. Attribution and the sold_at
// timestamp are deliberately not updatable.
func (d *UpdateSaleDTO) Apply(sale *Sale) error {
	if d.ClientName != nil {
		name := strings.TrimSpace(*d.ClientName)
		if name == "" {
			return internal.NewValidationError("client name cannot be empty", internal.ErrCodeValidationFailed)
		}
		sale.ClientName = name
	}

	if d.Service != nil {
		service := strings.TrimSpace(*d.Service)
		if service == "" {
			return internal.NewValidationError("service cannot be empty", internal.ErrCodeValidationFailed)
		}
		sale.Service = service
	}

	if d.Amount != nil {
		amount, err := decimal.NewFromString(strings.TrimSpace(*d.Amount))
		if err != nil || amount.IsNegative() {
			return internal.NewValidationError("amount must be a non-negative decimal", internal.ErrCodeInvalidAmount)
		}
		sale.Amount = amount
	}

	if d.PartnerShare != nil {
		share, err := decimal.NewFromString(strings.TrimSpace(*d.PartnerShare))
		if err != nil || share.IsNegative() {
			return internal.NewValidationError("partner share must be a non-negative decimal", internal.ErrCodeInvalidAmount)
		}
		sale.PartnerShare = share
	}

	if sale.PartnerShare.GreaterThan(sale.Amount) {
		return internal.NewValidationError("partner share cannot exceed the sale amount", internal.ErrCodeInvalidAmount)
	}

	return nil
}
