package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one recorded transaction. Attribution is by staff id, captured at
// creation and never rewritten, so later staff renames cannot move revenue
// between people.
type Sale struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	ClientName   string          `json:"client_name" gorm:"column:client_name;not null"`
	Service      string          `json:"service" gorm:"column:service;not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"column:amount;type:numeric(14,2);not null"`
	PartnerShare decimal.Decimal `json:"partner_share" gorm:"column:partner_share;type:numeric(14,2);default:0"`
	StaffID      int64           `json:"staff_id" gorm:"column:staff_id;not null;index"`
	SoldAt       time.Time       `json:"sold_at" gorm:"column:sold_at;not null;index"`
	CreatedAt    time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Sale) TableName() string {
	return "sales"
}

// Net is the business's share after the partner institution's cut.
func (s *Sale) Net() decimal.Decimal {
	return s.Amount.Sub(s.PartnerShare)
}
