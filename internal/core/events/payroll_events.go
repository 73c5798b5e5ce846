package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePayoutRecorded  = "payout.recorded"
	EventTypeStrategyChanged = "payroll.strategy_changed"
)

type PayoutRecordedEvent struct {
	BaseEvent
	PayoutID int64  `json:"payout_id"`
	StaffID  int64  `json:"staff_id"`
	Period   string `json:"period"`
	Amount   string `json:"amount"`
}

func NewPayoutRecordedEvent(payoutID, staffID int64, period, amount string) *PayoutRecordedEvent {
	return &PayoutRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePayoutRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payout_id": payoutID,
				"staff_id":  staffID,
				"period":    period,
				"amount":    amount,
			},
		},
		PayoutID: payoutID,
		StaffID:  staffID,
		Period:   period,
		Amount:   amount,
	}
}

type StrategyChangedEvent struct {
	BaseEvent
	StaffID int64  `json:"staff_id"`
	Kind    string `json:"kind"`
	Rate    string `json:"rate"`
}

func NewStrategyChangedEvent(staffID int64, kind, rate string) *StrategyChangedEvent {
	return &StrategyChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeStrategyChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"staff_id": staffID,
				"kind":     kind,
				"rate":     rate,
			},
		},
		StaffID: staffID,
		Kind:    kind,
		Rate:    rate,
	}
}
