package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Processor simulates a payment gateway. There is no real integration: a
// charge always succeeds after Delay unless the context is cancelled first.
type Processor struct {
	Delay time.Duration
}

func NewProcessor(delay time.Duration) *Processor {
	return &Processor{Delay: delay}
}

// Receipt is what the simulated gateway hands back for a settled charge.
type Receipt struct {
	Reference string    `json:"reference"`
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"`
	PaidAt    time.Time `json:"paid_at"`
}

func (p *Processor) Charge(ctx context.Context, amount float64, method string) (*Receipt, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", ErrInvalidAmount)
	}

	if p.Delay > 0 {
		t := time.NewTimer(p.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	return &Receipt{
		Reference: "PAY-" + strings.ToUpper(uuid.NewString()[:8]),
		Method:    method,
		Amount:    amount,
		PaidAt:    time.Now().UTC(),
	}, nil
}
