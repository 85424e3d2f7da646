package availability

import (
	"github.com/shopspring/decimal"
)

// PriceQuote is the cost breakdown of a stay. Values are kept at full
// precision; use Display for two-digit rounding.
type PriceQuote struct {
	Nights      int             `json:"nights"`
	NightlyRate decimal.Decimal `json:"nightlyRate"`
	BaseTotal   decimal.Decimal `json:"baseTotal"`
	CleaningFee decimal.Decimal `json:"cleaningFee"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
}

// QuoteView is a PriceQuote rounded for display.
type QuoteView struct {
	Nights      int    `json:"nights"`
	NightlyRate string `json:"nightlyRate"`
	BaseTotal   string `json:"baseTotal"`
	CleaningFee string `json:"cleaningFee"`
	GrandTotal  string `json:"grandTotal"`
	Currency    string `json:"currency,omitempty"`
}

func (q PriceQuote) Display(currency string) QuoteView {
	return QuoteView{
		Nights:      q.Nights,
		NightlyRate: q.NightlyRate.StringFixed(2),
		BaseTotal:   q.BaseTotal.StringFixed(2),
		CleaningFee: q.CleaningFee.StringFixed(2),
		GrandTotal:  q.GrandTotal.StringFixed(2),
		Currency:    currency,
	}
}

// Calculator prices stays with a fixed cleaning fee.
type Calculator struct {
	CleaningFee decimal.Decimal
}

func NewCalculator(cleaningFee decimal.Decimal) Calculator {
	return Calculator{CleaningFee: cleaningFee}
}

// Quote computes rate*nights + fee. Zero nights is allowed and represents
// "no dates selected yet".
func (c Calculator) Quote(nightlyRate decimal.Decimal, nights int) (PriceQuote, error) {
	if nights < 0 {
		return PriceQuote{}, &InvalidRangeError{}
	}
	if nightlyRate.IsNegative() {
		return PriceQuote{}, ErrNegativeRate
	}
	base := nightlyRate.Mul(decimal.NewFromInt(int64(nights)))
	return PriceQuote{
		Nights:      nights,
		NightlyRate: nightlyRate,
		BaseTotal:   base,
		CleaningFee: c.CleaningFee,
		GrandTotal:  base.Add(c.CleaningFee),
	}, nil
}

// QuoteRange prices a range; a nil range quotes zero nights.
func (c Calculator) QuoteRange(nightlyRate decimal.Decimal, r *DateRange) (PriceQuote, error) {
	if r == nil {
		return c.Quote(nightlyRate, 0)
	}
	if r.Nights() < 0 {
		return PriceQuote{}, &InvalidRangeError{Range: *r}
	}
	return c.Quote(nightlyRate, r.Nights())
}
