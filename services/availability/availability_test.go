package availability

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"havenstay/models"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(start, end string) DateRange {
	return NewDateRange(day(start), day(end))
}

func ptr(r DateRange) *DateRange { return &r }

var today = day("2030-03-01")

func TestOverlapsSymmetric(t *testing.T) {
	ranges := []DateRange{
		rng("2030-03-10", "2030-03-15"),
		rng("2030-03-15", "2030-03-18"),
		rng("2030-03-12", "2030-03-20"),
		rng("2030-03-01", "2030-03-31"),
		rng("2030-04-01", "2030-04-02"),
	}
	for _, a := range ranges {
		for _, b := range ranges {
			if a.Overlaps(b) != b.Overlaps(a) {
				t.Errorf("overlap not symmetric for %s and %s", a, b)
			}
		}
		if !a.Overlaps(a) {
			t.Errorf("valid range %s should overlap itself", a)
		}
	}
}

func TestOverlapsAdjacent(t *testing.T) {
	a := rng("2030-03-10", "2030-03-15")
	b := rng("2030-03-15", "2030-03-18")
	if a.Overlaps(b) || b.Overlaps(a) {
		t.Fatalf("back-to-back ranges %s and %s must not overlap", a, b)
	}
}

func TestNights(t *testing.T) {
	if n := rng("2030-03-10", "2030-03-15").Nights(); n != 5 {
		t.Fatalf("expected 5 nights, got %d", n)
	}
	// crosses a DST change in most northern zones; calendar days only
	if n := rng("2030-03-09", "2030-03-11").Nights(); n != 2 {
		t.Fatalf("expected 2 nights, got %d", n)
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("", "2030-03-15")
	if err != nil || r != nil {
		t.Fatalf("expected nil range for missing start, got %v, %v", r, err)
	}
	if _, err := ParseDateRange("2030-13-01", "2030-03-15"); err == nil {
		t.Fatal("expected parse error for bad month")
	}
	r, err = ParseDateRange("2030-03-10", "2030-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.String() != "[2030-03-10, 2030-03-15)" {
		t.Fatalf("unexpected range %s", r)
	}
}

func TestCheck(t *testing.T) {
	existing := []DateRange{rng("2030-03-10", "2030-03-15")}

	tests := []struct {
		name      string
		candidate *DateRange
		status    Status
		conflicts []DateRange
		wantErr   bool
	}{
		{name: "incomplete", candidate: nil, status: StatusIncomplete},
		{name: "back to back after", candidate: ptr(rng("2030-03-15", "2030-03-18")), status: StatusAvailable},
		{name: "back to back before", candidate: ptr(rng("2030-03-07", "2030-03-10")), status: StatusAvailable},
		{name: "partial overlap", candidate: ptr(rng("2030-03-12", "2030-03-20")), status: StatusUnavailable, conflicts: existing},
		{name: "contained", candidate: ptr(rng("2030-03-11", "2030-03-12")), status: StatusUnavailable, conflicts: existing},
		{name: "zero width", candidate: ptr(rng("2030-03-12", "2030-03-12")), wantErr: true},
		{name: "inverted", candidate: ptr(rng("2030-03-20", "2030-03-12")), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check(tt.candidate, existing)
			if tt.wantErr {
				var ire *InvalidRangeError
				if !errors.As(err, &ire) {
					t.Fatalf("expected InvalidRangeError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Status != tt.status {
				t.Fatalf("expected %s, got %s", tt.status, got.Status)
			}
			if !reflect.DeepEqual(got.Conflicts, tt.conflicts) {
				t.Fatalf("expected conflicts %v, got %v", tt.conflicts, got.Conflicts)
			}
		})
	}
}

func TestBlockingRanges(t *testing.T) {
	reservations := []Reservation{
		{Range: rng("2030-03-01", "2030-03-03"), Status: models.BookingPending},
		{Range: rng("2030-03-04", "2030-03-06"), Status: models.BookingConfirmed},
		{Range: rng("2030-03-07", "2030-03-09"), Status: models.BookingCancelled},
		{Range: rng("2030-03-10", "2030-03-12"), Status: models.BookingCompleted},
	}
	got := BlockingRanges(reservations)
	want := []DateRange{rng("2030-03-01", "2030-03-03"), rng("2030-03-04", "2030-03-06")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestQuote(t *testing.T) {
	calc := NewCalculator(decimal.NewFromInt(85))

	tests := []struct {
		rate   string
		nights int
		base   string
		grand  string
	}{
		{rate: "120.00", nights: 5, base: "600.00", grand: "685.00"},
		{rate: "120.00", nights: 0, base: "0.00", grand: "85.00"},
		{rate: "0", nights: 3, base: "0.00", grand: "85.00"},
		{rate: "99.99", nights: 3, base: "299.97", grand: "384.97"},
		{rate: "33.333", nights: 3, base: "100.00", grand: "185.00"},
	}
	for _, tt := range tests {
		q, err := calc.Quote(decimal.RequireFromString(tt.rate), tt.nights)
		if err != nil {
			t.Fatalf("quote %s x %d: %v", tt.rate, tt.nights, err)
		}
		view := q.Display("usd")
		if view.BaseTotal != tt.base || view.GrandTotal != tt.grand {
			t.Errorf("quote %s x %d: expected %s/%s, got %s/%s", tt.rate, tt.nights, tt.base, tt.grand, view.BaseTotal, view.GrandTotal)
		}
		want := decimal.RequireFromString(tt.rate).Mul(decimal.NewFromInt(int64(tt.nights))).Add(calc.CleaningFee)
		if !q.GrandTotal.Equal(want) {
			t.Errorf("grand total %s is not rate*nights+fee %s", q.GrandTotal, want)
		}
	}
}

func TestQuoteRejectsNegativeInputs(t *testing.T) {
	calc := NewCalculator(decimal.NewFromInt(85))
	if _, err := calc.Quote(decimal.NewFromInt(-1), 2); !errors.Is(err, ErrNegativeRate) {
		t.Fatalf("expected ErrNegativeRate, got %v", err)
	}
	var ire *InvalidRangeError
	if _, err := calc.Quote(decimal.NewFromInt(100), -1); !errors.As(err, &ire) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
	if _, err := calc.QuoteRange(decimal.NewFromInt(100), ptr(rng("2030-03-05", "2030-03-01"))); !errors.As(err, &ire) {
		t.Fatalf("expected InvalidRangeError for inverted range, got %v", err)
	}
	q, err := calc.QuoteRange(decimal.NewFromInt(100), nil)
	if err != nil || q.Nights != 0 || !q.GrandTotal.Equal(calc.CleaningFee) {
		t.Fatalf("nil range should quote zero nights, got %+v, %v", q, err)
	}
}

func TestValidateGuests(t *testing.T) {
	var ige *InvalidGuestCountError
	if err := ValidateGuests(0, 4); !errors.As(err, &ige) {
		t.Fatalf("expected InvalidGuestCountError, got %v", err)
	}
	var cee *CapacityExceededError
	if err := ValidateGuests(5, 4); !errors.As(err, &cee) {
		t.Fatalf("expected CapacityExceededError, got %v", err)
	}
	if err := ValidateGuests(4, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCanSubmitScenarios(t *testing.T) {
	property := PropertyFacts{PricePerNight: decimal.NewFromInt(120), MaxGuests: 4}
	confirmed := []Reservation{{Range: rng("2030-03-10", "2030-03-15"), Status: models.BookingConfirmed}}
	cancelled := []Reservation{{Range: rng("2030-03-10", "2030-03-15"), Status: models.BookingCancelled}}

	tests := []struct {
		name     string
		req      BookingRequest
		existing []Reservation
		code     string
	}{
		{
			name:     "A back to back is available",
			req:      BookingRequest{Range: ptr(rng("2030-03-15", "2030-03-18")), GuestCount: 2},
			existing: confirmed,
		},
		{
			name:     "B overlap conflicts",
			req:      BookingRequest{Range: ptr(rng("2030-03-12", "2030-03-20")), GuestCount: 2},
			existing: confirmed,
			code:     "date_conflict",
		},
		{
			name:     "C capacity short circuits overlap",
			req:      BookingRequest{Range: ptr(rng("2030-03-12", "2030-03-20")), GuestCount: 5},
			existing: confirmed,
			code:     "capacity_exceeded",
		},
		{
			name:     "E past range ignores overlap",
			req:      BookingRequest{Range: ptr(rng("2030-02-10", "2030-02-15")), GuestCount: 5},
			existing: []Reservation{{Range: rng("2030-02-10", "2030-02-15"), Status: models.BookingConfirmed}},
			code:     "past_date",
		},
		{
			name:     "F cancelled never blocks",
			req:      BookingRequest{Range: ptr(rng("2030-03-10", "2030-03-15")), GuestCount: 1},
			existing: cancelled,
		},
		{
			name: "incomplete range first",
			req:  BookingRequest{GuestCount: 0},
			code: "incomplete_range",
		},
		{
			name: "invalid range before capacity",
			req:  BookingRequest{Range: ptr(rng("2030-03-15", "2030-03-15")), GuestCount: 9},
			code: "invalid_range",
		},
		{
			name: "zero guests",
			req:  BookingRequest{Range: ptr(rng("2030-03-15", "2030-03-16")), GuestCount: 0},
			code: "invalid_guest_count",
		},
		{
			name: "starting today is allowed",
			req:  BookingRequest{Range: ptr(rng("2030-03-01", "2030-03-02")), GuestCount: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanSubmit(tt.req, tt.existing, property, today)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("expected submission to pass, got %v", err)
				}
				return
			}
			re := AsRuleError(err)
			if re == nil {
				t.Fatalf("expected rule error %s, got %v", tt.code, err)
			}
			if re.Code() != tt.code {
				t.Fatalf("expected %s, got %s (%v)", tt.code, re.Code(), err)
			}
		})
	}
}

func TestCanSubmitReportsConflictingRange(t *testing.T) {
	existing := []Reservation{
		{Range: rng("2030-03-10", "2030-03-15"), Status: models.BookingConfirmed},
		{Range: rng("2030-03-25", "2030-03-28"), Status: models.BookingPending},
	}
	req := BookingRequest{Range: ptr(rng("2030-03-12", "2030-03-20")), GuestCount: 2}
	err := CanSubmit(req, existing, PropertyFacts{MaxGuests: 4}, today)

	var dce *DateConflictError
	if !errors.As(err, &dce) {
		t.Fatalf("expected DateConflictError, got %v", err)
	}
	if len(dce.Conflicts) != 1 || dce.Conflicts[0] != rng("2030-03-10", "2030-03-15") {
		t.Fatalf("unexpected conflicts %v", dce.Conflicts)
	}
}

func TestCanSubmitIdempotent(t *testing.T) {
	existing := []Reservation{{Range: rng("2030-03-10", "2030-03-15"), Status: models.BookingConfirmed}}
	req := BookingRequest{Range: ptr(rng("2030-03-12", "2030-03-20")), GuestCount: 2}
	property := PropertyFacts{MaxGuests: 4}

	first := CanSubmit(req, existing, property, today)
	second := CanSubmit(req, existing, property, today)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ: %v vs %v", first, second)
	}
	if len(existing) != 1 || existing[0].Status != models.BookingConfirmed {
		t.Fatal("input reservations were mutated")
	}
}

func TestTodayUsesViewerLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	now := time.Date(2030, 3, 1, 20, 0, 0, 0, time.UTC)
	if got := Today(now, loc); !got.Equal(day("2030-03-02")) {
		t.Fatalf("expected 2030-03-02, got %s", got.Format(DateLayout))
	}
	if got := Today(now, nil); !got.Equal(day("2030-03-01")) {
		t.Fatalf("expected 2030-03-01, got %s", got.Format(DateLayout))
	}
}
