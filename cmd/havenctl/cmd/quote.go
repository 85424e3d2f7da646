package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"havenstay/config"
	"havenstay/services/availability"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newQuoteCmd() *cobra.Command {
	var rate, fee, checkIn, checkOut, currency string
	var guests, maxGuests int

	c := &cobra.Command{
		Use:   "quote",
		Short: "Price a stay offline with the booking engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			nightly, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid --rate: %w", err)
			}
			cleaning := config.CleaningFee()
			if fee != "" {
				if cleaning, err = decimal.NewFromString(fee); err != nil {
					return fmt.Errorf("invalid --fee: %w", err)
				}
			}

			r, err := availability.ParseDateRange(checkIn, checkOut)
			if err != nil {
				return err
			}
			today := availability.Today(time.Now(), config.Location())
			if r != nil {
				if err := availability.ValidateRange(r, today); err != nil {
					return err
				}
			}
			if maxGuests > 0 {
				if err := availability.ValidateGuests(guests, maxGuests); err != nil {
					return err
				}
			}

			quote, err := availability.NewCalculator(cleaning).QuoteRange(nightly, r)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(quote.Display(currency))
		},
	}

	c.Flags().StringVar(&rate, "rate", "", "nightly rate, e.g. 120.00")
	c.Flags().StringVar(&fee, "fee", "", "cleaning fee (defaults to CLEANING_FEE)")
	c.Flags().StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	c.Flags().StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	c.Flags().StringVar(&currency, "currency", "usd", "currency code shown in the quote")
	c.Flags().IntVar(&guests, "guests", 1, "number of guests")
	c.Flags().IntVar(&maxGuests, "max-guests", 0, "listing capacity; 0 skips the check")
	_ = c.MarkFlagRequired("rate")
	return c
}
