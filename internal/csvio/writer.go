package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/sheikh-saqib/payments-engine/internal/models"
)

var accountHeader = []string{"client", "available", "held", "total", "locked"}

// WriteAccounts renders one row per account, in the order given, after a header row
func WriteAccounts(dst io.Writer, accounts []models.Account) error {
	w := csv.NewWriter(dst)

	if err := w.Write(accountHeader); err != nil {
		return err
	}
	for _, a := range accounts {
		row := []string{
			strconv.FormatUint(uint64(a.ID), 10),
			a.Available.StringFixed(AmountPlaces),
			a.Held.StringFixed(AmountPlaces),
			a.Total.StringFixed(AmountPlaces),
			strconv.FormatBool(a.Frozen),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
