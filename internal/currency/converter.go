package currency

import (
	"context"
	"errors"
	"fmt"
)

// ErrRateUnavailable signals that a conversion could not be performed and the
// original amount was returned unchanged. Callers surface a warning and
// proceed with the unconverted value.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// RateSource supplies exchange rates relative to the requested base currency,
// keyed by currency code.
type RateSource interface {
	Rates(ctx context.Context, base string) (map[string]float64, error)
}

// Converter converts amounts between currencies through a common rate-table
// base. On any lookup failure it fails open: the original amount comes back
// together with ErrRateUnavailable.
type Converter struct {
	source RateSource
	// tableBase is the currency the rate table is requested against; both
	// endpoints of a conversion are normalized through it.
	tableBase string
}

// NewConverter creates a converter that pulls rate tables expressed relative
// to tableBase from the given source.
func NewConverter(source RateSource, tableBase string) *Converter {
	return &Converter{source: source, tableBase: tableBase}
}

// Convert converts amount from one currency to another. Identity when the
// two currencies match, with no rate lookup at all. Rates are expressed
// per unit of the table base, so the amount is first normalized into the
// base and then into the target: result = amount / rate[from] * rate[to].
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}

	rates, err := c.source.Rates(ctx, c.tableBase)
	if err != nil {
		return amount, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}

	fromRate, ok := rates[from]
	if !ok || fromRate == 0 {
		return amount, fmt.Errorf("%w: no rate for %s", ErrRateUnavailable, from)
	}
	toRate, ok := rates[to]
	if !ok {
		return amount, fmt.Errorf("%w: no rate for %s", ErrRateUnavailable, to)
	}

	return amount / fromRate * toRate, nil
}
