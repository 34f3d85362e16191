package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbolPrinter = message.NewPrinter(language.English)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// String formats the amount with two decimals prefixed by the currency symbol, e.g. "$9.99".
func (m Money) String() string {
	return Symbol(m.Currency) + m.Amount.StringFixed(2)
}

// Symbol returns the narrow CLDR symbol of a currency unit.
// Units without a symbol are prefixed with their ISO code and a space.
func Symbol(unit currency.Unit) string {
	symbol := symbolPrinter.Sprint(currency.NarrowSymbol(unit))
	if symbol == unit.String() {
		return symbol + " "
	}

	return symbol
}
