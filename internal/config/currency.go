package config

// Currency pairs an ISO code with its display symbol.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// Currencies lists the choices the setup surfaces offer. Any other code
// can still be written to the config file by hand.
var Currencies = []Currency{
	{"USD", "$", "US Dollar"},
	{"EUR", "€", "Euro"},
	{"GBP", "£", "British Pound"},
	{"JPY", "¥", "Japanese Yen"},
	{"CAD", "$", "Canadian Dollar"},
	{"AUD", "$", "Australian Dollar"},
	{"INR", "₹", "Indian Rupee"},
}

// SymbolFor returns the display symbol for a currency code, defaulting
// to the dollar sign for codes not in the list.
func SymbolFor(code string) string {
	for _, c := range Currencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return "$"
}
