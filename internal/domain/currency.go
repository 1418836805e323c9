package domain

import "strings"

const DefaultCurrencySymbol = "$"

var currencySymbols = map[string]string{
	"BRL": "R$",
	"PEN": "S/",
	"USD": "$",
	"COP": "$",
	"MXN": "$",
	"ARS": "$",
	"CLP": "$",
	"EUR": "€",
}

// CurrencySymbol converte o código ISO da moeda da conta no símbolo exibido no painel.
// Códigos sem símbolo conhecido são exibidos como o próprio código seguido de espaço.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrencySymbol
	}
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code + " "
}
