// Package classify derives trade direction and actor category from the raw
// transaction and role text a provider supplies. Everything here is pure:
// no I/O, no state across calls.
package classify

import (
	"strings"

	"insider-flow/internal/types"
)

// Form 4 transaction codes. A structured code always wins over free text.
var (
	sellCodes = map[string]bool{
		"S": true, // open-market or private sale
		"D": true, // disposition to the issuer
		"F": true, // tax-withholding disposition
	}
	buyCodes = map[string]bool{
		"P": true, // open-market or private purchase
		"A": true, // grant or award
		"M": true, // option exercise
		"C": true, // conversion of derivative security
		"X": true, // exercise of in-the-money derivative
	}
)

var (
	sellTokens = []string{"sell", "sale", "s -"}
	buyTokens  = []string{"buy", "purchase", "acq"}

	politicalTokens = []string{
		"senator",
		"senate",
		"representative",
		"congress",
		"parliament",
		"house of",
		" mp ",
	}
	officerTokens = []string{
		"ceo",
		"cfo",
		"coo",
		"chief",
		"officer",
		"director",
		"president",
		"chairman",
		"vp",
		"vice president",
		"owner",
		"10%",
	}
)

// Classify resolves trade direction and actor category. Direction resolution
// order: structured code first, then free-text token search, otherwise
// unknown. Ambiguous transactions are reported as unknown rather than
// defaulted to a direction.
func Classify(code, txnText, roleText string) (types.TradeType, types.ActorType) {
	return TradeDirection(code, txnText), Actor(roleText)
}

// TradeDirection maps a transaction code or free-text description to a
// trade type.
func TradeDirection(code, txnText string) types.TradeType {
	if c := strings.ToUpper(strings.TrimSpace(code)); c != "" {
		switch {
		case sellCodes[c]:
			return types.TradeTypeSell
		case buyCodes[c]:
			return types.TradeTypeBuy
		}
	}

	text := strings.ToLower(txnText)
	if text != "" {
		if containsAny(text, sellTokens) {
			return types.TradeTypeSell
		}
		if containsAny(text, buyTokens) {
			return types.TradeTypeBuy
		}
	}

	return types.TradeTypeUnknown
}

// Actor categorizes the trading party from its role or relationship text.
// Unrecognized roles come back unknown; the caller keeps the original text
// for display.
func Actor(roleText string) types.ActorType {
	role := " " + strings.ToLower(roleText) + " "
	if containsAny(role, politicalTokens) {
		return types.ActorTypePolitician
	}
	if containsAny(role, officerTokens) {
		return types.ActorTypeInsider
	}
	return types.ActorTypeUnknown
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
