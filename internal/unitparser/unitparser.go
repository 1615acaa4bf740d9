// Package unitparser implements the Unit Parser (§4.A): a rule-based,
// case-insensitive, whitespace-tolerant tokenizer that turns a free-text
// unit string into a domain.ParsedUnit.
//
// The parser is deliberately table-driven rather than a hand-rolled
// state machine, following the same decision-table style the upstream
// scoring engine uses for its weighted rule sets — a new scale word or
// currency symbol is a new table row, not a new branch.
package unitparser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// scaleRule pairs a matching pattern with the scale it signals; the
// scale's Exponent() is what the "most specific" tie-break in §4.A
// compares.
type scaleRule struct {
	pattern *regexp.Regexp
	scale   domain.Scale
}

var scaleRules = []scaleRule{
	{regexp.MustCompile(`(?i)\b(hundred\s+million|億)\b`), domain.ScaleHundredMillions},
	{regexp.MustCompile(`(?i)\bcrore(s)?\b`), domain.ScaleCrores},
	{regexp.MustCompile(`(?i)\b(trillion(s)?|\bT\b)\b`), domain.ScaleTrillions},
	{regexp.MustCompile(`(?i)\b(billion(s)?|bil|\bB\b)\b`), domain.ScaleBillions},
	{regexp.MustCompile(`(?i)\b(million(s)?|mil|\bM\b)\b`), domain.ScaleMillions},
	{regexp.MustCompile(`(?i)\b(thousand(s)?|ths|\bK\b)\b`), domain.ScaleThousands},
}

// hundredRe matches the bare "hundred" => 10^2 rule, which has no
// dedicated Scale constant since every other scale word in the grammar
// is >= 10^3; the ParsingConfidence/MatchedPattern bookkeeping records
// it separately in Parse.
var hundredRe = regexp.MustCompile(`(?i)\bhundred\b`)
var hundredMillionRe = regexp.MustCompile(`(?i)hundred\s+million`)

var currencyISORe = regexp.MustCompile(`(?i)\b([A-Z]{3})\b`)

var currencySymbols = map[rune]string{
	'€': "EUR",
	'£': "GBP",
	'¥': "JPY",
	'$': "USD",
}

var lcuRe = regexp.MustCompile(`(?i)\b(national currency|local currency|lcu)\b`)
var pppRe = regexp.MustCompile(`(?i)\b(current international dollar|ppp)\b`)

type timeRule struct {
	pattern *regexp.Regexp
	basis   domain.TimeBasis
}

var timeRules = []timeRule{
	{regexp.MustCompile(`(?i)(per\s+hour|/hr|\bhr\b)`), domain.TimeHour},
	{regexp.MustCompile(`(?i)(per\s+day|/day|/d\b)`), domain.TimeDay},
	{regexp.MustCompile(`(?i)(per\s+week|/wk)`), domain.TimeWeek},
	{regexp.MustCompile(`(?i)(per\s+month|/mo)`), domain.TimeMonth},
	{regexp.MustCompile(`(?i)(per\s+quarter|/qtr)`), domain.TimeQuarter},
	{regexp.MustCompile(`(?i)(per\s+year|per\s+annum|/yr)`), domain.TimeYear},
}

// growthRateRe matches informational growth-rate suffixes that are NOT
// a flow time basis (§4.A): YoY, QoQ, MoM.
var growthRateRe = regexp.MustCompile(`(?i)\b(yoy|qoq|mom)\b`)

var percentageRe = regexp.MustCompile(`(?i)(%|percent(age)?|\bpp\b|basis\s+points|\bbps\b)`)
var indexRe = regexp.MustCompile(`(?i)\b(index|points|pts)\b`)
var ratioRe = regexp.MustCompile(`(?i)\b(ratio|times)\b`)
var rateRe = regexp.MustCompile(`(?i)\bper\s+(1000|100|one\s+million)\b`)
var physicalRe = regexp.MustCompile(`(?i)\b(years?|hours?|kg|celsius|mm|doses|tonnes?|barrels?|bbl|gwh|mwh|tcf|bcf|\bkt\b|\bmt\b)\b`)
var countRe = regexp.MustCompile(`(?i)\b(units?|persons?|households?|companies|vehicles?)\b`)

// compositePhysicalRe matches a currency-per-physical-unit composite
// price such as "USD/barrel", "EUR/MWh", "ZAR/SQ. METRE" (§4.A).
var compositePhysicalRe = regexp.MustCompile(`(?i)\b([A-Z]{3})\s*/\s*[A-Za-z. ]+`)

// Parse tokenizes a free-text unit string into a ParsedUnit.
//
// Returns domain.ErrMalformedUnit only when unit contains unparseable
// binary/control characters; every other input produces a best-effort
// parse (§4.A).
func Parse(unit string) (domain.ParsedUnit, error) {
	if containsControlChars(unit) {
		return domain.ParsedUnit{}, domain.NewError(domain.ErrMalformedUnit, "unit string contains control characters")
	}

	trimmed := strings.TrimSpace(unit)
	if trimmed == "" {
		return domain.ParsedUnit{
			ScaleToken:        domain.ScaleOnes,
			TimeToken:         domain.TimeNone,
			UnitTypeHint:      domain.HintUnknown,
			MatchedPattern:    "empty",
			ParsingConfidence: 0.3,
		}, nil
	}

	p := domain.ParsedUnit{
		ScaleToken: domain.ScaleOnes,
		TimeToken:  domain.TimeNone,
	}
	confidence := 1.0
	var matched []string

	// Scale: the most specific (largest exponent) explicit token wins.
	scaleFound := false
	bestExp := -1
	for _, rule := range scaleRules {
		if rule.pattern.MatchString(trimmed) {
			exp := rule.scale.Exponent()
			if exp > bestExp {
				bestExp = exp
				p.ScaleToken = rule.scale
				scaleFound = true
				matched = append(matched, "scale:"+string(rule.scale))
			}
		}
	}
	// Bare "hundred" (not "hundred million") is 10^2; there is no named
	// Scale constant for it in the grammar above 10^3, so it is recorded
	// via ScaleToken=ones with a matched_pattern note and left for the
	// signal resolver's structured `scale` field to take precedence if
	// present.
	if !scaleFound && hundredRe.MatchString(trimmed) && !hundredMillionRe.MatchString(trimmed) {
		matched = append(matched, "scale:hundred")
		scaleFound = true
	}

	// Currency: ISO code or symbol; sentinel phrases take priority since
	// they are unambiguous multi-word matches.
	currencyFound := false
	switch {
	case lcuRe.MatchString(trimmed):
		p.CurrencyToken = domain.CurrencyLCU
		currencyFound = true
		matched = append(matched, "currency:lcu")
	case pppRe.MatchString(trimmed):
		p.CurrencyToken = domain.CurrencyPPPIntl
		currencyFound = true
		matched = append(matched, "currency:ppp")
	default:
		for _, r := range trimmed {
			if code, ok := currencySymbols[r]; ok {
				p.CurrencyToken = code
				currencyFound = true
				matched = append(matched, "currency:symbol")
				break
			}
		}
		if !currencyFound {
			if m := currencyISORe.FindStringSubmatch(trimmed); m != nil {
				p.CurrencyToken = strings.ToUpper(m[1])
				currencyFound = true
				matched = append(matched, "currency:iso")
			}
		}
	}

	// Time token: informational only for growth-rate suffixes.
	if !growthRateRe.MatchString(trimmed) {
		for _, rule := range timeRules {
			if rule.pattern.MatchString(trimmed) {
				p.TimeToken = rule.basis
				matched = append(matched, "time:"+string(rule.basis))
				break
			}
		}
	} else {
		matched = append(matched, "time:growth-rate-suffix-ignored")
	}

	// Type hint, in the precedence order given by §4.A.
	hintFound := false
	conflicting := false
	switch {
	case percentageRe.MatchString(trimmed):
		p.UnitTypeHint = domain.HintPercentage
		hintFound = true
	case indexRe.MatchString(trimmed):
		p.UnitTypeHint = domain.HintIndex
		hintFound = true
	case ratioRe.MatchString(trimmed):
		p.UnitTypeHint = domain.HintRatio
		hintFound = true
	case rateRe.MatchString(trimmed):
		p.UnitTypeHint = domain.HintRate
		hintFound = true
	case physicalRe.MatchString(trimmed):
		p.UnitTypeHint = domain.HintPhysical
		hintFound = true
	case countRe.MatchString(trimmed):
		p.UnitTypeHint = domain.HintCount
		hintFound = true
	}

	// Composite physical price: "USD/barrel" etc. carries both a
	// currency token and a ratio hint.
	if m := compositePhysicalRe.FindStringSubmatch(trimmed); m != nil {
		p.CurrencyToken = strings.ToUpper(m[1])
		currencyFound = true
		if hintFound && p.UnitTypeHint != domain.HintRatio {
			conflicting = true
		}
		p.UnitTypeHint = domain.HintRatio
		hintFound = true
		matched = append(matched, "composite-physical-price")
	}

	if currencyFound && !hintFound {
		p.UnitTypeHint = domain.HintCurrency
		hintFound = true
	}
	if !hintFound {
		p.UnitTypeHint = domain.HintUnknown
	}

	// Ambiguity: decrement confidence by 0.1 for each of (a) both scale
	// and type hint absent, (b) conflicting type hints.
	if !scaleFound && !hintFound {
		confidence -= 0.1
	}
	if conflicting {
		confidence -= 0.1
	}
	if confidence < 0 {
		confidence = 0
	}

	p.MatchedPattern = strings.Join(matched, ",")
	if p.MatchedPattern == "" {
		p.MatchedPattern = "none"
	}
	p.ParsingConfidence = confidence
	return p, nil
}

func containsControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
