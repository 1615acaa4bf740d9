// Package normalize implements the Batch Normalizer (§4.G) and the
// classify_record library entry point (§6): it orchestrates the Unit
// Parser, Signal Resolver, Domain Router, Auto-Target Selector, and
// Conversion Engine across a batch of records.
package normalize

import (
	"github.com/aristath/indicator-normalize/internal/domain"
	"github.com/aristath/indicator-normalize/internal/router"
	"github.com/aristath/indicator-normalize/internal/signals"
	"github.com/aristath/indicator-normalize/internal/unitparser"
)

// Classified is the per-record output of classify_record (§6): the
// domain tag, resolved signals, and the raw parsed unit used to reach
// them.
type Classified struct {
	Domain     domain.Domain
	Signals    domain.ResolvedSignals
	ParsedUnit domain.ParsedUnit
}

// ClassifyRecord runs the Unit Parser, Domain Router, and Signal
// Resolver on a single record (components A, C, B in that order — the
// router only needs the parsed unit and raw record fields, so it can
// run before the resolver even though §4 numbers it afterwards; see
// the internal/normalize entry in DESIGN.md).
func ClassifyRecord(rec domain.InputRecord, cfg domain.Config) (Classified, error) {
	parsed, err := unitparser.Parse(rec.Unit)
	if err != nil {
		return Classified{}, err
	}

	domainTag := router.Route(rec, parsed)

	sig, err := signals.Resolve(rec, parsed, domainTag, cfg)
	if err != nil {
		return Classified{}, err
	}

	return Classified{Domain: domainTag, Signals: sig, ParsedUnit: parsed}, nil
}
