package domain

// SourceKind records which input won a conflict-resolution or
// target-selection decision. The same enum is reused by the Signal
// Resolver (§4.B: unit | structured | default) and the Auto-Target
// Selector (§4.E: auto | fallback | explicit).
type SourceKind string

const (
	SourceUnit        SourceKind = "unit"
	SourceStructured  SourceKind = "structured"
	SourceDefault     SourceKind = "default"
	SourceAuto        SourceKind = "auto"
	SourceFallback    SourceKind = "fallback"
	SourceExplicit    SourceKind = "explicit"
)

// Resolved pairs a value with the source that produced it. Every
// canonical signal (currency, scale, time) and every batch target
// carries one of these so the explain record can report provenance
// without four near-identical ad hoc structs.
type Resolved[T any] struct {
	Value  T          `json:"value"`
	Source SourceKind `json:"source"`
}

// ResolvedSignals is the output of the Signal Resolver (§4.B): the
// canonical currency/scale/time for a record, plus the cumulative flag
// and any conflict notes raised along the way.
type ResolvedSignals struct {
	Currency     Resolved[string]    `json:"currency"`
	Scale        Resolved[Scale]     `json:"scale"`
	Time         Resolved[TimeBasis] `json:"time"`
	IsCumulative bool                `json:"is_cumulative"`
	Notes        []string            `json:"notes,omitempty"`
}

// Targets is the frozen batch-level currency/magnitude/time selection
// produced once by the Auto-Target Selector (§4.E) and applied to every
// record in the Conversion Engine.
type Targets struct {
	Currency  Resolved[string]    `json:"currency"`
	Magnitude Resolved[Scale]     `json:"magnitude"`
	Time      Resolved[TimeBasis] `json:"time"`
}
