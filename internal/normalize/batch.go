package normalize

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aristath/indicator-normalize/internal/convert"
	"github.com/aristath/indicator-normalize/internal/domain"
	"github.com/aristath/indicator-normalize/internal/fx"
	"github.com/aristath/indicator-normalize/internal/quality"
	"github.com/aristath/indicator-normalize/internal/targets"
)

// Normalizer orchestrates a batch normalization run (§4.G). It is safe
// for concurrent use by multiple callers: each NormalizeBatch call
// allocates its own scratch slices, and the FX table passed in is never
// mutated.
type Normalizer struct {
	numWorkers int
	logger     zerolog.Logger
}

// New returns a Normalizer with numWorkers parallel workers for each map
// phase. numWorkers <= 0 defaults to 10, matching the evaluator worker
// pool's default.
func New(numWorkers int) *Normalizer {
	if numWorkers <= 0 {
		numWorkers = 10
	}
	return &Normalizer{
		numWorkers: numWorkers,
		logger:     log.With().Str("component", "normalize").Logger(),
	}
}

// NormalizeBatch runs components A, C, B, E, F across records, per the
// §5 concurrency model: a parallel map over records for classification,
// a single reduce for targets, and a parallel map for conversion.
//
// Returns domain.ErrInvalidConfiguration before any record is processed
// if cfg or fxTable is invalid. Otherwise individual record failures are
// isolated into the report's Failures and never abort the batch, unless
// cfg.FailFast is set, in which case NormalizeBatch also returns a
// non-nil error (the batch results are still returned alongside it).
func (n *Normalizer) NormalizeBatch(records []domain.InputRecord, cfg domain.Config, fxTable *domain.FXTable) ([]domain.NormalizedRecord, domain.NormalizationReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, domain.NormalizationReport{}, err
	}

	var resolver *fx.Resolver
	if fxTable != nil {
		validated, err := fx.NewTable(fxTable)
		if err != nil {
			return nil, domain.NormalizationReport{}, err
		}
		resolver = fx.NewResolver(validated, cfg.UseLiveFX)
	}

	start := time.Now()
	batchID := uuid.NewString()
	n.logger.Info().Str("batch_id", batchID).Int("records", len(records)).Msg("batch normalization starting")

	classified := make([]Classified, len(records))
	classifyErrs := make([]error, len(records))
	mapOverIndices(len(records), n.numWorkers, func(i int) {
		c, err := ClassifyRecord(records[i], cfg)
		classified[i] = c
		classifyErrs[i] = err
	})

	domains := make([]domain.Domain, len(records))
	sigs := make([]domain.ResolvedSignals, len(records))
	for i := range records {
		domains[i] = classified[i].Domain
		sigs[i] = classified[i].Signals
	}

	tgt := targets.Select(domains, sigs, cfg)
	n.logger.Debug().
		Str("currency", tgt.Currency.Value).Str("currency_source", string(tgt.Currency.Source)).
		Str("magnitude", string(tgt.Magnitude.Value)).Str("magnitude_source", string(tgt.Magnitude.Source)).
		Msg("auto-target selection complete")

	converted := make([]domain.NormalizedRecord, len(records))
	convertErrs := make([]error, len(records))
	qualityReports := make([]*domain.ConsolidatedQualityReport, len(records))
	mapOverIndices(len(records), n.numWorkers, func(i int) {
		if classifyErrs[i] != nil {
			return
		}
		rec, err := convert.Convert(records[i], domains[i], sigs[i], tgt, resolver, cfg)
		if err != nil {
			convertErrs[i] = err
			return
		}

		if len(records[i].SampleValues) > 0 {
			hints := classificationHints(records[i], domains[i], sigs[i])
			qr := quality.RunQualityChecks(records[i].ID, records[i].SampleValues, hints, start)
			score := qr.OverallScore
			rec.QualityScore = &score
			if rec.Explain != nil {
				rec.Explain.QualityScore = &score
			}
			qualityReports[i] = &qr
		}

		if !cfg.Explain {
			rec.Explain = nil
		}
		converted[i] = rec
	})

	report := domain.NormalizationReport{BatchID: batchID, Targets: tgt}
	normalized := make([]domain.NormalizedRecord, 0, len(records))
	summary := domain.BatchQualitySummary{}
	anyQualityAssessed := false
	for i, rec := range records {
		failErr := classifyErrs[i]
		if failErr == nil {
			failErr = convertErrs[i]
		}
		if failErr != nil {
			report.Failures = append(report.Failures, toFailure(rec.ID, failErr))
			report.RecordsFailed++
			n.logger.Debug().Str("id", rec.ID).Err(failErr).Msg("record failed normalization")
			continue
		}
		normalized = append(normalized, converted[i])
		report.RecordsProcessed++

		if qr := qualityReports[i]; qr != nil {
			anyQualityAssessed = true
			switch qr.Status {
			case "clean":
				summary.Clean++
			case "minor_issues":
				summary.MinorIssues++
			case "major_issues":
				summary.MajorIssues++
			case "unusable":
				summary.Unusable++
			}
		}
	}
	if anyQualityAssessed {
		report.QualitySummary = &summary
	}

	n.logger.Info().
		Str("batch_id", batchID).
		Int("processed", report.RecordsProcessed).
		Int("failed", report.RecordsFailed).
		Dur("duration", time.Since(start)).
		Msg("batch normalization complete")

	if cfg.FailFast && report.RecordsFailed > 0 {
		return normalized, report, domain.NewError(report.Failures[0].ErrorKind,
			"fail_fast: batch contains record failures")
	}

	return normalized, report, nil
}

func toFailure(id string, err error) domain.Failure {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return domain.Failure{ID: id, ErrorKind: derr.Kind, Detail: derr.Detail}
	}
	return domain.Failure{ID: id, ErrorKind: domain.ErrInvalidConfiguration, Detail: err.Error()}
}
