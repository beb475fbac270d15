package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Stage names used when recording partial failures.
const (
	StageKPIs     = "kpis"
	StageScores   = "scores"
	StageForecast = "forecast"
)

// Failure kinds recorded with a StageFailure.
const (
	FailureEmptyInput       = "empty_input"
	FailureInsufficientData = "insufficient_data"
	FailureInvalidHorizon   = "invalid_horizon"
	FailureInvalidWeights   = "invalid_weights"
	FailureQuantityOverflow = "quantity_overflow"
)

// StageFailure records a downstream stage that failed while the rest of the run succeeded.
// Kind and the typed cause survive JSON encoding, so cached reports still
// match errors.Is and errors.As.
type StageFailure struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Err     error  `json:"-"`
}

// NewStageFailure wraps err as a failure of stage and classifies it.
func NewStageFailure(stage string, err error) StageFailure {
	return StageFailure{Stage: stage, Message: err.Error(), Kind: failureKind(err), Err: err}
}

func (f StageFailure) Error() string {
	return f.Stage + ": " + f.Message
}

// Unwrap returns the underlying stage error when it is still known.
func (f StageFailure) Unwrap() error {
	return f.Err
}

type stageFailureFields StageFailure

type stageFailureJSON struct {
	stageFailureFields
	Cause json.RawMessage `json:"cause,omitempty"`
}

// MarshalJSON encodes the failure along with the fields of a typed cause.
func (f StageFailure) MarshalJSON() ([]byte, error) {
	out := stageFailureJSON{stageFailureFields: stageFailureFields(f)}
	if cause := typedCause(f.Err); cause != nil {
		raw, err := json.Marshal(cause)
		if err != nil {
			return nil, err
		}
		out.Cause = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the failure and rebuilds its cause from Kind.
func (f *StageFailure) UnmarshalJSON(data []byte) error {
	var in stageFailureJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*f = StageFailure(in.stageFailureFields)

	var cause error
	switch f.Kind {
	case FailureEmptyInput:
		cause = ErrEmptyInput
	case FailureQuantityOverflow:
		cause = ErrQuantityOverflow
	case FailureInsufficientData:
		cause = &InsufficientDataError{}
	case FailureInvalidHorizon:
		cause = &InvalidHorizonError{}
	case FailureInvalidWeights:
		cause = &InvalidWeightsError{}
	default:
		f.Err = errors.New(f.Message)
		return nil
	}
	if len(in.Cause) > 0 {
		if err := json.Unmarshal(in.Cause, cause); err != nil {
			return fmt.Errorf("decoding %s cause: %w", f.Kind, err)
		}
	}
	f.Err = cause
	return nil
}

func failureKind(err error) string {
	var insufficient *InsufficientDataError
	var horizon *InvalidHorizonError
	var weights *InvalidWeightsError
	switch {
	case errors.As(err, &insufficient):
		return FailureInsufficientData
	case errors.As(err, &horizon):
		return FailureInvalidHorizon
	case errors.As(err, &weights):
		return FailureInvalidWeights
	case errors.Is(err, ErrEmptyInput):
		return FailureEmptyInput
	case errors.Is(err, ErrQuantityOverflow):
		return FailureQuantityOverflow
	default:
		return ""
	}
}

// typedCause returns the structured error worth persisting, or nil.
func typedCause(err error) error {
	var insufficient *InsufficientDataError
	var horizon *InvalidHorizonError
	var weights *InvalidWeightsError
	switch {
	case errors.As(err, &insufficient):
		return insufficient
	case errors.As(err, &horizon):
		return horizon
	case errors.As(err, &weights):
		return weights
	default:
		return nil
	}
}

// RunSummary is the row accounting shown under every rendered result.
type RunSummary struct {
	Source      string               `json:"source"`
	TotalRows   int                  `json:"total_rows"`
	CleanedRows int                  `json:"cleaned_rows"`
	Rejected    int                  `json:"rejected"`
	Reasons     map[RejectReason]int `json:"reasons"`
}

// AnalysisReport is the full result envelope of one pipeline run.
type AnalysisReport struct {
	Source      string               `json:"source"`
	GeneratedAt time.Time            `json:"generated_at"`
	TotalRows   int                  `json:"total_rows"`
	CleanedRows int                  `json:"cleaned_rows"`
	Rejections  []RowValidationError `json:"rejections"`
	KPIs        *KPIReport           `json:"kpis,omitempty"`
	Aggregates  []Aggregate          `json:"aggregates"`
	Scores      []ProductScore       `json:"scores,omitempty"`
	Forecast    *ForecastResult      `json:"forecast,omitempty"`
	Failures    []StageFailure       `json:"failures,omitempty"`
}

// Aggregate returns the aggregate for the dimension if it was computed.
func (r *AnalysisReport) Aggregate(dim Dimension) (Aggregate, bool) {
	for _, a := range r.Aggregates {
		if a.Dimension == dim {
			return a, true
		}
	}
	return Aggregate{}, false
}

// Failure returns the recorded failure for the stage, if any.
func (r *AnalysisReport) Failure(stage string) (StageFailure, bool) {
	for _, f := range r.Failures {
		if f.Stage == stage {
			return f, true
		}
	}
	return StageFailure{}, false
}

// Summary returns the row accounting for the report.
func (r *AnalysisReport) Summary() RunSummary {
	reasons := make(map[RejectReason]int)
	for _, rej := range r.Rejections {
		reasons[rej.Reason]++
	}
	return RunSummary{
		Source:      r.Source,
		TotalRows:   r.TotalRows,
		CleanedRows: r.CleanedRows,
		Rejected:    len(r.Rejections),
		Reasons:     reasons,
	}
}

// RejectionReport lists every rejected row with its accounting.
type RejectionReport struct {
	Summary    RunSummary           `json:"summary"`
	Rejections []RowValidationError `json:"rejections"`
}
