package schema

// ForecastPoint is one projected period.
type ForecastPoint struct {
	Period           int     `json:"period"`          // t index continuing the observed series
	Label            string  `json:"label,omitempty"` // projected month key when known
	PredictedRevenue float64 `json:"predicted_revenue"`
}

// ForecastResult is the fitted trend line and its projections.
type ForecastResult struct {
	Intercept    float64         `json:"intercept"`
	Slope        float64         `json:"slope"`
	Observations int             `json:"observations"`
	Horizon      int             `json:"horizon"`
	Points       []ForecastPoint `json:"points"`
	MAE          float64         `json:"mae"`  // in-sample mean absolute error
	RMSE         float64         `json:"rmse"` // in-sample root mean squared error
	Clamped      bool            `json:"clamped"`
}

// Predictions returns the predicted values in period order.
func (r ForecastResult) Predictions() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.PredictedRevenue
	}
	return out
}
