package schema

// MetricsFactor describes one normalized scoring input for display purposes.
type MetricsFactor struct {
	Key     BreakdownKey `json:"key"`
	Name    string       `json:"name"`
	Purpose string       `json:"purpose"`
	Weight  float64      `json:"weight"`
}

// MetricsRenderModel contains all processed data needed for displaying metric definitions.
type MetricsRenderModel struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Factors         []MetricsFactor   `json:"factors"`
	ScoreFormula    string            `json:"score_formula"`
	ForecastFormula string            `json:"forecast_formula"`
	ForecastHorizon int               `json:"forecast_horizon"`
	ClampForecast   bool              `json:"clamp_forecast"`
	KPIDefinitions  map[string]string `json:"kpi_definitions"`
}
