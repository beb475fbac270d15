package contract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LogAnalysisHeader prints a concise, 2-line header for each analysis run.
func LogAnalysisHeader(cfg *Config) {
	name := filepath.Base(cfg.InputPath)
	if name == "" || name == "." {
		name = "stdin"
	}
	dims := make([]string, len(cfg.Dimensions))
	for i, d := range cfg.Dimensions {
		dims[i] = string(d)
	}

	if cfg.UseEmojis {
		fmt.Printf("🔎 Data: %s (Dimensions: %s)\n", name, strings.Join(dims, ", "))
		fmt.Printf("📈 Forecast: %d months ahead (clamp: %t)\n", cfg.Horizon, cfg.ClampForecast)
		return
	}
	fmt.Printf("Data: %s (Dimensions: %s)\n", name, strings.Join(dims, ", "))
	fmt.Printf("Forecast: %d months ahead (clamp: %t)\n", cfg.Horizon, cfg.ClampForecast)
}
