package profile

// PanelAreaM2 is the collector area of the reference 100 W panel used across
// the deployment being modeled.
const PanelAreaM2 = 0.6

// SolarHour is one row of the hourly irradiance table.
type SolarHour struct {
	Hour            int     `json:"hour"`
	IrradianceWM2   float64 `json:"avg_irradiance_w_m2"`
	PanelEfficiency float64 `json:"panel_efficiency"`
}

// OutputW is the delivered panel power for this hour:
// irradiance x panel area x efficiency.
func (h SolarHour) OutputW() float64 {
	return h.IrradianceWM2 * PanelAreaM2 * h.PanelEfficiency
}

// SolarTable maps hour-of-day (0-23) to the irradiance profile for that hour.
type SolarTable [24]SolarHour

// OutputW returns the delivered panel watts for an hour index. Out-of-range
// hours and missing entries yield zero rather than an error.
func (t SolarTable) OutputW(hour int) float64 {
	if hour < 0 || hour > 23 {
		return 0
	}
	return t[hour].OutputW()
}

// DefaultSolarTable is a synthetic clear-sky day used when no measurement
// table is loaded. The bell shape peaks at solar noon; nights deliver zero.
func DefaultSolarTable() SolarTable {
	irradiance := [24]float64{
		0, 0, 0, 0, 0, 0,
		100, 250, 400, 550, 700, 800,
		850, 800, 700, 550, 400, 250,
		100, 0, 0, 0, 0, 0,
	}
	var table SolarTable
	for hour := range table {
		table[hour] = SolarHour{
			Hour:            hour,
			IrradianceWM2:   irradiance[hour],
			PanelEfficiency: 0.18,
		}
	}
	return table
}
