package domain

// VehicleInfo describes one model in the AOE lineup.
type VehicleInfo struct {
	Type       string
	Powertrain string
	Features   string
}

// VehicleCatalog is the AOE model lineup used for outreach drafts and
// competitor comparisons.
var VehicleCatalog = map[string]VehicleInfo{
	"AOE Apex": {
		Type:       "Luxury Sedan",
		Powertrain: "Gasoline",
		Features:   "Premium leather interior, Advanced driver-assistance systems (ADAS), Panoramic sunroof, Bose premium sound system, Adaptive cruise control, Lane-keeping assist, Automated parking, Heated and ventilated seats.",
	},
	"AOE Volt": {
		Type:       "Electric Compact",
		Powertrain: "Electric",
		Features:   "Long-range battery (500 miles), Fast charging (80% in 20 min), Regenerative braking, Solar roof charging, Vehicle-to-Grid (V2G) capability, Digital cockpit, Over-the-air updates, Extensive charging network access.",
	},
	"AOE Thunder": {
		Type:       "Performance SUV",
		Powertrain: "Gasoline",
		Features:   "V8 Twin-Turbo Engine, Adjustable air suspension, Sport Chrono Package, High-performance braking system, Off-road capabilities, Torque vectoring, 360-degree camera, Ambient lighting, Customizable drive modes.",
	},
}

// CompetitorInfo describes the comparable model from a rival brand.
type CompetitorInfo struct {
	ModelName string
	Features  string
}

// CompetitorCatalog maps brand -> segment -> comparable model.
var CompetitorCatalog = map[string]map[string]CompetitorInfo{
	"Ford": {
		"Sedan": {ModelName: "Ford Sedan", Features: "2.5L IVCT Atkinson Cycle I-4 Hybrid Engine; 210 Total System Horsepower; ..."},
		"SUV":   {ModelName: "Ford SUV", Features: "Available 440 hp 3.5L EcoBoost V6; ABS; Side-Impact Airbags; ..."},
		"EV":    {ModelName: "Ford EV", Features: "260 miles EPA range; 387 lb-ft torque; SYNC4A; ..."},
	},
}

// segmentForType maps an AOE vehicle type to the competitor segment it is
// cross-shopped against.
var segmentForType = map[string]string{
	"Luxury Sedan":     "Sedan",
	"Electric Compact": "EV",
	"Performance SUV":  "SUV",
}

// CompetitorFor returns the competing model for an AOE vehicle, if the
// brand covers that segment.
func CompetitorFor(brand, vehicle string) (CompetitorInfo, bool) {
	info, ok := VehicleCatalog[vehicle]
	if !ok {
		return CompetitorInfo{}, false
	}
	segment, ok := segmentForType[info.Type]
	if !ok {
		return CompetitorInfo{}, false
	}
	models, ok := CompetitorCatalog[brand]
	if !ok {
		return CompetitorInfo{}, false
	}
	competitor, ok := models[segment]
	return competitor, ok
}
