package config

var Presets = map[string]map[string]*Config{
	ModelStrings: {
		"gentle": {
			Model: ModelStrings, Dt: 0.01, Duration: 20.0,
			Coupling: 0.5,
		},
		"lively": {
			Model: ModelStrings, Dt: 0.016, Duration: 30.0,
			Coupling: 1.5,
		},
		"splitting": {
			Model: ModelStrings, Dt: 0.02, Duration: 60.0,
			Coupling: 3.0,
		},
	},
	ModelMatrix: {
		"small": {
			Model: ModelMatrix, Dt: 0.01, Duration: 20.0,
			Size: 4, Coupling: 1.0, Mass: 1.0,
		},
		"dense": {
			Model: ModelMatrix, Dt: 0.01, Duration: 30.0,
			Size: 16, Coupling: 1.0, Mass: 0.5,
		},
		"heavy": {
			Model: ModelMatrix, Dt: 0.005, Duration: 20.0,
			Size: 8, Coupling: 2.0, Mass: 3.0,
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
