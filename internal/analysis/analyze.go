package analysis

// Analyze runs the full pipeline on a raw point sequence: normalization,
// geometry, topology, technicity and one prediction per requested profile.
// All-or-nothing: either a complete result or a typed error, never partial
// output. Pure and deterministic, so concurrent invocations need no locking.
func Analyze(raw []RawPoint, profiles []RunnerProfile, cfg Config) (AnalysisResult, error) {
	track, err := Normalize(raw, cfg)
	if err != nil {
		return AnalysisResult{}, err
	}

	geom := Summarize(track, cfg)
	route := ClassifyRoute(track, geom, cfg)
	tech := ScoreTechnicity(geom, track, cfg)

	expanded := expandProfiles(profiles)
	predictions := make([]PredictionResult, 0, len(expanded))
	for _, p := range expanded {
		pred, err := Predict(track, geom, tech, p, cfg)
		if err != nil {
			return AnalysisResult{}, err
		}
		predictions = append(predictions, pred)
	}

	return AnalysisResult{
		Geometry:    geom,
		RouteType:   route,
		Technicity:  tech,
		Predictions: predictions,
	}, nil
}

// expandProfiles substitutes the three standard archetypes for an empty
// profile list, and for any profile that names neither an archetype nor a
// fitness index.
func expandProfiles(profiles []RunnerProfile) []RunnerProfile {
	if len(profiles) == 0 {
		profiles = []RunnerProfile{{}}
	}
	out := make([]RunnerProfile, 0, len(profiles)+2)
	for _, p := range profiles {
		if p.Archetype == "" && p.FitnessIndex == nil {
			for _, a := range Archetypes {
				out = append(out, RunnerProfile{Archetype: a})
			}
			continue
		}
		out = append(out, p)
	}
	return out
}
