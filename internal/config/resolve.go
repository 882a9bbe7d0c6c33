package config

// Source names the configuration layer that supplied a resolved value.
type Source string

const (
	SourceDefault Source = "default"
	SourceHome    Source = "~/.opentell/config.json"
	SourceProject Source = ".opentell/config.json"
	SourceEnv     Source = "environment"
	SourceFlag    Source = "flag"
)

// resolved pairs a value with the layer that provided it.
type resolved struct {
	Value  interface{} `json:"value"`
	Source Source      `json:"source"`
}

// ResolvedConfig mirrors Config but with each field's source alongside it,
// for `opentell config resolve`.
type ResolvedConfig struct {
	AnthropicAPIKey     resolved `json:"anthropic_api_key"`
	ClassifierModel     resolved `json:"classifier_model"`
	SynthesisModel      resolved `json:"synthesis_model"`
	ConfidenceThreshold resolved `json:"confidence_threshold"`
	MaxLearnings        resolved `json:"max_learnings"`
	Paused              resolved `json:"paused"`
}

func resolveStringField(home, project, env, flag, def string) resolved {
	result := resolved{Value: def, Source: SourceDefault}
	if home != "" {
		result = resolved{Value: home, Source: SourceHome}
	}
	if project != "" {
		result = resolved{Value: project, Source: SourceProject}
	}
	if env != "" {
		result = resolved{Value: env, Source: SourceEnv}
	}
	if flag != "" {
		result = resolved{Value: flag, Source: SourceFlag}
	}
	return result
}

func resolveFloatField(home, project, env, flag, def float64) resolved {
	result := resolved{Value: def, Source: SourceDefault}
	if home != 0 {
		result = resolved{Value: home, Source: SourceHome}
	}
	if project != 0 {
		result = resolved{Value: project, Source: SourceProject}
	}
	if env != 0 {
		result = resolved{Value: env, Source: SourceEnv}
	}
	if flag != 0 {
		result = resolved{Value: flag, Source: SourceFlag}
	}
	return result
}

func resolveIntField(home, project, env, flag, def int) resolved {
	result := resolved{Value: def, Source: SourceDefault}
	if home != 0 {
		result = resolved{Value: home, Source: SourceHome}
	}
	if project != 0 {
		result = resolved{Value: project, Source: SourceProject}
	}
	if env != 0 {
		result = resolved{Value: env, Source: SourceEnv}
	}
	if flag != 0 {
		result = resolved{Value: flag, Source: SourceFlag}
	}
	return result
}

// Resolve returns configuration with per-field source tracking, using the
// same precedence chain as Load.
func Resolve(flags *Config) *ResolvedConfig {
	def := Default()
	home, _ := loadFromPath(homeConfigPath())
	if home == nil {
		home = &Config{}
	}
	project, _ := loadFromPath(projectConfigPath())
	if project == nil {
		project = &Config{}
	}

	env := &Config{}
	applyEnv(env)

	if flags == nil {
		flags = &Config{}
	}

	return &ResolvedConfig{
		AnthropicAPIKey:     resolveStringField(home.AnthropicAPIKey, project.AnthropicAPIKey, env.AnthropicAPIKey, flags.AnthropicAPIKey, def.AnthropicAPIKey),
		ClassifierModel:     resolveStringField(home.ClassifierModel, project.ClassifierModel, env.ClassifierModel, flags.ClassifierModel, def.ClassifierModel),
		SynthesisModel:      resolveStringField(home.SynthesisModel, project.SynthesisModel, env.SynthesisModel, flags.SynthesisModel, def.SynthesisModel),
		ConfidenceThreshold: resolveFloatField(home.ConfidenceThreshold, project.ConfidenceThreshold, env.ConfidenceThreshold, flags.ConfidenceThreshold, def.ConfidenceThreshold),
		MaxLearnings:        resolveIntField(home.MaxLearnings, project.MaxLearnings, env.MaxLearnings, flags.MaxLearnings, def.MaxLearnings),
		Paused:              resolvePausedField(home.Paused, project.Paused, env.Paused, flags.Paused),
	}
}

func resolvePausedField(home, project, env, flag bool) resolved {
	result := resolved{Value: false, Source: SourceDefault}
	if home {
		result = resolved{Value: true, Source: SourceHome}
	}
	if project {
		result = resolved{Value: true, Source: SourceProject}
	}
	if env {
		result = resolved{Value: true, Source: SourceEnv}
	}
	if flag {
		result = resolved{Value: true, Source: SourceFlag}
	}
	return result
}
