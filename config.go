package resonance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// paramsDoc is the YAML-facing shape of Params. It exists so the on-disk
// field names can stay lower_snake_case (the convention the rest of the
// pack's YAML consumers use) without forcing that naming onto the Go
// struct's exported fields.
type paramsDoc struct {
	Vigilance                   float64 `yaml:"vigilance"`
	LearningRate                float64 `yaml:"learning_rate"`
	ChoiceAlpha                 float64 `yaml:"choice_alpha"`
	ParallelismLevel            int     `yaml:"parallelism_level"`
	ParallelThreshold           int     `yaml:"parallel_threshold"`
	MaxCacheSize                int     `yaml:"max_cache_size"`
	EnableSIMD                  bool    `yaml:"enable_simd"`
	MemoryOptimizationThreshold float64 `yaml:"memory_optimization_threshold"`
}

// LoadParamsYAML reads a Params value from a YAML file. It is not part of
// the core's programmatic surface (spec.md §6 takes Params as a plain
// value); it exists for the example/ demo and for tests that want to load
// a fixture parameter set instead of constructing one in code.
func LoadParamsYAML(path string) (Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("resonance: reading params file: %w", err)
	}

	var doc paramsDoc
	// Defaults are filled in before unmarshal so a partial YAML document
	// only overrides the fields it mentions.
	def := DefaultParams()
	doc = paramsDoc{
		Vigilance:                   def.Vigilance,
		LearningRate:                def.LearningRate,
		ChoiceAlpha:                 def.ChoiceAlpha,
		ParallelismLevel:            def.ParallelismLevel,
		ParallelThreshold:           def.ParallelThreshold,
		MaxCacheSize:                def.MaxCacheSize,
		EnableSIMD:                  def.EnableSIMD,
		MemoryOptimizationThreshold: def.MemoryOptimizationThreshold,
	}

	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Params{}, fmt.Errorf("resonance: parsing params file: %w", err)
	}

	p := Params{
		Vigilance:                   doc.Vigilance,
		LearningRate:                doc.LearningRate,
		ChoiceAlpha:                 doc.ChoiceAlpha,
		ParallelismLevel:            doc.ParallelismLevel,
		ParallelThreshold:           doc.ParallelThreshold,
		MaxCacheSize:                doc.MaxCacheSize,
		EnableSIMD:                  doc.EnableSIMD,
		MemoryOptimizationThreshold: doc.MemoryOptimizationThreshold,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
