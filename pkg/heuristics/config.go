package heuristics

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the scorer's weights and thresholds. Every signal the scorer
// evaluates has its weight here rather than as a compiled-in constant, so
// an embedding application can tune the language/command balance without
// forking the scorer.
type Config struct {
	QuestionMarkWeight    float64 `yaml:"question_mark_weight"`
	InterrogativeWeight   float64 `yaml:"interrogative_weight"`
	PolitenessWeight      float64 `yaml:"politeness_weight"`
	ArticleRatioThreshold float64 `yaml:"article_ratio_threshold"`
	ArticleRatioWeight    float64 `yaml:"article_ratio_weight"`
	ComparativeWeight     float64 `yaml:"comparative_weight"`
	SingleTokenWeight     float64 `yaml:"single_token_weight"`
	DecisionThreshold     float64 `yaml:"decision_threshold"`
}

// DefaultConfig returns the stock weights. Scores at or above
// DecisionThreshold read as natural language.
func DefaultConfig() Config {
	// Strong signals clear DecisionThreshold comfortably, moderate ones
	// just reach it, weak ones never flip the verdict alone.
	return Config{
		QuestionMarkWeight:    0.7,
		InterrogativeWeight:   0.6,
		PolitenessWeight:      0.5,
		ArticleRatioThreshold: 0.4,
		ArticleRatioWeight:    0.5,
		ComparativeWeight:     0.2,
		SingleTokenWeight:     0.4,
		DecisionThreshold:     0.5,
	}
}

// LoadConfig reads a YAML config file. Keys absent from the file keep their
// default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading heuristics config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing heuristics config %s: %w", path, err)
	}
	return cfg, nil
}

// UserConfigPaths returns the candidate locations for a user heuristics
// config file, most specific first.
func UserConfigPaths() []string {
	var paths []string

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		paths = append(paths, filepath.Join(xdgConfig, "rudder", "heuristics.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", "rudder", "heuristics.yaml"))
		paths = append(paths, filepath.Join(home, ".rudder_heuristics.yaml"))
	}

	return paths
}

// LoadUserConfig returns the first readable user config, falling back to
// the defaults when none exists.
func LoadUserConfig() Config {
	for _, path := range UserConfigPaths() {
		if cfg, err := LoadConfig(path); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}
