package policy

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the policy YAML from path. POLICY_CONFIG_PATH overrides the
// location; missing fields fall back to the shipped defaults so a partial
// file only overrides what it names.
func Load(path string) (*Policy, error) {
	if env := os.Getenv("POLICY_CONFIG_PATH"); env != "" {
		path = env
	}
	if path == "" {
		path = "configs/policy.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Policy
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault loads the policy file and falls back to Default when the file
// is absent.
func LoadOrDefault(path string) (*Policy, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Policy) {
	defaults := Default()

	if cfg.VerdictScores == nil {
		cfg.VerdictScores = defaults.VerdictScores
	}
	if cfg.Steps == nil {
		cfg.Steps = defaults.Steps
	}
	if len(cfg.Safety.Keywords) == 0 {
		cfg.Safety.Keywords = defaults.Safety.Keywords
	}
	if cfg.Safety.IssueLimit == 0 {
		cfg.Safety.IssueLimit = defaults.Safety.IssueLimit
	}
	if cfg.MCQWeight == 0 {
		cfg.MCQWeight = defaults.MCQWeight
	}
}
