package recommend

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all recommendation parameters.
type Config struct {
	// PrereqThreshold is the mastery a prerequisite needs before its
	// dependents become candidates.
	PrereqThreshold float64

	// MasteredThreshold is the mastery at which a topic stops being
	// recommended by the rule engine.
	MasteredThreshold float64

	// Neighbors is how many nearest peers collaborative filtering considers.
	Neighbors int

	// TopK is the default result size.
	TopK int

	// RuleTrust and CollaborativeTrust scale single-source scores in the
	// hybrid combiner. Prerequisite satisfaction is a hard constraint, so
	// rule-based output is trusted fully; similarity-based scores are
	// discounted for cold-start unreliability.
	RuleTrust          float64
	CollaborativeTrust float64
	DKTTrust           float64

	// AgreementBonus is the fraction of the weaker source's score added when
	// both sources agree on a topic.
	AgreementBonus float64
}

// DefaultConfig returns the standard recommendation parameters.
func DefaultConfig() Config {
	return Config{
		PrereqThreshold:    0.7,
		MasteredThreshold:  0.9,
		Neighbors:          10,
		TopK:               5,
		RuleTrust:          1.0,
		CollaborativeTrust: 0.8,
		DKTTrust:           0.5,
		AgreementBonus:     0.1,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	readFloat := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}
	readInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	readFloat("LEARNPATH_PREREQ_THRESHOLD", &cfg.PrereqThreshold)
	readFloat("LEARNPATH_MASTERED_THRESHOLD", &cfg.MasteredThreshold)
	readInt("LEARNPATH_CF_NEIGHBORS", &cfg.Neighbors)
	readInt("LEARNPATH_TOP_K", &cfg.TopK)
	readFloat("LEARNPATH_RULE_TRUST", &cfg.RuleTrust)
	readFloat("LEARNPATH_CF_TRUST", &cfg.CollaborativeTrust)

	return cfg
}

// Validate checks parameter ranges.
func (c Config) Validate() error {
	if c.PrereqThreshold <= 0 || c.PrereqThreshold > 1 {
		return fmt.Errorf("PrereqThreshold must be in (0, 1], got %f", c.PrereqThreshold)
	}
	if c.MasteredThreshold <= 0 || c.MasteredThreshold > 1 {
		return fmt.Errorf("MasteredThreshold must be in (0, 1], got %f", c.MasteredThreshold)
	}
	if c.MasteredThreshold < c.PrereqThreshold {
		return fmt.Errorf("MasteredThreshold (%f) must be >= PrereqThreshold (%f)", c.MasteredThreshold, c.PrereqThreshold)
	}
	if c.Neighbors < 1 {
		return fmt.Errorf("Neighbors must be >= 1, got %d", c.Neighbors)
	}
	if c.TopK < 1 {
		return fmt.Errorf("TopK must be >= 1, got %d", c.TopK)
	}
	for name, w := range map[string]float64{
		"RuleTrust":          c.RuleTrust,
		"CollaborativeTrust": c.CollaborativeTrust,
		"DKTTrust":           c.DKTTrust,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", name, w)
		}
	}
	return nil
}
