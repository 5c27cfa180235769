package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the gameplay tuning for one session. Created once at
// session start, read-only thereafter.
type Config struct {
	TotalQuestions int `yaml:"total_questions"`
	MaxMonsters    int `yaml:"max_monsters"`

	// Zero duration / zero lives mean unlimited in practice mode
	TestModeTimeLimit     time.Duration `yaml:"test_mode_time_limit"`
	PracticeModeTimeLimit time.Duration `yaml:"practice_mode_time_limit"`
	TestModeLives         int           `yaml:"test_mode_lives"`
	PracticeModeLives     int           `yaml:"practice_mode_lives"`

	PointsPerCorrectAnswer int           `yaml:"points_per_correct_answer"`
	FastAnswerBonus        int           `yaml:"fast_answer_bonus"`
	FastAnswerThreshold    time.Duration `yaml:"fast_answer_threshold"`

	MinDividend     int   `yaml:"min_dividend"`
	MaxDividend     int   `yaml:"max_dividend"`
	AllowedDivisors []int `yaml:"allowed_divisors"`
}

// Default returns the built-in gameplay configuration
func Default() Config {
	return Config{
		TotalQuestions:         DefaultTotalQuestions,
		MaxMonsters:            DefaultMaxMonsters,
		TestModeTimeLimit:      DefaultTestTimeLimit,
		PracticeModeTimeLimit:  0,
		TestModeLives:          DefaultTestLives,
		PracticeModeLives:      0,
		PointsPerCorrectAnswer: DefaultPointsPerAnswer,
		FastAnswerBonus:        DefaultFastAnswerBonus,
		FastAnswerThreshold:    DefaultFastAnswerThreshold,
		MinDividend:            DefaultMinDividend,
		MaxDividend:            DefaultMaxDividend,
		AllowedDivisors:        []int{2, 3, 4, 5},
	}
}

// Load reads YAML config from path. A missing file yields the defaults;
// a present file is decoded over the defaults so partial files work.
// The result is always normalized: configuration problems are corrected
// to safe values here and never surface mid-session.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize corrects invalid values in place, logging each correction.
// Guarantees after return: AllowedDivisors non-empty with every divisor
// in [1, MaxMonsters], MinDividend <= MaxDividend, positive counts.
func (c *Config) Normalize() {
	def := Default()

	if c.TotalQuestions < 1 {
		log.Printf("config: total_questions %d invalid, using %d", c.TotalQuestions, def.TotalQuestions)
		c.TotalQuestions = def.TotalQuestions
	}
	if c.MaxMonsters < 1 {
		log.Printf("config: max_monsters %d invalid, using %d", c.MaxMonsters, def.MaxMonsters)
		c.MaxMonsters = def.MaxMonsters
	}
	if c.TestModeLives < 1 {
		c.TestModeLives = def.TestModeLives
	}
	if c.PracticeModeLives < 0 {
		c.PracticeModeLives = 0
	}
	if c.TestModeTimeLimit <= 0 {
		c.TestModeTimeLimit = def.TestModeTimeLimit
	}
	if c.PracticeModeTimeLimit < 0 {
		c.PracticeModeTimeLimit = 0
	}
	if c.PointsPerCorrectAnswer < 1 {
		c.PointsPerCorrectAnswer = def.PointsPerCorrectAnswer
	}
	if c.FastAnswerBonus < 0 {
		c.FastAnswerBonus = 0
	}
	if c.FastAnswerThreshold <= 0 {
		c.FastAnswerThreshold = def.FastAnswerThreshold
	}

	if c.MinDividend < 1 {
		c.MinDividend = def.MinDividend
	}
	if c.MaxDividend < c.MinDividend {
		log.Printf("config: dividend range [%d,%d] invalid, using [%d,%d]",
			c.MinDividend, c.MaxDividend, def.MinDividend, def.MaxDividend)
		c.MinDividend = def.MinDividend
		c.MaxDividend = def.MaxDividend
	}

	divisors := c.AllowedDivisors[:0:0]
	for _, d := range c.AllowedDivisors {
		if d >= 1 && d <= c.MaxMonsters {
			divisors = append(divisors, d)
		} else {
			log.Printf("config: dropping divisor %d outside [1,%d]", d, c.MaxMonsters)
		}
	}
	if len(divisors) == 0 {
		log.Printf("config: allowed_divisors empty after validation, using defaults")
		divisors = append(divisors, def.AllowedDivisors...)
	}
	c.AllowedDivisors = divisors
}

// TimeLimit returns the session time limit for the given mode.
// Zero means unlimited.
func (c *Config) TimeLimit(practice bool) time.Duration {
	if practice {
		return c.PracticeModeTimeLimit
	}
	return c.TestModeTimeLimit
}

// Lives returns the life count for the given mode. Zero means unlimited.
func (c *Config) Lives(practice bool) int {
	if practice {
		return c.PracticeModeLives
	}
	return c.TestModeLives
}
