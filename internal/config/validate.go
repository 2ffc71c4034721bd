package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateLanguages(); err != nil {
		return err
	}
	if err := c.validateGold(); err != nil {
		return err
	}
	if err := c.validateTransition(); err != nil {
		return err
	}
	if err := c.validateNER(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

// ValidateTraining checks that every primary tag has a training corpus.
// Only model training needs this; annotation can run from saved models.
func (c *Config) ValidateTraining() error {
	for _, tag := range c.Languages.Primary {
		if c.Languages.Training[tag] == "" {
			return fmt.Errorf("languages.training.%s must be set to train the %s model", tag, tag)
		}
	}
	return nil
}

func (c *Config) validateModel() error {
	if c.Model.Order < 2 {
		return errors.New("model.order must be at least 2")
	}
	if c.Model.AlphabetSize < 1 {
		return errors.New("model.alphabet_size must be at least 1")
	}
	return nil
}

func (c *Config) validateLanguages() error {
	primary := c.Languages.Primary
	if len(primary) != 2 {
		return fmt.Errorf("languages.primary must name exactly two tags, got %d", len(primary))
	}
	if primary[0] == "" || primary[1] == "" {
		return errors.New("languages.primary must not contain empty tags")
	}
	if primary[0] == primary[1] {
		return fmt.Errorf("languages.primary tags must be distinct, got %q twice", primary[0])
	}
	isPrimary := map[string]bool{primary[0]: true, primary[1]: true}
	for tag := range c.Languages.Training {
		if !isPrimary[tag] {
			return fmt.Errorf("languages.training.%s is not a primary tag", tag)
		}
	}
	seen := make(map[string]string)
	for tag, aliases := range c.Languages.Aliases {
		if !isPrimary[tag] {
			return fmt.Errorf("languages.aliases.%s is not a primary tag", tag)
		}
		for _, a := range aliases {
			if isPrimary[a] {
				return fmt.Errorf("languages.aliases.%s: %q is already a primary tag", tag, a)
			}
			if prev, ok := seen[a]; ok {
				return fmt.Errorf("languages.aliases: %q maps to both %s and %s", a, prev, tag)
			}
			seen[a] = tag
		}
	}
	return nil
}

func (c *Config) validateGold() error {
	if utf8.RuneCountInString(c.Gold.Delimiter) != 1 {
		return fmt.Errorf("gold.delimiter must be a single character, got %q", c.Gold.Delimiter)
	}
	return nil
}

func (c *Config) validateTransition() error {
	switch c.Transition.Normalization {
	case "joint", "conditional":
		return nil
	default:
		return fmt.Errorf("transition.normalization must be joint or conditional, got %q", c.Transition.Normalization)
	}
}

func (c *Config) validateNER() error {
	if c.NER.ChunkSize < 1 {
		return errors.New("ner.chunk_size must be at least 1")
	}
	isPrimary := make(map[string]bool, len(c.Languages.Primary))
	for _, tag := range c.Languages.Primary {
		isPrimary[tag] = true
	}
	for tag, ch := range c.NER.Channels {
		if !isPrimary[tag] {
			return fmt.Errorf("ner.channels.%s is not a primary tag", tag)
		}
		hasGaz, hasCmd := ch.Gazetteer != "", len(ch.Command) > 0
		if hasGaz == hasCmd {
			return fmt.Errorf("ner.channels.%s must set exactly one of gazetteer or command", tag)
		}
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Precision < 0 || c.Output.Precision > 10 {
		return errors.New("output.precision must be between 0 and 10")
	}
	if utf8.RuneCountInString(c.Output.Delimiter) != 1 {
		return fmt.Errorf("output.delimiter must be a single character, got %q", c.Output.Delimiter)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
