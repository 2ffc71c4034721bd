package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeModel(); err != nil {
		return err
	}
	if err := c.normalizeLanguages(); err != nil {
		return err
	}
	if err := c.normalizeGold(); err != nil {
		return err
	}
	if err := c.normalizeNER(); err != nil {
		return err
	}
	if err := c.normalizeStore(); err != nil {
		return err
	}
	c.Transition.Normalization = strings.ToLower(strings.TrimSpace(c.Transition.Normalization))
	if c.Transition.Normalization == "" {
		c.Transition.Normalization = defaultNormalization
	}
	if c.Output.Delimiter == "" {
		c.Output.Delimiter = defaultOutputDelim
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeModel() error {
	if strings.TrimSpace(c.Model.Dir) == "" {
		c.Model.Dir = defaultModelDir
	}
	var err error
	if c.Model.Dir, err = expandPath(c.Model.Dir); err != nil {
		return fmt.Errorf("model.model_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLanguages() error {
	for i, tag := range c.Languages.Primary {
		c.Languages.Primary[i] = strings.TrimSpace(tag)
	}
	for tag, path := range c.Languages.Training {
		expanded, err := expandPath(strings.TrimSpace(path))
		if err != nil {
			return fmt.Errorf("languages.training.%s: %w", tag, err)
		}
		c.Languages.Training[tag] = expanded
	}
	for tag, aliases := range c.Languages.Aliases {
		cleaned := aliases[:0]
		for _, a := range aliases {
			if a = strings.TrimSpace(a); a != "" {
				cleaned = append(cleaned, a)
			}
		}
		c.Languages.Aliases[tag] = cleaned
	}
	return nil
}

func (c *Config) normalizeGold() error {
	var err error
	if c.Gold.Path, err = expandPath(strings.TrimSpace(c.Gold.Path)); err != nil {
		return fmt.Errorf("gold.path: %w", err)
	}
	if c.Gold.Delimiter == "" {
		c.Gold.Delimiter = defaultGoldDelimiter
	}
	c.Gold.NamedEntityTag = strings.TrimSpace(c.Gold.NamedEntityTag)
	if c.Gold.NamedEntityTag == "" {
		c.Gold.NamedEntityTag = defaultNamedEntityTag
	}
	return nil
}

func (c *Config) normalizeNER() error {
	c.NER.OutsideTag = strings.TrimSpace(c.NER.OutsideTag)
	if c.NER.OutsideTag == "" {
		c.NER.OutsideTag = defaultOutsideTag
	}
	if c.NER.Separator == "" {
		c.NER.Separator = defaultSeparator
	}
	for tag, ch := range c.NER.Channels {
		var err error
		if ch.Gazetteer, err = expandPath(strings.TrimSpace(ch.Gazetteer)); err != nil {
			return fmt.Errorf("ner.channels.%s.gazetteer: %w", tag, err)
		}
		c.NER.Channels[tag] = ch
	}
	return nil
}

func (c *Config) normalizeStore() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = defaultStorePath
	}
	var err error
	if c.Store.Path, err = expandPath(c.Store.Path); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
