package config

const (
	defaultOrder          = 5
	defaultAlphabetSize   = 26
	defaultModelDir       = "~/.local/share/cstag/models"
	defaultGoldDelimiter  = "\t"
	defaultNamedEntityTag = "NamedEnt"
	defaultNormalization  = "joint"
	defaultChunkSize      = 1000
	defaultOutsideTag     = "O"
	defaultSeparator      = "/"
	defaultPrecision      = 2
	defaultOutputDelim    = "\t"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultStorePath      = "~/.local/share/cstag/runs.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Model: Model{
			Order:        defaultOrder,
			AlphabetSize: defaultAlphabetSize,
			Dir:          defaultModelDir,
		},
		Languages: Languages{
			Primary: []string{"Eng", "Spn"},
			Training: map[string]string{
				"Eng": "TrainingCorpora/EngCorpus-1m.txt",
				"Spn": "TrainingCorpora/MexCorpus.txt",
			},
			Aliases: map[string][]string{
				"Eng": {"NonStEng", "EngNoSpace", "EngNonSt"},
				"Spn": {"NonStSpn", "SpnNoSpace"},
			},
		},
		Gold: Gold{
			Delimiter:      defaultGoldDelimiter,
			NamedEntityTag: defaultNamedEntityTag,
		},
		Transition: Transition{
			Normalization: defaultNormalization,
		},
		NER: NER{
			ChunkSize:  defaultChunkSize,
			OutsideTag: defaultOutsideTag,
			Separator:  defaultSeparator,
		},
		Output: Output{
			KeepCase:  true,
			Header:    true,
			Precision: defaultPrecision,
			Delimiter: defaultOutputDelim,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Store: Store{
			Path: defaultStorePath,
		},
	}
}
