package config

type Config struct {
	Log        LogConfig     `mapstructure:"log"`
	Memory     MemoryConfig  `mapstructure:"memory"`
	Output     OutputConfig  `mapstructure:"output"`
	Metrics    MetricsConfig `mapstructure:"metrics"`
	ConfigPath string        `mapstructure:"-"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MemoryConfig selects where settled transactions are remembered during a run.
type MemoryConfig struct {
	Backend              string `mapstructure:"backend"`
	Path                 string `mapstructure:"path"`
	ExpectedTransactions uint   `mapstructure:"expected_transactions"`
}

type OutputConfig struct {
	Path    string `mapstructure:"path"`
	Summary bool   `mapstructure:"summary"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

func NewDefault() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Memory: MemoryConfig{Backend: "memory", ExpectedTransactions: 1_000_000},
	}
}
