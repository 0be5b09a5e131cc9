package prompts

import (
	"github.com/charmbracelet/huh"
)

// ConfigAnswers holds the settings chosen in the config wizard.
type ConfigAnswers struct {
	LogLevel      string
	LogFormat     string
	MemoryBackend string
	Summary       bool
}

// PromptConfig asks for the common settings, starting from current.
func PromptConfig(current ConfigAnswers) (ConfigAnswers, error) {
	answers := current

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should settled transactions be remembered during a run?").
				Description("SQLite keeps large inputs off the heap; the file is removed after the run.").
				Options(
					huh.NewOption("In memory", "memory"),
					huh.NewOption("SQLite temp file", "sqlite"),
				).
				Value(&answers.MemoryBackend),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("trace", "debug", "info", "warn", "error")...).
				Value(&answers.LogLevel),
			huh.NewSelect[string]().
				Title("Log format").
				Options(
					huh.NewOption("Text", "text"),
					huh.NewOption("JSON", "json"),
				).
				Value(&answers.LogFormat),
			huh.NewConfirm().
				Title("Print a run summary after each run?").
				Affirmative("Yes").
				Negative("No").
				Value(&answers.Summary),
		),
	)

	if err := form.Run(); err != nil {
		return current, err
	}
	return answers, nil
}
