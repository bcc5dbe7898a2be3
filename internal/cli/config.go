package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arcview/pkg/errors"
)

// fileConfig mirrors the flags that may be preset in config.toml:
//
//	index = "data/example_index"
//	arcs = "data/example_arcs"
//	addr = ":8050"
//	color = "Green"
//	duplicates = "keep"
//	height = "800px"
//	width = "100%"
type fileConfig struct {
	Index      string `toml:"index"`
	Arcs       string `toml:"arcs"`
	Addr       string `toml:"addr"`
	Color      string `toml:"color"`
	Duplicates string `toml:"duplicates"`
	Height     string `toml:"height"`
	Width      string `toml:"width"`
}

// flagValues maps flag names to configured values.
func (f fileConfig) flagValues() map[string]string {
	return map[string]string{
		"index":      f.Index,
		"arcs":       f.Arcs,
		"addr":       f.Addr,
		"color":      f.Color,
		"duplicates": f.Duplicates,
		"height":     f.Height,
		"width":      f.Width,
	}
}

// loadConfig decodes the TOML file at path. Unknown keys are rejected so a
// typo does not silently fall back to a default.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// resolveConfigPath returns the config file to read, or "" if none applies.
// An explicit path must exist; the default location is optional.
func resolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if err := errors.ValidateInputFile(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", nil
	}
	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

// configAnnotation marks flags that config.toml may preset.
const configAnnotation = "arcview_config"

// configurable lets config.toml preset the named flags of cmd.
func configurable(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		_ = cmd.Flags().SetAnnotation(name, configAnnotation, []string{"true"})
	}
}

// applyConfig presets the running command's flags from the config file.
// Only flags marked with [configurable] are touched, and flags set on the
// command line are left alone.
func (c *CLI) applyConfig(cmd *cobra.Command, _ []string) error {
	path, err := resolveConfigPath(c.configPath)
	if err != nil || path == "" {
		return err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	for name, value := range cfg.flagValues() {
		if value == "" || flags.Changed(name) {
			continue
		}
		if f := flags.Lookup(name); f == nil || f.Annotations[configAnnotation] == nil {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s: key %q", path, name)
		}
	}
	c.Logger.Debug("Applied config", "path", path)
	return nil
}
