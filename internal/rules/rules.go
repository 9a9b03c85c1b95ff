package rules

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/envdoctor/envdoctor/internal/constants"
	"github.com/envdoctor/envdoctor/internal/logger"
)

//go:embed rules.toml
var defaultRules []byte

// Ruleset holds the compiled allow and deny tables. It is immutable after
// load; the classifier evaluates Deny before Allow.
type Ruleset struct {
	Deny  []Pattern
	Allow []Pattern
}

var (
	globalRules      *Ruleset
	rulesInitialized bool
	initErr          error
	rulesPath        string
)

// rawFile mirrors the TOML document layout.
type rawFile struct {
	Allow rawAllow `toml:"allow"`
	Deny  rawDeny  `toml:"deny"`
}

type rawAllow struct {
	Version []rawVersion `toml:"version"`
	Probe   []rawProbe   `toml:"probe"`
	Exact   []rawExact   `toml:"exact"`
	Regex   []rawRegex   `toml:"regex"`
}

type rawDeny struct {
	Simple []rawSimple `toml:"simple"`
	Regex  []rawRegex  `toml:"regex"`
}

type rawVersion struct {
	Name  string   `toml:"name"`
	Tools []string `toml:"tools"`
	Flags []string `toml:"flags"`
}

type rawProbe struct {
	Name     string   `toml:"name"`
	Commands []string `toml:"commands"`
}

type rawExact struct {
	Name     string   `toml:"name"`
	Commands []string `toml:"commands"`
}

type rawSimple struct {
	Name     string   `toml:"name"`
	Commands []string `toml:"commands"`
}

type rawRegex struct {
	Name    string `toml:"name"`
	Pattern string `toml:"pattern"`
}

// Load parses TOML rule data and compiles it into a Ruleset.
func Load(data []byte) (*Ruleset, error) {
	var raw rawFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	rs := &Ruleset{}

	for _, v := range raw.Allow.Version {
		if len(v.Tools) == 0 || len(v.Flags) == 0 {
			continue
		}
		pattern := BuildVersionPattern(v.Tools, v.Flags)
		p, err := Compile(pattern, v.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid version rule %q: %w", v.Name, err)
		}
		p.Type = "version"
		rs.Allow = append(rs.Allow, p)
	}

	for _, pr := range raw.Allow.Probe {
		for _, cmd := range pr.Commands {
			p, err := Compile(BuildProbePattern(cmd), pr.Name)
			if err != nil {
				return nil, fmt.Errorf("invalid probe rule %q: %w", cmd, err)
			}
			p.Type = "probe"
			rs.Allow = append(rs.Allow, p)
		}
	}

	for _, ex := range raw.Allow.Exact {
		for _, cmd := range ex.Commands {
			p, err := Compile(BuildExactPattern(cmd), ex.Name)
			if err != nil {
				return nil, fmt.Errorf("invalid exact rule %q: %w", cmd, err)
			}
			p.Type = "simple"
			rs.Allow = append(rs.Allow, p)
		}
	}

	for _, rx := range raw.Allow.Regex {
		if rx.Pattern == "" {
			continue
		}
		p, err := Compile(rx.Pattern, rx.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid allow regex %q: %w", rx.Pattern, err)
		}
		p.Type = "regex"
		rs.Allow = append(rs.Allow, p)
	}

	for _, s := range raw.Deny.Simple {
		for _, cmd := range s.Commands {
			// Deny matching is case-insensitive.
			p, err := Compile(`(?i)`+BuildSimplePattern(cmd), s.Name)
			if err != nil {
				return nil, fmt.Errorf("invalid deny rule %q: %w", cmd, err)
			}
			p.Type = "simple"
			rs.Deny = append(rs.Deny, p)
		}
	}

	for _, rx := range raw.Deny.Regex {
		if rx.Pattern == "" {
			continue
		}
		pattern := rx.Pattern
		if !hasCaseFlag(pattern) {
			pattern = `(?i)` + pattern
		}
		p, err := Compile(pattern, rx.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid deny regex %q: %w", rx.Pattern, err)
		}
		p.Type = "regex"
		rs.Deny = append(rs.Deny, p)
	}

	return rs, nil
}

var caseFlagRe = regexp.MustCompile(`^\(\?[a-z]*i[a-z]*\)`)

func hasCaseFlag(pattern string) bool {
	return caseFlagRe.MatchString(pattern)
}

// GetConfigDir returns the rules config directory path.
// Uses ENVDOCTOR_CONFIG env var if set, otherwise ~/.config/envdoctor
func GetConfigDir() (string, error) {
	if dir := os.Getenv(constants.EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", constants.AppName), nil
}

// WriteDefault writes the embedded default rules file into the config
// directory if one does not already exist. Returns the file path.
func WriteDefault() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(configDir, constants.DirMode); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	path := filepath.Join(configDir, constants.RulesFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, defaultRules, constants.FileMode); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", constants.RulesFileName, err)
	}
	return path, nil
}

// loadEmbeddedDefaults loads the embedded default rules. The embedded file
// is validated by tests, so a parse failure here is a programmer error.
func loadEmbeddedDefaults() *Ruleset {
	rs, err := Load(defaultRules)
	if err != nil {
		panic(err)
	}
	return rs
}

// Init loads the ruleset, preferring a user rules file in the config
// directory and falling back to embedded defaults on any failure.
func Init() error {
	if rulesInitialized {
		return initErr
	}

	rulesInitialized = true

	configDir, err := GetConfigDir()
	if err != nil {
		logger.Debug("failed to get config dir, using embedded rules", "error", err)
		globalRules = loadEmbeddedDefaults()
		initErr = err
		return err
	}

	path := filepath.Join(configDir, constants.RulesFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("failed to read rules file, using embedded rules", "path", path, "error", err)
		}
		globalRules = loadEmbeddedDefaults()
		return nil
	}

	rs, err := Load(data)
	if err != nil {
		logger.Debug("failed to parse rules file, using embedded rules", "path", path, "error", err)
		globalRules = loadEmbeddedDefaults()
		initErr = fmt.Errorf("failed to load %s: %w", path, err)
		return initErr
	}

	rulesPath = path
	globalRules = rs
	logger.Debug("rules loaded",
		"path", path,
		"deny", len(rs.Deny),
		"allow", len(rs.Allow))
	return nil
}

// Get returns the current ruleset, initializing with defaults if needed.
func Get() *Ruleset {
	if !rulesInitialized {
		Init()
	}
	return globalRules
}

// Path returns the path of the loaded user rules file, or "" when the
// embedded defaults are active.
func Path() string {
	return rulesPath
}

// InitError returns the error from rule loading, if any.
func InitError() error {
	return initErr
}

// Reset resets the ruleset state. Used for testing.
func Reset() {
	rulesInitialized = false
	globalRules = nil
	initErr = nil
	rulesPath = ""
}

// DefaultTOML returns the embedded default rules document.
func DefaultTOML() []byte {
	return defaultRules
}
