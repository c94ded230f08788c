// Package config holds the simulation settings, layered from environment
// variables and the command line.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	minThreads = 1
	maxThreads = 100

	minStatusUpdateInterval = 100 * time.Millisecond
	maxStatusUpdateInterval = 100 * time.Second

	// plainStatusMinInterval applies when ANSI output is disabled; plain
	// status lines are append-only and flood slow terminals.
	plainStatusMinInterval = time.Second

	minConsoleWidth = 10
	maxConsoleWidth = 1000
)

// ParseResult tells the caller how to continue after parsing.
type ParseResult uint8

const (
	StartSimulation ParseResult = iota
	DisplayedHelp
	DisplayedVersion
)

// Selection is one chosen agent or backend with its own arguments.
type Selection struct {
	Name string
	Args []string
}

// Config is the complete simulation configuration.
type Config struct {
	Threads              int
	MaximumGames         uint64
	StatusUpdateInterval time.Duration
	PlainStatus          bool
	NoColor              bool
	ConsoleWidth         int
	Agents               [4]Selection
	Backend              Selection
}

// NameChecker reports whether a registry knows a name.
type NameChecker func(name string) bool

// New returns the configuration defaults, layered with METIKORO_
// environment variables.
func New() *Config {
	v := viper.New()
	v.SetEnvPrefix("metikoro")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("threads", 16)
	v.SetDefault("games", 0)
	v.SetDefault("status-update-interval", 250)
	v.SetDefault("plain-status", false)
	v.SetDefault("no-color", false)
	v.SetDefault("console-width", 100)
	return &Config{
		Threads:              clampInt(v.GetInt("threads"), minThreads, maxThreads),
		MaximumGames:         v.GetUint64("games"),
		StatusUpdateInterval: clampInterval(time.Duration(v.GetInt("status-update-interval")) * time.Millisecond),
		PlainStatus:          v.GetBool("plain-status"),
		NoColor:              v.GetBool("no-color"),
		ConsoleWidth:         clampInt(v.GetInt("console-width"), minConsoleWidth, maxConsoleWidth),
	}
}

// Parse reads the command line: main options first, then agent and
// backend selections, each followed by its own options.
//
// Usage: metikoro [<options>] [<n>:<agent> [<agent options>]] <backend> [<backend options>]
func (c *Config) Parse(args []string, isAgent, isBackend NameChecker) (ParseResult, error) {
	rest, result, err := c.parseMainOptions(args)
	if err != nil || result != StartSimulation {
		return result, err
	}
	if c.NoColor {
		c.PlainStatus = true
		if c.StatusUpdateInterval < plainStatusMinInterval {
			c.StatusUpdateInterval = plainStatusMinInterval
		}
	}
	if err := c.parseSelections(rest, isAgent, isBackend); err != nil {
		return StartSimulation, err
	}
	if c.Backend.Name == "" {
		return StartSimulation, fmt.Errorf("no backend specified")
	}
	for i := range c.Agents {
		if c.Agents[i].Name == "" {
			c.Agents[i].Name = "random"
		}
	}
	return StartSimulation, nil
}

func (c *Config) parseMainOptions(args []string) ([]string, ParseResult, error) {
	for i, arg := range args {
		switch {
		case arg == "--help" || arg == "-h":
			return nil, DisplayedHelp, nil
		case arg == "--version" || arg == "-v":
			return nil, DisplayedVersion, nil
		case strings.HasPrefix(arg, "--threads=") || strings.HasPrefix(arg, "-t="):
			value, err := intOption(arg)
			if err != nil {
				return nil, StartSimulation, err
			}
			c.Threads = clampInt(value, minThreads, maxThreads)
		case strings.HasPrefix(arg, "--games=") || strings.HasPrefix(arg, "-g="):
			value, err := strconv.ParseUint(optionValue(arg), 10, 64)
			if err != nil {
				return nil, StartSimulation, fmt.Errorf("invalid game count %q: %w", optionValue(arg), err)
			}
			c.MaximumGames = value
		case arg == "--no-color":
			c.NoColor = true
		case strings.HasPrefix(arg, "--status-update-interval="):
			value, err := intOption(arg)
			if err != nil {
				return nil, StartSimulation, err
			}
			c.StatusUpdateInterval = clampInterval(time.Duration(value) * time.Millisecond)
		case arg == "--plain-status":
			c.PlainStatus = true
		case strings.HasPrefix(arg, "--console-width="):
			value, err := intOption(arg)
			if err != nil {
				return nil, StartSimulation, err
			}
			c.ConsoleWidth = clampInt(value, minConsoleWidth, maxConsoleWidth)
		case strings.HasPrefix(arg, "-"):
			return nil, StartSimulation, fmt.Errorf("unknown main option: %s", arg)
		default:
			return args[i:], StartSimulation, nil
		}
	}
	return nil, StartSimulation, nil
}

// parseSelections consumes "<n>:<agent>" seat assignments and one
// backend name, each followed by its leading-dash options.
func (c *Config) parseSelections(args []string, isAgent, isBackend NameChecker) error {
	for len(args) > 0 {
		arg := args[0]
		if len(arg) >= 3 && arg[1] == ':' && arg[0] >= '0' && arg[0] <= '3' {
			name := arg[2:]
			if !isAgent(name) {
				return fmt.Errorf("unknown agent: %s", name)
			}
			index := int(arg[0] - '0')
			if c.Agents[index].Name != "" {
				return fmt.Errorf("only one agent can be specified for each player")
			}
			c.Agents[index].Name = name
			c.Agents[index].Args, args = splitOptions(args[1:])
			continue
		}
		if isBackend(arg) {
			if c.Backend.Name != "" {
				return fmt.Errorf("only one backend can be specified")
			}
			c.Backend.Name = arg
			c.Backend.Args, args = splitOptions(args[1:])
			continue
		}
		return fmt.Errorf("unknown agent or backend: %s", arg)
	}
	return nil
}

// splitOptions takes the leading-dash arguments as options of the
// preceding selection.
func splitOptions(args []string) ([]string, []string) {
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

func optionValue(arg string) string {
	return arg[strings.IndexByte(arg, '=')+1:]
}

func intOption(arg string) (int, error) {
	value, err := strconv.Atoi(optionValue(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid value in %q: %w", arg, err)
	}
	return value, nil
}

func clampInt(value, low, high int) int {
	return min(max(value, low), high)
}

func clampInterval(interval time.Duration) time.Duration {
	return min(max(interval, minStatusUpdateInterval), maxStatusUpdateInterval)
}
