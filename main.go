package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/metikumi/metikoro/agent"
	"github.com/metikumi/metikoro/automatic"
	"github.com/metikumi/metikoro/backend"
	"github.com/metikumi/metikoro/config"
	"github.com/metikumi/metikoro/game"
)

const versionLine = "MetiKoro Simulation - Version 1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	agents := agent.NewRegistry()
	backends := backend.NewRegistry()
	cfg := config.New()
	result, err := cfg.Parse(args, agents.HasName, backends.HasName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		displayHelp(os.Stderr, agents, backends)
		return 1
	}
	switch result {
	case config.DisplayedHelp:
		displayHelp(os.Stdout, agents, backends)
		return 0
	case config.DisplayedVersion:
		fmt.Println(versionLine)
		return 0
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: cfg.NoColor})
	fmt.Println(versionLine)

	var playerAgents game.PlayerAgents
	for seat, selection := range cfg.Agents {
		playerAgent, err := agents.Create(selection.Name)
		if err != nil {
			log.Error().Err(err).Msg("creating agent failed")
			return 1
		}
		if err := playerAgent.Initialize(selection.Args); err != nil {
			log.Error().Err(err).Int("seat", seat).Msg("agent options invalid")
			return 1
		}
		playerAgents[seat] = playerAgent
	}
	store, err := backends.Create(cfg.Backend.Name)
	if err != nil {
		log.Error().Err(err).Msg("creating backend failed")
		return 1
	}
	if err := store.Initialize(cfg.Backend.Args); err != nil {
		log.Error().Err(err).Msg("backend options invalid")
		return 1
	}
	if err := store.Load(); err != nil {
		log.Error().Err(err).Msg("loading backend failed")
		return 1
	}

	supervisor := automatic.NewSupervisor(cfg, store, playerAgents, os.Stdout)
	supervisor.DisplayConfiguration()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)
	go func() {
		for range sig {
			log.Info().Msg("stop requested, finishing running games")
			supervisor.RequestStop()
		}
	}()
	go console(supervisor, sig)

	runErr := supervisor.Run(context.Background())
	signal.Stop(sig)
	for _, playerAgent := range playerAgents {
		playerAgent.Shutdown()
	}
	shutdownErr := store.Shutdown()
	if runErr != nil {
		log.Error().Err(runErr).Msg("simulation failed")
		return 1
	}
	if shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("backend shutdown failed")
		return 1
	}
	log.Info().Uint64("games", supervisor.GameCount()).Msg("simulation finished")
	return 0
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func consoleUsage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "status - print a status line\n")
	io.WriteString(w, "stop - finish running games and exit\n")
}

// console runs an interactive control loop next to the simulation.
func console(supervisor *automatic.Supervisor, sig chan<- os.Signal) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:      "\033[31mmetikoro>\033[0m ",
		HistoryFile: "/tmp/readline.tmp",
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Debug().Err(err).Msg("no interactive console")
		return
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		switch strings.TrimSpace(line) {
		case "bye", "exit", "stop":
			sig <- syscall.SIGINT
			return
		case "status":
			supervisor.PrintStatus()
		case "help":
			consoleUsage(l.Stderr())
		case "":
		default:
			consoleUsage(l.Stderr())
		}
	}
}
