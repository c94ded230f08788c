package main

import (
	"fmt"
	"io"

	"github.com/metikumi/metikoro/agent"
	"github.com/metikumi/metikoro/backend"
)

const mainHelp = `Usage: metikoro [<options>] [<n>:<agent> [<agent options>]] <backend> [<backend options>]

Main Options:
  -h, --help                     Display this help and exit.
  -v, --version                  Display the version and exit.
  -t=<n>, --threads=<n>          Number of worker threads (1-100, default 16).
  -g=<n>, --games=<n>            Stop after this many games (0 = unlimited).
  --status-update-interval=<ms>  Milliseconds between status updates
                                 (100-100000, default 250).
  --plain-status                 Append status lines instead of rewriting one.
  --no-color                     Disable ANSI output, implies --plain-status.
  --console-width=<n>            Width of the status line (10-1000, default 100).

Every option can also be set with a METIKORO_ environment variable, for
example METIKORO_THREADS=32.

Players:
  <n>:<agent> assigns an agent to player <n> (0-3). Players without an
  assignment use the "random" agent. Exactly one backend is required.
`

// displayHelp writes the usage text with the options of every
// registered agent and backend.
func displayHelp(w io.Writer, agents *agent.Registry, backends *backend.Registry) {
	fmt.Fprintln(w, versionLine)
	fmt.Fprintln(w)
	fmt.Fprint(w, mainHelp)
	fmt.Fprintln(w)
	fmt.Fprint(w, agents.Help())
	fmt.Fprint(w, backends.Help())
}
