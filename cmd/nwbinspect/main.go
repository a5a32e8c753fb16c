// Command nwbinspect validates and inspects NWB v1 electrophysiology files.
//
// Usage:
//
//	nwbinspect check session.nwb
//	nwbinspect info --format json session.nwb
//	nwbinspect list session.nwb
//	nwbinspect dump session.nwb > session.yaml
package main

import (
	"fmt"
	"os"

	"github.com/scigolib/nwb/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
