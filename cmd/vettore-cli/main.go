// Command vettore-cli is a small, single-process harness that drives the
// vettore library API end to end: create a collection, load vectors into
// it, search it, and re-rank results. It talks to an in-process
// *vettore.Database only — there is no daemon and no wire protocol.
package main

import (
	"fmt"
	"os"

	"github.com/elchemista/vettore/cmd/vettore-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
