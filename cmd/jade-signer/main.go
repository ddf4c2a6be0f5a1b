// Command jade-signer is the single binary spec.md §6 describes: an
// offline key custody and transaction-signing service exposed over
// JSON-RPC 2.0, with no other entry point into the keystore engine.
package main

import (
	"fmt"
	"os"

	"github.com/etclabscore/jade-signer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jade-signer:", err)
		os.Exit(1)
	}
}
