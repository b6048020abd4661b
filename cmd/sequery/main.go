// Command sequery queries the StackExchange API through the declared endpoints.
package main

import (
	"os"
)

func main() {
	root := newRootCommand(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
