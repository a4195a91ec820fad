// Command gaussproc fits Gaussian process regression models from the command line.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
