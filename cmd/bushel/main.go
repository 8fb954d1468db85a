// Command bushel parses, highlights and fixes Bushel scripts, and manages
// the terminology catalog they require applications from.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
