// Command contestsim replays canned match situations through the contest
// pipeline and prints what the provider and every agent decided each cycle.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
