// Command sunswarmctl runs and inspects solar node population simulations.
//
// Usage:
//
//	sunswarmctl run       [flags]   start a simulation run
//	sunswarmctl profiles  [flags]   print the model power catalog
//	sunswarmctl hardware            print the hardware catalog
//	sunswarmctl report    [flags]   inspect stored run diagnostics
package main

import (
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: sunswarmctl <command> [flags]

commands:
  run       start a simulation run
  profiles  print the model power catalog
  hardware  print the hardware catalog
  report    inspect stored run diagnostics

Run "sunswarmctl <command> -h" for command flags. Environment variables
prefixed SUNSWARM_ provide defaults; flags override them.`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runSimulation(os.Args[2:])
	case "profiles":
		err = runProfiles(os.Args[2:])
	case "hardware":
		err = runHardware(os.Args[2:])
	case "report":
		err = runReport(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "sunswarmctl: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "sunswarmctl: %v\n", err)
		os.Exit(1)
	}
}
