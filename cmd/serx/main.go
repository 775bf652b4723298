package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	command := os.Args[1]
	switch command {
	case "init":
		err = initCommand(os.Args[2:], os.Stdout)
	case "validate":
		err = validateCommand(os.Args[2:], os.Stdout)
	case "get":
		err = getCommand(os.Args[2:], os.Stdout)
	case "list":
		err = listCommand(os.Args[2:], os.Stdout)
	case "version":
		versionCommand(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", command, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  init      Initialize configuration file\n")
	fmt.Fprintf(os.Stderr, "  validate  Validate configuration file\n")
	fmt.Fprintf(os.Stderr, "  get       Print a stored document\n")
	fmt.Fprintf(os.Stderr, "  list      List document ids of a collection\n")
	fmt.Fprintf(os.Stderr, "  version   Show version information\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
