// Copyright (c) 2016-2019, Andreas T Jonsson
// All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gopherc/fibloop/cmd/benchrun/run"
	"github.com/gopherc/fibloop/cmd/benchrun/suite"
	"github.com/gopherc/fibloop/cmd/benchrun/version"
)

func main() {
	if len(os.Args) < 2 {
		printHeader()
		fmt.Fprintln(os.Stderr, "Tools:")
		printTools()
		os.Exit(-1)
	}

	tool := os.Args[1]
	args, help := stripHelp(os.Args[2:])
	os.Args = append(os.Args[:1], args...)
	if help && tool != "help" {
		printToolHelp(tool)
		return
	}

	switch tool {
	case "run":
		os.Exit(run.Run())
	case "suite":
		os.Exit(suite.Suite())
	case "version":
		fmt.Println("benchrun version:", version.Version)
	case "help", "-help", "-h":
		if len(os.Args) == 2 {
			printToolHelp(os.Args[1])
			return
		}
		printHeader()
		printTools()
	default:
		fmt.Fprintln(os.Stderr, "Invalid tool:", tool)
		printTools()
		os.Exit(-1)
	}
}

// stripHelp removes -h and -help from the tool flags. Arguments from the
// first non-flag on belong to the measured command and are kept.
func stripHelp(args []string) ([]string, bool) {
	var out []string
	help := false
	for i, a := range args {
		if !strings.HasPrefix(a, "-") || a == "--" {
			return append(out, args[i:]...), help
		}
		if a == "-h" || a == "-help" || a == "--help" {
			help = true
			continue
		}
		out = append(out, a)
	}
	return out, help
}

func printHeader() {
	fmt.Println("benchrun - benchmark runner\nCopyright (C) 2016-2019 Andreas T Jonsson")
	fmt.Println()
	fmt.Println("You can run 'benchrun help [tool]' for more information of a specific tool.")
	fmt.Println()
}

func printToolHelp(tool string) {
	switch tool {
	case "run":
		run.PrintDefaults()
	case "suite":
		suite.PrintDefaults()
	default:
		fmt.Println(tool, "has no options")
	}
}

func printTools() {
	fmt.Println("\trun\t" + run.About())
	fmt.Println("\tsuite\t" + suite.About())
	fmt.Println("\thelp\tlist tools and options")
	fmt.Println("\tversion\t" + version.About())
}
