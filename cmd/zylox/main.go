/*
The zylox command runs a Lox script, a -c program, or the repl.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glycerine/zylox/zylox"
)

func usage(myflags *flag.FlagSet) {
	fmt.Printf("Usage: zylox [flags] [script]\n")
	myflags.PrintDefaults()
	os.Exit(zylox.ExitUsage)
}

func main() {
	cfg := zylox.NewZyloxConfig("zylox")
	cfg.DefineFlags()
	err := cfg.Flags.Parse(os.Args[1:])
	if err == flag.ErrHelp {
		usage(cfg.Flags)
	}

	if err != nil {
		usage(cfg.Flags)
	}
	err = cfg.ValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "zylox command line error: '%v'\n", err)
		usage(cfg.Flags)
	}

	// the library does all the heavy lifting.
	os.Exit(zylox.ReplMain(cfg))
}
