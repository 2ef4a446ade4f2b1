package zylox

import (
	"flag"
	"fmt"
)

// configure a zylox repl
type ZyloxConfig struct {
	CpuProfile string
	MemProfile string
	Flags      *flag.FlagSet
	Command    string
	Quiet      bool
	Trace      bool
	DumpTokens bool
	DumpAst    bool
	DumpJSON   bool
	CacheDir   string

	// liner bombs under emacs, avoid it with this flag.
	NoLiner bool
	Prompt  string // default "> "
}

func NewZyloxConfig(cmdname string) *ZyloxConfig {
	return &ZyloxConfig{
		Flags: flag.NewFlagSet(cmdname, flag.ContinueOnError),
	}
}

// call DefineFlags before myflags.Parse()
func (c *ZyloxConfig) DefineFlags() {
	c.Flags.StringVar(&c.CpuProfile, "cpuprofile", "", "write cpu profile to file")
	c.Flags.StringVar(&c.MemProfile, "memprofile", "", "write mem profile to file")
	c.Flags.StringVar(&c.Command, "c", "", "program text to run instead of a file or the repl")
	c.Flags.BoolVar(&c.Quiet, "quiet", false, "start repl without printing the version banner")
	c.Flags.BoolVar(&c.Trace, "trace", false, "trace execution (warning: very verbose and slow)")
	c.Flags.BoolVar(&c.DumpTokens, "tokens", false, "print the token stream as JSON instead of running")
	c.Flags.BoolVar(&c.DumpAst, "ast", false, "print the syntax tree instead of running")
	c.Flags.BoolVar(&c.DumpJSON, "astjson", false, "print the syntax tree as JSON instead of running")
	c.Flags.StringVar(&c.CacheDir, "cache", "", "directory for the scanned-token cache")
	c.Flags.BoolVar(&c.NoLiner, "noliner", false, "read the repl with a plain line reader, no line editing")
}

// call c.ValidateConfig() after myflags.Parse()
func (c *ZyloxConfig) ValidateConfig() error {
	if c.Prompt == "" {
		c.Prompt = "> "
	}
	dumps := 0
	for _, on := range []bool{c.DumpTokens, c.DumpAst, c.DumpJSON} {
		if on {
			dumps++
		}
	}
	if dumps > 1 {
		return fmt.Errorf("-tokens, -ast and -astjson are mutually exclusive")
	}
	if n := len(c.Flags.Args()); n > 1 {
		return fmt.Errorf("expected at most one script path, got %d arguments", n)
	}
	if c.Command != "" && len(c.Flags.Args()) > 0 {
		return fmt.Errorf("-c cannot be combined with a script path")
	}
	return nil
}

// ScriptPath is the positional file argument, or "" for the repl.
func (c *ZyloxConfig) ScriptPath() string {
	if args := c.Flags.Args(); len(args) > 0 {
		return args[0]
	}
	return ""
}
