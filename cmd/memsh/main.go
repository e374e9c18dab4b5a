package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"

	"github.com/tuannm99/memsim/internal/logx"
	"github.com/tuannm99/memsim/internal/mmu"
	"github.com/tuannm99/memsim/internal/shell"
)

func main() {
	var (
		policyName = flag.String("policy", "lru", "replacement policy: rand, lru or clock")
		frames     = flag.Int("frames", 4, "number of physical frames")
		seed       = flag.Uint64("seed", mmu.DefaultSeed, "seed for the rand policy")
		logLevel   = flag.String("log-level", "warn", "log level: debug, info, warn, error")
	)
	flag.Parse()

	logx.Init(os.Stderr, *logLevel)

	policy, err := mmu.ParsePolicy(*policyName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "memsh: %v\n", err)
		os.Exit(2)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          fmt.Sprintf("memsh(%s)> ", policy),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	out := rl.Stdout()
	sess, err := shell.NewSession(out, func() (mmu.MMU, error) {
		return mmu.New(policy, *frames, mmu.WithSeed(*seed), mmu.WithTraceOutput(out))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "memsh: %v\n", err)
		os.Exit(2)
	}

	fmt.Fprintf(out, "%s with %d frames, type help for help\n", policy, *frames)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			// EOF
			return
		}

		err = sess.Exec(line)
		if errors.Is(err, shell.ErrQuit) {
			return
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}
