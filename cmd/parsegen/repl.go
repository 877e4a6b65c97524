package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dekarrin/parsegen"
)

// runRepl starts an interactive shell over an already-built Frontend: each
// line read is tokenized and parsed, and either the resulting value/tree or
// the parse error is printed. Typing "quit" or reaching end-of-input ends
// the session.
func runRepl(fe *parsegen.Frontend) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "parsegen> ",
	})
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		if strings.HasPrefix(line, ":tokenize ") {
			toks, err := fe.Tokenize(strings.NewReader(strings.TrimPrefix(line, ":tokenize ")))
			if err != nil {
				fmt.Println(err.Error())
				continue
			}
			for _, t := range toks {
				fmt.Println(t.String())
			}
			continue
		}

		result, err := fe.AnalyzeString(line)
		if err != nil {
			fmt.Println(err.Error())
			continue
		}
		fmt.Printf("%v\n", result)
	}
}
