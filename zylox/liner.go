package zylox

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glycerine/liner"
)

const historyFileName = ".zylox_history"

var completionKeywords = func() []string {
	words := append(KeywordNames(), "clock()", ".quit", ".ast ", ".tokens ", ".dump", ".save ", ".load ", ".verb")
	sort.Strings(words)
	return words
}()

// Prompter hands the repl one line at a time. With a liner.State it
// offers line editing, history and completion; without one it reads
// plain lines from reader, as under tests or emacs.
type Prompter struct {
	prompt   string
	prompter *liner.State
	reader   *bufio.Reader
	out      io.Writer
	histfn   string
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(home, historyFileName)
}

func NewPrompter(prompt string) *Prompter {
	p := &Prompter{
		prompt:   prompt,
		prompter: liner.NewLiner(),
		histfn:   historyPath(),
	}

	p.prompter.SetCtrlCAborts(false)
	p.prompter.SetCompleter(func(line string) (c []string) {
		for _, n := range completionKeywords {
			if strings.HasPrefix(n, strings.ToLower(line)) {
				c = append(c, n)
			}
		}
		return
	})

	if f, err := os.Open(p.histfn); err == nil {
		p.prompter.ReadHistory(f)
		f.Close()
	}

	return p
}

// NewPlainPrompter reads from r and writes prompts to out.
func NewPlainPrompter(prompt string, r io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		prompt: prompt,
		reader: bufio.NewReader(r),
		out:    out,
	}
}

func (p *Prompter) Close() {
	if p.prompter == nil {
		return
	}
	defer p.prompter.Close()
	if f, err := os.Create(p.histfn); err != nil {
		log.Print("Error writing history file: ", err)
	} else {
		p.prompter.WriteHistory(f)
		f.Close()
	}
}

// Getline returns io.EOF once input is exhausted.
func (p *Prompter) Getline() (line string, err error) {
	if p.prompter == nil {
		fmt.Fprint(p.out, p.prompt)
		line, err = p.reader.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		return strings.TrimRight(line, "\r\n"), err
	}

	line, err = p.prompter.Prompt(p.prompt)
	if err == nil {
		if strings.TrimSpace(line) != "" {
			p.prompter.AppendHistory(line)
		}
		return line, nil
	}
	if err == liner.ErrPromptAborted {
		return "", nil
	}
	return "", err
}
