//! ptycat runs a shell (or any command) inside a pseudo-terminal, feeds its
//! raw output through a govte Processor into a terminal.TerminalBuffer, and
//! periodically renders the reconstructed screen to stdout. It doubles as a
//! live, end-to-end exercise of the parser/dispatcher/handler pipeline
//! against a real child process instead of canned test bytes.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/termkit/govte"
	"github.com/termkit/govte/terminal"
)

func main() {
	colors := flag.Bool("colors", false, "render with ANSI color codes reapplied")
	cols := flag.Int("cols", 80, "virtual terminal width")
	rows := flag.Int("rows", 24, "virtual terminal height")
	interval := flag.Duration("interval", 200*time.Millisecond, "render interval")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{os.Getenv("SHELL")}
		if args[0] == "" {
			args[0] = "/bin/sh"
		}
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(*rows), Cols: uint16(*cols)})
	if err != nil {
		log.Fatalf("starting pty: %v", err)
	}
	defer ptmx.Close()

	if stdinState, err := term.MakeRaw(int(os.Stdin.Fd())); err == nil {
		defer term.Restore(int(os.Stdin.Fd()), stdinState)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	go func() {
		for range sigCh {
			if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
				pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(h), Cols: uint16(w)})
			}
		}
	}()
	sigCh <- syscall.SIGWINCH

	buf := terminal.NewTerminalBuffer(*cols, *rows)
	processor := govte.NewProcessorWithBuffer(ptmx, buf)

	go io.Copy(ptmx, os.Stdin)

	readErr := make(chan error, 1)
	go func() {
		chunk := make([]byte, 4096)
		for {
			n, err := ptmx.Read(chunk)
			if n > 0 {
				if aerr := processor.Advance(buf, chunk[:n]); aerr != nil {
					log.Printf("device response write failed: %v", aerr)
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case err := <-readErr:
			if err != io.EOF {
				log.Printf("pty read error: %v", err)
			}
			cmd.Wait()
			return
		case <-ticker.C:
			fmt.Print("\x1b[H\x1b[2J")
			if *colors {
				fmt.Println(buf.GetDisplayWithColors())
			} else {
				fmt.Println(buf.GetDisplay())
			}
		}
	}
}
