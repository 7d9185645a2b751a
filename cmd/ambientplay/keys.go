package main

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// startKeys puts the terminal into raw mode and delivers key presses on the
// returned channel. When stdin is not a terminal the channel never fires.
// The returned function restores the terminal.
func startKeys(ctx context.Context) (<-chan byte, func()) {
	keys := make(chan byte)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return keys, func() {}
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		logrus.WithError(err).Warn("keyboard control disabled")
		return keys, func() {}
	}

	// Raw mode disables output post-processing, so bare newlines would not
	// return the cursor.
	out := logrus.StandardLogger().Out
	logrus.SetOutput(crlfWriter{out})

	go func() {
		buf := make([]byte, 16)
		for {
			n, err := os.Stdin.Read(buf)
			for _, b := range buf[:n] {
				select {
				case keys <- b:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	return keys, func() {
		logrus.SetOutput(out)
		_ = term.Restore(fd, old)
	}
}

type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
