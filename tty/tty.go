// Package tty implements the console mirror and the completion
// acknowledgement for a terminal session.
package tty

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pagesnap"
	"github.com/mattn/go-isatty"
)

// Ensure Console implements pagesnap.Console at compile time.
var _ pagesnap.Console = (*Console)(nil)

// Console writes banner-prefixed records to a writer.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Log writes the banner on its own line followed by body.
func (c *Console) Log(banner, body string) error {
	_, err := fmt.Fprintf(c.w, "%s\n%s\n", banner, body)
	return err
}

// Ensure Notifier implements pagesnap.Notifier at compile time.
var _ pagesnap.Notifier = (*Notifier)(nil)

// Notifier prints a message and, when pausing is enabled, waits for the
// user to press Enter. Input that is a file but not a terminal never blocks,
// so scripted runs do not hang.
type Notifier struct {
	in    io.Reader
	out   io.Writer
	pause bool
}

// NewNotifier creates a Notifier reading acknowledgements from in.
func NewNotifier(in io.Reader, out io.Writer, pause bool) *Notifier {
	return &Notifier{in: in, out: out, pause: pause}
}

// Notify prints message and blocks until acknowledged if configured to.
func (n *Notifier) Notify(message string) error {
	if _, err := fmt.Fprintln(n.out, message); err != nil {
		return err
	}
	if !n.pause || !interactive(n.in) {
		return nil
	}

	if _, err := fmt.Fprint(n.out, "Press Enter to continue..."); err != nil {
		return err
	}
	_, err := bufio.NewReader(n.in).ReadString('\n')
	if err == io.EOF {
		return nil
	}
	return err
}

// interactive reports whether r can deliver a keypress.
func interactive(r io.Reader) bool {
	if r == nil {
		return false
	}
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
