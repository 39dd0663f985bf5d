// Package clipboard copies text to the system clipboard: an OSC 52 escape
// written to the controlling terminal first, then the platform's clipboard
// command.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	tea "charm.land/bubbletea/v2"
)

// CopiedMsg reports the outcome of Cmd.
type CopiedMsg struct {
	Text string
	Err  error
}

// openTTY returns the terminal the escape is written to. Tests replace it.
var openTTY = func() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}

// Cmd copies text off the UI goroutine.
func Cmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Text: text, Err: Copy(text)}
	}
}

// Copy tries OSC 52, then the native command.
func Copy(text string) error {
	if err := copyOSC52(text); err == nil {
		return nil
	}
	return copyNative(text)
}

// copyOSC52 goes to /dev/tty rather than stdout, which bubbletea owns.
func copyOSC52(text string) error {
	tty, err := openTTY()
	if err != nil {
		return err
	}
	defer tty.Close()
	_, err = fmt.Fprint(tty, osc52(text))
	return err
}

func osc52(text string) string {
	return "\033]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}

func copyNative(text string) error {
	name, args := nativeCommand()
	if name == "" {
		return fmt.Errorf("clipboard: no clipboard command for %s", runtime.GOOS)
	}
	c := exec.Command(name, args...)
	stdin, err := c.StdinPipe()
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	if err := c.Start(); err != nil {
		return fmt.Errorf("clipboard: start %s: %w", name, err)
	}
	_, werr := io.WriteString(stdin, text)
	cerr := stdin.Close()
	if err := c.Wait(); err != nil {
		return fmt.Errorf("clipboard: %s: %w", name, err)
	}
	if werr != nil {
		return fmt.Errorf("clipboard: write: %w", werr)
	}
	return cerr
}

func nativeCommand() (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "pbcopy", nil
	case "windows":
		return "clip", nil
	}
	for _, c := range []struct {
		name string
		args []string
	}{
		{"wl-copy", nil},
		{"xclip", []string{"-in", "-selection", "clipboard"}},
		{"xsel", []string{"--clipboard", "--input"}},
	} {
		if path, err := exec.LookPath(c.name); err == nil {
			return path, c.args
		}
	}
	return "", nil
}
