package graphic

import (
	"os"
	"testing"
)

func TestPrepareTerminalTmux(t *testing.T) {
	t.Setenv("TERM", "tmux-256color")
	t.Setenv("TERMINFO", "/usr/share/terminfo")

	env, err := prepareTerminal()
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := os.LookupEnv("TERMINFO"); ok {
		t.Fatal("TERMINFO still set inside tmux")
	}

	if err := env.restore(); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("TERMINFO"); got != "/usr/share/terminfo" {
		t.Fatalf("TERMINFO = %q after restore", got)
	}
}

func TestPrepareTerminalPlain(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("TERMINFO", "/opt/terminfo")

	env, err := prepareTerminal()
	if err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("TERMINFO"); got != "/opt/terminfo" {
		t.Fatalf("TERMINFO = %q, want untouched", got)
	}

	if err := env.restore(); err != nil {
		t.Fatal(err)
	}
}
