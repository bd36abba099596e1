package graphic

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// terminalEnv snapshots the environment termbox reads at init so it can be
// put back when the preview closes.
type terminalEnv struct {
	terminfo    string
	hadTerminfo bool
}

// prepareTerminal works around TERM/TERMINFO combinations termbox can not
// start with. tmux sessions that carry a TERMINFO for the outer terminal fail
// to init, so TERMINFO is cleared for the life of the preview.
func prepareTerminal() (*terminalEnv, error) {
	env := &terminalEnv{}
	env.terminfo, env.hadTerminfo = os.LookupEnv("TERMINFO")

	if env.hadTerminfo && strings.HasPrefix(os.Getenv("TERM"), "tmux") {
		if err := os.Unsetenv("TERMINFO"); err != nil {
			return nil, errors.Wrap(err, "unset TERMINFO")
		}
	}

	return env, nil
}

// restore puts TERMINFO back the way prepareTerminal found it.
func (env *terminalEnv) restore() error {
	if !env.hadTerminfo {
		return nil
	}

	return errors.Wrap(os.Setenv("TERMINFO", env.terminfo), "restore TERMINFO")
}
