package commands

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// errWriter returns the root command's error writer, or stderr when unset.
func errWriter(c *cli.Command) io.Writer {
	if w := c.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
