package docs

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

//go:embed usage.md
var usage string

// Run renders the usage guide to the terminal.
func Run() error {
	out, err := glamour.Render(usage, "auto")

	if err != nil {
		fmt.Fprintln(os.Stdout, usage)

		return nil
	}

	fmt.Fprintln(os.Stdout, out)

	return nil
}
