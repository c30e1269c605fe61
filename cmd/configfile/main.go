// configfile reads and edits configuration files through dotted keys.
package main

import (
	"os"

	"github.com/thirteen37/configfile/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
