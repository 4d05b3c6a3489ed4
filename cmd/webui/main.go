// Command webui runs browser UI features against a Selenium grid.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/testinium/steps/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	glog.Flush()
	if err == nil {
		return
	}
	var exit *cli.ExitError
	if errors.As(err, &exit) {
		os.Exit(exit.Code)
	}
	fmt.Fprintf(os.Stderr, "webui: %v\n", err)
	os.Exit(1)
}
