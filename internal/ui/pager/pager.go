// Package pager shows long, read-only output in the ov terminal pager.
package pager

import (
	"io"
	"strings"

	"github.com/noborus/ov/oviewer"
)

// Show pages content until the operator quits the pager
func Show(content string) error {
	return ShowReader(strings.NewReader(content))
}

// ShowReader pages everything read from r
func ShowReader(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// leave the screen as it was when the pager exits
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
