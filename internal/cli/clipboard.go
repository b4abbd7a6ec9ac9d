package cli

import (
	"errors"

	"github.com/atotto/clipboard"
)

var ErrClipboardUnsupported = errors.New("no clipboard utility available")

// SystemClipboard writes to the desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}
