//go:build !windows

package clipboard

import (
	"fmt"

	atotto "github.com/atotto/clipboard"
)

type portable struct{}

// Native returns the platform Copier. Outside Windows the copy goes through
// pbcopy or xclip/xsel/wl-copy, so the Writer options do not apply.
func Native(opts ...Option) Copier {
	return portable{}
}

func (portable) Copy(text string) error {
	if atotto.Unsupported {
		return ErrUnavailable
	}
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
