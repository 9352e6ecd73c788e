package inbox

import (
	"errors"
	"fmt"

	"github.com/nikbrunner/inbox/internal/model"
)

var (
	ErrNothingToAccept = errors.New("no target folder selected")
	ErrUnknownFile     = errors.New("file is no longer in the inbox")
	ErrNoAnalyzer      = errors.New("no analyzer configured")
)

// Notice turns an accept failure into the message shown to the user.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	var dup *model.DuplicateTargetError
	if errors.As(err, &dup) {
		return fmt.Sprintf("File already exists: %s", dup.Path)
	}
	return fmt.Sprintf("Move failed: %v", err)
}
