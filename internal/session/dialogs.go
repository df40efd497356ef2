package session

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrCanceled is returned by Dialogs.SavePath when the user backs out.
var ErrCanceled = errors.New("session: dialog canceled")

// Dialogs are the user-facing prompts of a save action.
type Dialogs interface {
	// SavePath asks where to write; defaultName carries the default
	// extension.
	SavePath(defaultName string) (string, error)
	Warn(title, msg string)
	Error(title, msg string)
	Info(title, msg string)
}

// SaveWithDialogs runs the interactive save flow. Saving before a sigil
// exists raises a warning and writes nothing, a cancelled dialog does
// nothing, and write failures are reported through an error dialog. The
// returned error is what the user was shown, if anything.
func (s *Session) SaveWithDialogs(d Dialogs) error {
	if !s.generated {
		d.Warn("No Sigil", "Please generate a sigil before saving.")
		return ErrNoSigil
	}

	path, err := d.SavePath(s.DefaultName())
	if errors.Is(err, ErrCanceled) || (err == nil && path == "") {
		return nil
	}
	if err != nil {
		d.Error("Error", fmt.Sprintf("An error occurred while saving:\n%v", err))
		return err
	}

	animated := s.HasAnimation()
	out, err := s.Save(path)
	if err != nil {
		s.logger.Error("save failed", "path", path, "err", err)
		d.Error("Error", fmt.Sprintf("An error occurred while saving:\n%v", err))
		return err
	}
	if animated {
		d.Info("Saved", "Animated sigil saved as "+filepath.Base(out))
	} else {
		d.Info("Saved", "Sigil saved as "+filepath.Base(out))
	}
	return nil
}
