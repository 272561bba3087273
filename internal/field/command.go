package field

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownCommand = errors.New("field: unknown command")

// Command names an entry point callers can trigger by name, as scripted
// trace events and key bindings do.
type Command string

const (
	CmdPinWhite        Command = "pin-white"
	CmdPinWhiteInstant Command = "pin-white-instant"
	CmdResume          Command = "resume"
	CmdHoverStart      Command = "hover-start"
	CmdHoverStop       Command = "hover-stop"
)

// Apply runs a scheduler command.
func (s *Scheduler) Apply(cmd Command, now time.Time) error {
	switch cmd {
	case CmdPinWhite:
		s.PinToWhite(now)
	case CmdPinWhiteInstant:
		s.PinToWhiteInstant(now)
	case CmdResume:
		s.ResumeLiving(now)
	default:
		return fmt.Errorf("%w: %q for scheduler", ErrUnknownCommand, cmd)
	}
	return nil
}

// Apply runs a hover command.
func (h *Hover) Apply(cmd Command, now time.Time) error {
	switch cmd {
	case CmdHoverStart:
		h.StartHoverAnimation(now)
	case CmdHoverStop:
		h.StopHoverAnimation(now)
	default:
		return fmt.Errorf("%w: %q for hover", ErrUnknownCommand, cmd)
	}
	return nil
}
