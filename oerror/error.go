package oerror

import (
	"errors"
	"fmt"
)

// MotionError is an error raised by the motion core.
type MotionError struct {
	Err string
}

// New returns a MotionError with a formatted message.
func New(format string, args ...any) *MotionError {
	return &MotionError{Err: fmt.Sprintf(format, args...)}
}

func (e *MotionError) Error() string {
	return e.Err
}

var (
	ErrInvalidEntity    = errors.New("entity does not exist")
	ErrSelfAttach       = errors.New("entity cannot attach to itself or to something it carries")
	ErrInPack           = errors.New("entity is stored in an inventory")
	ErrAlreadyAttached  = errors.New("entity is already attached to another holder")
	ErrSlotOccupied     = errors.New("grip slot is occupied")
	ErrInvalidSlot      = errors.New("grip slot is not part of the holder's layout")
	ErrNotMountable     = errors.New("holder cannot be ridden")
	ErrSettingsMissing  = errors.New("settings file doesn't exist")
	ErrSettingsExisting = errors.New("settings file already exists")
)
