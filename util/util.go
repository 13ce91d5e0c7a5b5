package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

var INTERNAL_ERROR = 1

func Bail(err error) {
	if err != nil {
		log.WithError(err).Error("benchmon: aborting")
		os.Exit(INTERNAL_ERROR)
	}
}

func MessageBail(msg string) {
	log.Error(msg)
	os.Exit(INTERNAL_ERROR)
}

// CheckExecutable reports whether path is a regular file the current user
// may execute.
func CheckExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	if err := unix.Access(path, unix.X_OK); err != nil {
		return fmt.Errorf("%s is not executable: %w", path, err)
	}

	return nil
}

// ProcessGone reports whether err means the process no longer exists.
func ProcessGone(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, unix.ESRCH)
}

func EnsureDir(path string) error {
	// ignore if dir exist
	if err := os.MkdirAll(path, 0o755); err != nil && !os.IsExist(err) {
		return err
	}
	return nil
}
