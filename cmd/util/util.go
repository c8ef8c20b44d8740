package util

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/sidkik/volcp/pkg/errors"
)

// HandleFatalError prints the user-facing message for err and exits
// non-zero.
func HandleFatalError(err error) {
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))
	os.Exit(1)
}

// HandlePanic is meant to be deferred from main so that unexpected panics
// are reported with their stack before the process dies.
func HandlePanic() {
	if r := recover(); r != nil {
		log.WithField("panic", r).Error("Unexpected panic")
		fmt.Fprintln(os.Stderr, string(debug.Stack()))
		os.Exit(1)
	}
}
