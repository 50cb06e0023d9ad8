package block

import (
	"fmt"
	"io"
	"log/slog"
)

// logger is the package-level structured logger. It discards output by
// default so importing this package is silent; an embedding application
// can redirect it with SetLogger.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger redirects this package's diagnostic output. Passing nil
// restores the discarding default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	logger = l
}

// corrupt logs a fatal contract violation and aborts the process. Every
// condition this layer treats as metadata corruption or a programming
// error — never as a recoverable return value — routes through here, per
// the fatal/expected split in the error-handling design.
func corrupt(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error(msg)
	panic("block: " + msg)
}
