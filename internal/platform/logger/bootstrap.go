package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// BootstrapLogger prints to stdout until the configured logger exists.
// It is only used while loading configuration.
type BootstrapLogger struct {
	logger *log.Logger
}

func NewBootstrapLogger() *BootstrapLogger {
	return &BootstrapLogger{
		logger: log.New(os.Stdout, "[boot] ", log.LstdFlags|log.Lmsgprefix),
	}
}

func (b *BootstrapLogger) Debug(_ context.Context, msg string, args ...any) {
	b.print("DEBUG", msg, args)
}

func (b *BootstrapLogger) Info(_ context.Context, msg string, args ...any) {
	b.print("INFO", msg, args)
}

func (b *BootstrapLogger) Warn(_ context.Context, msg string, args ...any) {
	b.print("WARN", msg, args)
}

func (b *BootstrapLogger) Error(_ context.Context, msg string, args ...any) {
	b.print("ERROR", msg, args)
}

func (b *BootstrapLogger) print(level, msg string, args []any) {
	b.logger.Print(level + " " + msg + formatPairs(args))
}

// formatPairs renders alternating key/value args as " k=v k=v". A trailing
// key without a value is printed as-is.
func formatPairs(args []any) string {
	var sb strings.Builder
	for i := 0; i < len(args); i += 2 {
		sb.WriteByte(' ')
		if i+1 == len(args) {
			fmt.Fprint(&sb, args[i])
			break
		}
		fmt.Fprintf(&sb, "%v=%v", args[i], args[i+1])
	}
	return sb.String()
}

var _ Logger = (*BootstrapLogger)(nil)
