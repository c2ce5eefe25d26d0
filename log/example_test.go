package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/manifest/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("parsed", slog.String("file", "Cargo.toml"), slog.Int("sections", 4))
	logger.Debug("not shown")
	// Output:
	// level=INFO msg=parsed file=Cargo.toml sections=4
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("none"))

	logger.With(slog.String("component", "cache")).Trace("lookup")
	// Output:
	// {"level":"TRACE","msg":"lookup","component":"cache"}
}
