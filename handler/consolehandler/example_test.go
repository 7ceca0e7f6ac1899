package consolehandler_test

import (
	"os"
	"time"

	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/formatter"
	"github.com/philipp01105/nlogbridge/handler/consolehandler"
)

func ExampleNewConsoleHandler() {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    os.Stdout,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})
	defer h.Close()

	h.Handle(&core.Entry{
		Time:    time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Level:   core.NoticeLevel,
		Message: "ready",
	})
	// Output:
	// 2026-01-15T12:00:00Z [NOTICE] ready
}
