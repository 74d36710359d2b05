package logging

import (
	"fmt"
	"path/filepath"
	"time"
)

// ExtensionName prefixes session log files.
const ExtensionName = "weather_extension"

// LogFilePath returns <logsDir>/<extensionName>.<yyyymmdd_hhmmss>.log.
func LogFilePath(logsDir, extensionName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", extensionName, sessionStart.Format("20060102_150405")),
	)
}
