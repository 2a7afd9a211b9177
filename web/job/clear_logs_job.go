package job

import (
	"os"
	"path/filepath"

	"github.com/netpesa/netpesa/config"
	"github.com/netpesa/netpesa/logger"
)

// ClearLogsJob rotates the panel log once a day: the current file is
// appended to the .prev file and truncated, the previous .prev content
// is dropped.
type ClearLogsJob struct{}

func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

// Run implements cron.Job.
func (j *ClearLogsJob) Run() {
	logPath := filepath.Join(config.GetLogFolder(), "netpesa.log")
	prevPath := logPath + ".prev"

	if err := os.Truncate(prevPath, 0); err != nil && !os.IsNotExist(err) {
		logger.Warning("clear logs job err:", err)
	}

	prevFile, err := os.OpenFile(prevPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		logger.Warning("clear logs job err:", err)
		return
	}
	defer prevFile.Close()

	current, err := os.ReadFile(logPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("clear logs job err:", err)
		}
		return
	}

	if _, err := prevFile.Write(current); err != nil {
		logger.Warning("clear logs job err:", err)
	}

	if err := os.Truncate(logPath, 0); err != nil {
		logger.Warning("clear logs job err:", err)
	}
}
