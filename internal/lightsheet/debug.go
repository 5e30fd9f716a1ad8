package lightsheet

import (
	"sync"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
)

func DebugLog(format string, args ...interface{}) {
	logger.Log.Sugar().Debugf(format, args...)
}

var once sync.Once

func DebugLogOnce(format string, args ...interface{}) {
	once.Do(func() {
		logger.Log.Sugar().Debugf(format, args...)
	})
}
