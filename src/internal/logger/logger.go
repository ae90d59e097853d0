// Package logger 双通道日志：每次运行在 logs/ 下落一个文件，
// Info/Warn/Error 同步打到终端，Debug 只进文件不刷屏。
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	sink    *log.Logger
	logFile *os.File
)

// InitLogger 创建本次运行的日志文件。没初始化时各级别退化为纯终端输出。
func InitLogger() error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}

	name := fmt.Sprintf("padiscan_%s.log", time.Now().Format("20060102_150405"))
	path := filepath.Join("logs", name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	mu.Lock()
	logFile = f
	sink = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	mu.Unlock()

	fmt.Printf("📝 Logging to %s\n", path)
	return nil
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
		sink = nil
	}
}

// emit 是所有级别的公共出口，console 决定是否同步到终端
func emit(level, format string, console bool, v ...interface{}) {
	line := fmt.Sprintf("["+level+"] "+format, v...)
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}

	mu.Lock()
	defer mu.Unlock()
	if sink != nil {
		sink.Print(line)
	}
	if console {
		fmt.Print(line)
	}
}

func Debug(format string, v ...interface{}) { emit("DEBUG", format, false, v...) }
func Info(format string, v ...interface{})  { emit("INFO", format, true, v...) }
func Warn(format string, v ...interface{})  { emit("WARN", format, true, v...) }
func Error(format string, v ...interface{}) { emit("ERROR", format, true, v...) }
