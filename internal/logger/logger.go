package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel представляет уровень логирования
type LogLevel string

const (
	DEBUG LogLevel = "DEBUG"
	INFO  LogLevel = "INFO"
	ERROR LogLevel = "ERROR"
)

// LoggerManager пишет строки лога в консоль и, если задан файл, в файл.
// Безопасен для одновременного использования из нескольких горутин.
type LoggerManager struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
	logger  *log.Logger
	debug   bool
}

// NewLoggerManager создает логгер с выводом в stdout.
// Пустой logFilePath отключает запись в файл.
func NewLoggerManager(logFilePath string, debug bool) (*LoggerManager, error) {
	l := New(os.Stdout, debug)
	if logFilePath == "" {
		return l, nil
	}

	// Создаем директорию для логов, если её нет
	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l.file = file
	l.logger = log.New(file, "", log.LstdFlags)
	return l, nil
}

// New создает логгер, пишущий только в console.
func New(console io.Writer, debug bool) *LoggerManager {
	if console == nil {
		console = io.Discard
	}
	return &LoggerManager{
		console: console,
		debug:   debug,
	}
}

// Close закрывает файл логов
func (l *LoggerManager) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// DebugEnabled сообщает, включен ли отладочный вывод
func (l *LoggerManager) DebugEnabled() bool {
	return l.debug
}

// logWithLevel записывает сообщение с указанным уровнем
func (l *LoggerManager) logWithLevel(level LogLevel, format string, args ...interface{}) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	logEntry := fmt.Sprintf("[%s] %s: %s", timestamp, level, message)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logger != nil {
		l.logger.Println(logEntry)
	}
	fmt.Fprintln(l.console, logEntry)
}

// Debug записывает отладочное сообщение, только если включен DEBUG
func (l *LoggerManager) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.logWithLevel(DEBUG, format, args...)
}

// Info записывает информационное сообщение
func (l *LoggerManager) Info(format string, args ...interface{}) {
	l.logWithLevel(INFO, format, args...)
}

// Error записывает сообщение об ошибке
func (l *LoggerManager) Error(format string, args ...interface{}) {
	l.logWithLevel(ERROR, format, args...)
}

// LogError записывает ошибку с дополнительной информацией
func (l *LoggerManager) LogError(err error, context string) {
	if err != nil {
		l.Error("%s: %v", context, err)
	}
}
