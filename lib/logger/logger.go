package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Settings 存储日志文件的配置
type Settings struct {
	Path       string
	Name       string
	Ext        string
	TimeFormat string
}

type logLevel int

// Output levels
const (
	DEBUG logLevel = iota
	INFO
	WARNING
	ERROR
	FATAL
)

const (
	flags              = log.LstdFlags
	defaultCallerDepth = 2
)

var levelFlags = []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// Logger 将带级别和调用位置的日志写入 stdout，以及可选的日志文件
type Logger struct {
	logFile *os.File
	logger  *log.Logger
}

// DefaultLogger 在 Setup 之前只输出到 stdout
var DefaultLogger = NewStdoutLogger()

// NewStdoutLogger creates a logger which print msg to stdout
func NewStdoutLogger() *Logger {
	return NewLogger(os.Stdout)
}

// NewLogger creates a logger which print msg to w
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		logger: log.New(w, "", flags),
	}
}

// NewFileLogger 创建一个同时输出到 stdout 和日志文件的 logger
// 文件名为 <Path>/<Name>-<date>.<Ext>
func NewFileLogger(settings *Settings) (*Logger, error) {
	timeFormat := settings.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02"
	}
	fileName := fmt.Sprintf("%s-%s.%s", settings.Name, time.Now().Format(timeFormat), settings.Ext)
	if err := os.MkdirAll(settings.Path, 0755); err != nil {
		return nil, fmt.Errorf("create log dir %s failed: %w", settings.Path, err)
	}
	logFile, err := os.OpenFile(filepath.Join(settings.Path, fileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file failed: %w", err)
	}
	return &Logger{
		logFile: logFile,
		logger:  log.New(io.MultiWriter(os.Stdout, logFile), "", flags),
	}, nil
}

// Setup 初始化 DefaultLogger，使日志同时写入文件
func Setup(settings *Settings) {
	logger, err := NewFileLogger(settings)
	if err != nil {
		panic(err)
	}
	DefaultLogger = logger
}

// Output 输出一条日志，callerDepth 用于定位调用者的文件和行号
func (logger *Logger) Output(level logLevel, callerDepth int, msg string) {
	var formattedMsg string
	_, file, line, ok := runtime.Caller(callerDepth)
	if ok {
		formattedMsg = fmt.Sprintf("[%s][%s:%d] %s", levelFlags[level], filepath.Base(file), line, msg)
	} else {
		formattedMsg = fmt.Sprintf("[%s] %s", levelFlags[level], msg)
	}
	_ = logger.logger.Output(0, formattedMsg)
}

// Close 关闭日志文件
func (logger *Logger) Close() {
	if logger.logFile != nil {
		_ = logger.logFile.Close()
	}
}

// Debug logs debug message through DefaultLogger
func Debug(v ...interface{}) {
	DefaultLogger.Output(DEBUG, defaultCallerDepth, fmt.Sprintln(v...))
}

// Debugf logs debug message through DefaultLogger
func Debugf(format string, v ...interface{}) {
	DefaultLogger.Output(DEBUG, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Info logs message through DefaultLogger
func Info(v ...interface{}) {
	DefaultLogger.Output(INFO, defaultCallerDepth, fmt.Sprintln(v...))
}

// Infof logs message through DefaultLogger
func Infof(format string, v ...interface{}) {
	DefaultLogger.Output(INFO, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Warn logs warning message through DefaultLogger
func Warn(v ...interface{}) {
	DefaultLogger.Output(WARNING, defaultCallerDepth, fmt.Sprintln(v...))
}

// Warnf logs warning message through DefaultLogger
func Warnf(format string, v ...interface{}) {
	DefaultLogger.Output(WARNING, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Error logs error message through DefaultLogger
func Error(v ...interface{}) {
	DefaultLogger.Output(ERROR, defaultCallerDepth, fmt.Sprintln(v...))
}

// Errorf logs error message through DefaultLogger
func Errorf(format string, v ...interface{}) {
	DefaultLogger.Output(ERROR, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Fatal prints error message then stop the program
func Fatal(v ...interface{}) {
	DefaultLogger.Output(FATAL, defaultCallerDepth, fmt.Sprintln(v...))
	os.Exit(1)
}

// Fatalf prints error message then stop the program
func Fatalf(format string, v ...interface{}) {
	DefaultLogger.Output(FATAL, defaultCallerDepth, fmt.Sprintf(format, v...))
	os.Exit(1)
}
