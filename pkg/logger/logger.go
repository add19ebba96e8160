package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig 日志配置结构体
type LogConfig struct {
	// 基础配置
	AppName   string `yaml:"AppName"`
	LogLevel  string `yaml:"LogLevel"`
	LogFormat string `yaml:"LogFormat"` // "text" 或 "json"

	// 控制台输出
	EnableConsole bool `yaml:"EnableConsole"`
	ConsoleColor  bool `yaml:"ConsoleColor"`

	// 文件输出
	EnableFile bool   `yaml:"EnableFile"`
	FilePath   string `yaml:"FilePath"`
	FileName   string `yaml:"FileName"`
	MaxSize    int    `yaml:"MaxSize"`    // MB
	MaxBackups int    `yaml:"MaxBackups"` // 最大备份数
	MaxAge     int    `yaml:"MaxAge"`     // 保留天数
	Compress   bool   `yaml:"Compress"`   // 是否压缩备份

	// 统计配置
	EnableStats bool `yaml:"EnableStats"`
}

// DefaultLogConfig 默认配置
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		AppName:       "duckreq",
		LogLevel:      "info",
		LogFormat:     "text",
		EnableConsole: true,
		ConsoleColor:  true,
		EnableFile:    false,
		EnableStats:   true,
		MaxSize:       100, // MB
		MaxBackups:    10,
		MaxAge:        30, // days
		Compress:      true,
	}
}

// Stats 线程安全的统计信息收集器
type Stats struct {
	mu           sync.RWMutex
	OverallStats map[string]interface{}
	startTime    time.Time
}

// NewStats 创建统计器
func NewStats() *Stats {
	return &Stats{
		OverallStats: make(map[string]interface{}),
		startTime:    time.Now(),
	}
}

// AddInt 添加整数统计
func (s *Stats) AddInt(key string, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.OverallStats[key].(int); ok {
		s.OverallStats[key] = current + value
	} else {
		s.OverallStats[key] = value
	}
}

// Increment 递增计数器
func (s *Stats) Increment(key string) {
	s.AddInt(key, 1)
}

// Set 设置任意类型的值
func (s *Stats) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OverallStats[key] = value
}

// Get 获取统计值
func (s *Stats) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.OverallStats[key]
	return val, ok
}

// GetInt 获取整数统计值
func (s *Stats) GetInt(key string) (int, bool) {
	val, ok := s.Get(key)
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Clear 清空统计
func (s *Stats) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OverallStats = make(map[string]interface{})
	s.startTime = time.Now()
}

// GetUptime 获取运行时间
func (s *Stats) GetUptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// OutTableInfo 以表格形式输出统计信息，统计项按名字排序
func (s *Stats) OutTableInfo(writer io.Writer) error {
	uptime := s.GetUptime()

	s.mu.RLock()
	defer s.mu.RUnlock()

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Stat", "Value"})
	table.Append([]string{"uptime", fmt.Sprintf("%v", uptime.Round(time.Millisecond))})

	keys := make([]string, 0, len(s.OverallStats))
	for key := range s.OverallStats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var valueStr string

		switch v := s.OverallStats[key].(type) {
		case string:
			valueStr = v
		case time.Time:
			valueStr = v.Format("2006-01-02 15:04:05")
		case time.Duration:
			valueStr = v.String()
		case fmt.Stringer:
			valueStr = v.String()
		default:
			valueStr = fmt.Sprintf("%v", v)
		}

		table.Append([]string{key, valueStr})
	}

	return table.Render()
}

// Logger 增强的日志记录器
type Logger struct {
	name     string
	mu       sync.RWMutex
	logger   *logrus.Logger
	fileHook *lumberjack.Logger
	config   *LogConfig
	Stats    *Stats
	fields   map[string]interface{}
}

// NewLogger 创建新的日志记录器，config 为 nil 时使用默认配置
func NewLogger(config *LogConfig) (*Logger, error) {
	if config == nil {
		config = DefaultLogConfig()
	}
	if config.AppName == "" {
		config.AppName = "duckreq"
	}
	if config.EnableFile && config.FilePath == "" {
		config.FilePath = filepath.Join("logs", config.AppName+"_"+time.Now().Format("2006_01_02_15_04_05"))
	}

	logger := logrus.New()
	logger.SetLevel(ParseLogLevel(config.LogLevel))

	// 设置日志格式
	if strings.ToLower(config.LogFormat) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			ForceColors:     config.ConsoleColor,
			PadLevelText:    true,
		})
	}

	// 控制台日志写 stderr，stdout 留给命令输出
	var writers []io.Writer
	if config.EnableConsole {
		writers = append(writers, os.Stderr)
	}

	l := &Logger{
		name:   config.AppName,
		logger: logger,
		config: config,
		fields: make(map[string]interface{}),
	}

	if config.EnableStats {
		l.Stats = NewStats()
		l.Stats.Set("app_name", config.AppName)
		l.Stats.Set("log_level", config.LogLevel)
	}

	if config.EnableFile {
		if err := l.initFileOutput(config); err != nil {
			return nil, fmt.Errorf("init file output: %w", err)
		}
		writers = append(writers, l.fileHook)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return l, nil
}

// initFileOutput 初始化文件输出
func (l *Logger) initFileOutput(config *LogConfig) error {
	if err := os.MkdirAll(config.FilePath, 0755); err != nil {
		return err
	}

	fileName := config.FileName
	if fileName == "" {
		fileName = fmt.Sprintf("%s.log", config.AppName)
	}

	filePath := filepath.Join(config.FilePath, fileName)

	l.fileHook = &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
		LocalTime:  true,
	}

	if l.Stats != nil {
		l.Stats.Set("log_file", filePath)
	}

	return nil
}

// ParseLogLevel 解析日志级别，无法识别时使用 info
func ParseLogLevel(levelStr string) logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (l *Logger) derive(fields map[string]interface{}) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	newLogger := &Logger{
		name:     l.name,
		logger:   l.logger,
		fileHook: l.fileHook,
		config:   l.config,
		Stats:    l.Stats,
		fields:   make(map[string]interface{}, len(l.fields)+len(fields)),
	}
	for k, v := range l.fields {
		newLogger.fields[k] = v
	}
	for k, v := range fields {
		newLogger.fields[k] = v
	}
	return newLogger
}

// WithField 添加字段到日志上下文，返回新的记录器
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.derive(map[string]interface{}{key: value})
}

// WithFields 批量添加字段到日志上下文
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return l.derive(fields)
}

// getEntry 获取带有上下文的日志条目
func (l *Logger) getEntry() *logrus.Entry {
	entry := l.logger.WithField("app", l.name)

	l.mu.RLock()
	defer l.mu.RUnlock()

	return entry.WithFields(logrus.Fields(l.fields))
}

func (l *Logger) Log(level logrus.Level, args ...interface{}) {
	l.getEntry().Log(level, args...)
}

func (l *Logger) Logf(level logrus.Level, format string, args ...interface{}) {
	l.getEntry().Logf(level, format, args...)
}

func (l *Logger) Debug(args ...interface{}) {
	l.Log(logrus.DebugLevel, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logf(logrus.DebugLevel, format, args...)
}

func (l *Logger) Info(args ...interface{}) {
	l.Log(logrus.InfoLevel, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logf(logrus.InfoLevel, format, args...)
}

func (l *Logger) Warn(args ...interface{}) {
	l.Log(logrus.WarnLevel, args...)
}

func (l *Logger) Error(args ...interface{}) {
	l.Log(logrus.ErrorLevel, args...)
}

// WithError 带错误字段的日志条目
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.getEntry().WithError(err)
}

// PrintStats 把统计信息输出到 w
func (l *Logger) PrintStats(w io.Writer) error {
	if l.Stats == nil {
		l.Warn("stats disabled")
		return nil
	}
	return l.Stats.OutTableInfo(w)
}

// SetOutput 替换输出目标
func (l *Logger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

func (l *Logger) SetLevel(level string) {
	l.logger.SetLevel(ParseLogLevel(level))
}

func (l *Logger) GetLevel() logrus.Level {
	return l.logger.GetLevel()
}

// Close 关闭日志文件
func (l *Logger) Close() error {
	if l.fileHook != nil {
		return l.fileHook.Close()
	}
	return nil
}

// Rotate 手动触发日志文件轮转
func (l *Logger) Rotate() error {
	if l.fileHook != nil {
		return l.fileHook.Rotate()
	}
	return nil
}
