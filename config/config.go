package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/CodingCaius/linkedlist/lib/logger"
	"github.com/openzipkin/zipkin-go/idgenerator"
)

// 配置链表快照与日志的属性。
// 配置文件格式与 redis.conf 相同：每行一个 "key value"，以 # 开头的行为注释

// ServerProperties 定义全局配置属性
type ServerProperties struct {
	// 每次 setup 时 runID 都不同
	RunID       string `cfg:"runid"`
	Dir         string `cfg:"dir"`
	RDBFilename string `cfg:"dbfilename"`
	LogDir      string `cfg:"logdir"`
	LogName     string `cfg:"logname"`

	// config file path
	CfPath string `cfg:"cf,omitempty"`
}

// Properties holds global config properties
var Properties *ServerProperties

func init() {
	// default config
	Properties = defaultProperties()
}

func defaultProperties() *ServerProperties {
	return &ServerProperties{
		RunID:       newRunID(),
		Dir:         ".",
		RDBFilename: "dump.rdb",
		LogDir:      "logs",
		LogName:     "linkedlist",
	}
}

// newRunID 使用 zipkin 的 128 位随机 ID 作为 runID
func newRunID() string {
	return idgenerator.NewRandom128().TraceID().String()
}

// parse 解析配置文件，未出现的 key 保留默认值
func parse(src io.Reader) *ServerProperties {
	config := defaultProperties()

	// read config file
	rawMap := make(map[string]string)
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 || strings.TrimLeft(line, " ")[0] == '#' {
			continue
		}
		pivot := strings.IndexAny(line, " ")
		if pivot > 0 && pivot < len(line)-1 { // separator found
			key := line[0:pivot]
			value := strings.Trim(line[pivot+1:], " ")
			rawMap[strings.ToLower(key)] = value
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal(err)
	}

	// 按 cfg 标签填充配置，所有字段都是字符串
	t := reflect.TypeOf(config).Elem()
	v := reflect.ValueOf(config).Elem()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key, ok := field.Tag.Lookup("cfg")
		if !ok || strings.TrimLeft(key, " ") == "" {
			key = field.Name
		}
		if value, ok := rawMap[strings.ToLower(key)]; ok && field.Type.Kind() == reflect.String {
			v.Field(i).SetString(value)
		}
	}
	return config
}

// SetupConfig 读取配置文件并调用parse函数解析其内容，然后更新全局Properties变量
func SetupConfig(configFilename string) {
	file, err := os.Open(configFilename)
	if err != nil {
		panic(err)
	}
	defer file.Close()
	Properties = parse(file)
	Properties.RunID = newRunID()
	configFilePath, err := filepath.Abs(configFilename)
	if err != nil {
		return
	}
	Properties.CfPath = configFilePath
	if Properties.Dir == "" {
		Properties.Dir = "."
	}
}

// LogSettings 返回日志文件配置，调用方将其传给 logger.Setup 以便同时把日志写入 <logdir>/<logname>-<date>.log
func LogSettings() *logger.Settings {
	return &logger.Settings{
		Path:       Properties.LogDir,
		Name:       Properties.LogName,
		Ext:        "log",
		TimeFormat: "2006-01-02",
	}
}

func GetTmpDir() string {
	return Properties.Dir + "/tmp"
}

// SnapshotPath 返回 rdb 快照文件的路径
func SnapshotPath() string {
	return filepath.Join(Properties.Dir, Properties.RDBFilename)
}
