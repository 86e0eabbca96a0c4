package snapshot

import (
	"strconv"
	"strings"
)

// Codec 负责链表元素与 rdb 中字节串之间的转换
type Codec[V any] interface {
	Marshal(v V) []byte
	Unmarshal(b []byte) (V, error)
}

// escapeMark 标记被转义的字符串元素
const escapeMark = "\x00"

// StringCodec 按原样保存字符串，写入与读出的值完全一致
// rdb 编码器会把 ParseInt 能解析的元素存成整数，"007" 读回来会变成 "7"，
// 所以非规范整数形式的元素以及本身以 escapeMark 开头的元素都会加上 escapeMark 前缀
type StringCodec struct{}

func (StringCodec) Marshal(v string) []byte {
	if needsEscape(v) {
		return []byte(escapeMark + v)
	}
	return []byte(v)
}

func (StringCodec) Unmarshal(b []byte) (string, error) {
	return strings.TrimPrefix(string(b), escapeMark), nil
}

func needsEscape(v string) bool {
	if strings.HasPrefix(v, escapeMark) {
		return true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	return err == nil && strconv.FormatInt(n, 10) != v
}

// IntCodec 以十进制字符串保存整数，与 redis 在列表中保存整数的方式相同
type IntCodec struct{}

func (IntCodec) Marshal(v int) []byte {
	return []byte(strconv.Itoa(v))
}

func (IntCodec) Unmarshal(b []byte) (int, error) {
	return strconv.Atoi(string(b))
}
