package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/CodingCaius/linkedlist/config"
	"github.com/CodingCaius/linkedlist/datastruct/list"
	"github.com/CodingCaius/linkedlist/lib/logger"
	"github.com/hdt3213/rdb/core"
	"github.com/hdt3213/rdb/model"
)

var (
	// ErrBadValue 表示 rdb 中的元素无法被 Codec 解码
	ErrBadValue = errors.New("snapshot: bad list value")
)

// now 用于生成 ctime 字段
var now = time.Now

// Encode 将所有非空链表以 rdb 格式写入 w，key 按字典序排列
// redis 不会保存空列表，所以空链表会被跳过
func Encode[V any](w io.Writer, lists map[string]*list.LinkedList[V], codec Codec[V]) error {
	keys := nonEmptyKeys(lists)

	encoder := core.NewEncoder(w)
	err := encoder.WriteHeader()
	if err != nil {
		return fmt.Errorf("write rdb header failed: %w", err)
	}
	auxFields := [][2]string{
		{"redis-ver", "6.0.0"},
		{"redis-bits", "64"},
		{"ctime", strconv.FormatInt(now().Unix(), 10)},
		{"run-id", config.Properties.RunID},
	}
	for _, aux := range auxFields {
		err = encoder.WriteAux(aux[0], aux[1])
		if err != nil {
			return fmt.Errorf("write rdb aux %s failed: %w", aux[0], err)
		}
	}
	err = encoder.WriteDBHeader(0, uint64(len(keys)), 0)
	if err != nil {
		return fmt.Errorf("write rdb db header failed: %w", err)
	}
	for _, key := range keys {
		l := lists[key]
		vals := make([][]byte, 0, l.Len())
		l.ForEach(func(i int, v V) bool {
			vals = append(vals, codec.Marshal(v))
			return true
		})
		err = encoder.WriteListObject(key, vals)
		if err != nil {
			return fmt.Errorf("write list %s failed: %w", key, err)
		}
	}
	err = encoder.WriteEnd()
	if err != nil {
		return fmt.Errorf("write rdb end failed: %w", err)
	}
	return nil
}

// nonEmptyKeys 返回所有非空链表的 key，按字典序排列
func nonEmptyKeys[V any](lists map[string]*list.LinkedList[V]) []string {
	keys := make([]string, 0, len(lists))
	for key, l := range lists {
		if l == nil || l.IsEmpty() {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Decode 从 r 中读取 rdb 数据，按原顺序重建每一个列表对象
// 非列表对象会被跳过
func Decode[V any](r io.Reader, codec Codec[V]) (map[string]*list.LinkedList[V], error) {
	lists := make(map[string]*list.LinkedList[V])
	var valueErr error
	decoder := core.NewDecoder(r)
	err := decoder.Parse(func(o model.RedisObject) bool {
		listObj, ok := o.(*model.ListObject)
		if !ok {
			logger.Warnf("skip %s object %s", o.GetType(), o.GetKey())
			return true
		}
		l := list.Make[V]()
		for _, raw := range listObj.Values {
			v, err := codec.Unmarshal(raw)
			if err != nil {
				valueErr = fmt.Errorf("%w: key %s: %v", ErrBadValue, o.GetKey(), err)
				return false
			}
			l.Append(v)
		}
		lists[o.GetKey()] = l
		return true
	})
	if valueErr != nil {
		logger.Error(valueErr.Error())
		return nil, valueErr
	}
	if err != nil {
		logger.Error("parse rdb failed: " + err.Error())
		return nil, fmt.Errorf("parse rdb failed: %w", err)
	}
	return lists, nil
}

// Save 将链表写入 config.SnapshotPath()
// 先写入临时文件，完成后再替换原文件
func Save[V any](lists map[string]*list.LinkedList[V], codec Codec[V]) error {
	err := os.MkdirAll(config.GetTmpDir(), 0755)
	if err != nil {
		return fmt.Errorf("create tmp dir failed: %w", err)
	}
	tmpFile, err := os.CreateTemp(config.GetTmpDir(), "*.rdb")
	if err != nil {
		logger.Warn("tmp file create failed")
		return fmt.Errorf("create temp rdb failed: %w", err)
	}
	tmpName := tmpFile.Name()
	defer func() {
		// 重命名成功后临时文件已不存在
		_ = os.Remove(tmpName)
	}()

	err = Encode(tmpFile, lists, codec)
	if err != nil {
		_ = tmpFile.Close()
		return err
	}
	err = tmpFile.Sync()
	if err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("fsync temp rdb failed: %w", err)
	}
	err = tmpFile.Close()
	if err != nil {
		return fmt.Errorf("close temp rdb failed: %w", err)
	}
	err = os.Rename(tmpName, config.SnapshotPath())
	if err != nil {
		return fmt.Errorf("replace rdb failed: %w", err)
	}
	logger.Infof("saved %d lists to %s", len(nonEmptyKeys(lists)), config.SnapshotPath())
	return nil
}

// Load 从 config.SnapshotPath() 读取链表，文件不存在时返回空 map
func Load[V any](codec Codec[V]) (map[string]*list.LinkedList[V], error) {
	file, err := os.Open(config.SnapshotPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]*list.LinkedList[V]), nil
		}
		return nil, fmt.Errorf("open rdb failed: %w", err)
	}
	defer file.Close()
	return Decode(file, codec)
}
