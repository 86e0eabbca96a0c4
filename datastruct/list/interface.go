package list

// Expected 检查给定项目是否等于预期值
type Expected[V any] func(v V) bool

// Consumer 遍历列表。
// 它接收索引和值作为参数，返回 true 继续遍历，返回 false 中断
type Consumer[V any] func(i int, v V) bool

// List 是单向链表对外暴露的操作集合
type List[V any] interface {
	Push(val V)
	Append(val V)
	Pop() (val V, ok bool)
	RemoveLast() (val V, ok bool)
	Len() int
	IsEmpty() bool
	ForEach(consumer Consumer[V])
	Contains(expected Expected[V]) bool
	Values() []V
}
