package list

import (
	"fmt"
	"strings"
)

const (
	separator   = " -> "
	emptyMarker = "Empty list"
)

// Node 是单向链表中的一个节点，持有一个值以及指向后继节点的链接
type Node[V any] struct {
	Value V
	next  *Node[V]
}

// Next 返回后继节点，最后一个节点返回 nil
func (n *Node[V]) Next() *Node[V] {
	return n.next
}

// String 返回从 n 开始到链表末尾的描述，例如 "2 -> 3"
func (n *Node[V]) String() string {
	var sb strings.Builder
	for cur := n; cur != nil; cur = cur.next {
		if cur != n {
			sb.WriteString(separator)
		}
		sb.WriteString(fmt.Sprint(cur.Value))
	}
	return sb.String()
}

// LinkedList 是带尾指针的单向链表
// head 拥有整条节点链，tail 只是指向最后一个节点的快捷引用，用于 O(1) 的尾部插入
// 零值即为可用的空链表；LinkedList 不是并发安全的
type LinkedList[V any] struct {
	head *Node[V]
	tail *Node[V]
	size int
}

var _ List[int] = (*LinkedList[int])(nil)

// Make 创建一个空链表
func Make[V any]() *LinkedList[V] {
	return &LinkedList[V]{}
}

// IsEmpty 判断链表是否为空
func (list *LinkedList[V]) IsEmpty() bool {
	return list.head == nil
}

// Len 返回链表中的节点数量
func (list *LinkedList[V]) Len() int {
	return list.size
}

// Head 返回第一个节点，空链表返回 nil
func (list *LinkedList[V]) Head() *Node[V] {
	return list.head
}

// Tail 返回最后一个节点，空链表返回 nil
func (list *LinkedList[V]) Tail() *Node[V] {
	return list.tail
}

// Push 在链表头部插入一个新节点
// 向空链表插入时，新节点同时是 head 和 tail
func (list *LinkedList[V]) Push(val V) {
	list.head = &Node[V]{Value: val, next: list.head}
	if list.tail == nil {
		list.tail = list.head
	}
	list.size++
}

// Append 在链表尾部插入一个新节点
func (list *LinkedList[V]) Append(val V) {
	// 对空链表 append 与 push 等价
	if list.IsEmpty() {
		list.Push(val)
		return
	}
	tail := list.mustTail()
	tail.next = &Node[V]{Value: val}
	list.tail = tail.next
	list.size++
}

// NodeAt 返回下标为 index 的节点
// index 越界或为负数时返回 false
func (list *LinkedList[V]) NodeAt(index int) (*Node[V], bool) {
	if index < 0 {
		return nil, false
	}
	cur := list.head
	for i := 0; cur != nil && i < index; i++ {
		cur = cur.next
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// InsertAfter 在 node 之后插入一个新节点并返回它
// node 必须是当前链表中的节点，否则行为未定义
func (list *LinkedList[V]) InsertAfter(val V, node *Node[V]) *Node[V] {
	if node == nil {
		panic("list: insert after nil node")
	}
	if list.IsEmpty() {
		panic("list: insert after a node that does not belong to an empty list")
	}
	// tail 的判断使用指针比较，这样 Append 会正确地更新 tail
	if node == list.tail {
		list.Append(val)
		return list.tail
	}
	n := &Node[V]{Value: val, next: node.next}
	node.next = n
	list.size++
	return n
}

// Pop 移除并返回第一个节点的值，空链表返回 false
func (list *LinkedList[V]) Pop() (val V, ok bool) {
	if list.head == nil {
		return val, false
	}
	n := list.head
	list.head = n.next
	if list.head == nil {
		list.tail = nil
	}
	n.next = nil
	list.size--
	return n.Value, true
}

// RemoveLast 移除并返回最后一个节点的值，空链表返回 false
// 没有反向链接，所以需要从 head 遍历到 tail
func (list *LinkedList[V]) RemoveLast() (val V, ok bool) {
	if list.head == nil {
		return val, false
	}
	if list.head.next == nil {
		return list.Pop()
	}
	prev := list.head
	cur := prev.next
	for cur.next != nil {
		prev = cur
		cur = cur.next
	}
	prev.next = nil
	list.tail = prev
	list.size--
	return cur.Value, true
}

// ForEach 从 head 到 tail 遍历链表，consumer 返回 false 时中断
func (list *LinkedList[V]) ForEach(consumer Consumer[V]) {
	i := 0
	for n := list.head; n != nil; n = n.next {
		if !consumer(i, n.Value) {
			break
		}
		i++
	}
}

// Contains 判断链表中是否存在满足 expected 的值
func (list *LinkedList[V]) Contains(expected Expected[V]) bool {
	contains := false
	list.ForEach(func(i int, v V) bool {
		if expected(v) {
			contains = true
			return false
		}
		return true
	})
	return contains
}

// Values 按顺序返回链表中的所有值
func (list *LinkedList[V]) Values() []V {
	values := make([]V, 0, list.size)
	list.ForEach(func(i int, v V) bool {
		values = append(values, v)
		return true
	})
	return values
}

// String 返回 "1 -> 2 -> 3" 形式的描述，空链表返回 "Empty list"
func (list *LinkedList[V]) String() string {
	if list.IsEmpty() {
		return emptyMarker
	}
	var sb strings.Builder
	list.ForEach(func(i int, v V) bool {
		if i > 0 {
			sb.WriteString(separator)
		}
		sb.WriteString(fmt.Sprint(v))
		return true
	})
	return sb.String()
}

// mustTail 在依赖 tail 的操作前检查不变量：head 存在时 tail 必须存在
func (list *LinkedList[V]) mustTail() *Node[V] {
	if list.tail == nil {
		panic("list: tail is nil while head is present")
	}
	return list.tail
}
