package queue

// Queue - It's a queue with linked lists dawg
type Queue[T any] struct {
	head   *node[T]
	tail   *node[T]
	length int
}

type node[T any] struct {
	next *node[T]
	data T
}

// New - Build a queue holding the given items in order
func New[T any](data ...T) *Queue[T] {
	q := &Queue[T]{}
	q.Push(data...)
	return q
}

// Push - Append items to the back of the queue
func (q *Queue[T]) Push(data ...T) {
	for _, v := range data {
		n := &node[T]{data: v}
		if q.head == nil {
			q.head = n
			q.tail = n
		} else {
			q.tail.next = n
			q.tail = n
		}
		q.length++
	}
}

// Pop - Take the item at the front of the queue
func (q *Queue[T]) Pop() (data T, ok bool) {
	if q.head == nil {
		return data, false
	}
	data = q.head.data
	q.head = q.head.next
	if q.head == nil {
		q.tail = nil
	}
	q.length--
	return data, true
}

// Len - Number of items in the queue
func (q *Queue[T]) Len() int {
	return q.length
}
