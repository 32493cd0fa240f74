package wavefront

// frontier is a FIFO of linear cell indices pending expansion, backed by a
// growable ring buffer.
type frontier struct {
	items []int32
	head  int
	count int
}

func newFrontier(capacity int) *frontier {
	if capacity < 16 {
		capacity = 16
	}
	return &frontier{items: make([]int32, capacity)}
}

func (queue *frontier) Len() int { return queue.count }

func (queue *frontier) Push(index int32) {
	if queue.count == len(queue.items) {
		queue.grow()
	}
	queue.items[(queue.head+queue.count)%len(queue.items)] = index
	queue.count++
}

// Peek returns the oldest index without removing it. It must not be called
// on an empty frontier.
func (queue *frontier) Peek() int32 {
	return queue.items[queue.head]
}

// Pop removes the oldest index. It must not be called on an empty frontier.
func (queue *frontier) Pop() int32 {
	index := queue.items[queue.head]
	queue.head = (queue.head + 1) % len(queue.items)
	queue.count--
	return index
}

func (queue *frontier) grow() {
	items := make([]int32, len(queue.items)*2)
	n := copy(items, queue.items[queue.head:])
	copy(items[n:], queue.items[:queue.head])
	queue.items = items
	queue.head = 0
}
