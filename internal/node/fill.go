package node

import "github.com/specialistvlad/novagraph/internal/queue"

// compiler is the state of one compile pass. Tail counts are memoized so that
// every group is measured once, however deep it sits.
type compiler struct {
	q     *queue.Queue
	tails map[Group]int
}

func newCompiler(q *queue.Queue) *compiler {
	return &compiler{q: q, tails: make(map[Group]int)}
}

// tail is tailCount with memoization. It agrees with Group.TailNodes.
func (c *compiler) tail(n Node) int {
	g, ok := n.(Group)
	if !ok {
		return 1
	}
	if t, ok := c.tails[g]; ok {
		return t
	}

	t := 0
	if g.IsParallel() {
		for child := range g.Children() {
			t += c.tail(child)
		}
	} else {
		for e := g.core().children.Back(); e != nil; e = e.Prev() {
			if t = c.tail(e.Value); t > 0 {
				break
			}
		}
	}
	c.tails[g] = t
	return t
}

// FillQueue compiles the tree below root into q. Items with nothing to wait
// for get an activation limit of zero. A tree without synths adds nothing.
func FillQueue(root Group, q *queue.Queue) {
	c := newCompiler(q)
	if c.tail(root) == 0 {
		return
	}
	root.fillQueue(c, nil, 0)
}

// Compile allocates a queue sized for root's synths and fills it.
func Compile(root Group) *queue.Queue {
	synths, _ := root.ChildCountDeep()
	q := queue.New(synths)
	FillQueue(root, q)
	return q
}
