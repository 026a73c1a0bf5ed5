package store

import "sync"

// notifier fans out changed-key batches to subscribers. Sends never block a
// writer: a subscriber that has fallen behind its buffer drops the batch and
// catches up on the next one.
type notifier struct {
	mu   sync.Mutex
	subs []chan []string
}

const subscriberBuffer = 16

func (n *notifier) Subscribe() <-chan []string {
	ch := make(chan []string, subscriberBuffer)

	n.mu.Lock()
	n.subs = append(n.subs, ch)
	n.mu.Unlock()

	return ch
}

func (n *notifier) publish(keys []string) {
	if len(keys) == 0 {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- keys:
		default:
		}
	}
}
