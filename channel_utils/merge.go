package channel_utils

import (
	"sync"

	"github.com/vloex/vloex-go/application/ports/outbound"
)

// MergeChannels fans several channels into one. The merged channel closes
// once every input is drained. Draining runs on the shared worker pool, so a
// Submit failure aborts the merge before anything is forwarded.
func MergeChannels[T any](workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	merged := make(chan T)

	var wg sync.WaitGroup
	wg.Add(len(channels))

	for _, c := range channels {
		ch := c
		err := workerPool.Submit(func() {
			defer wg.Done()
			for val := range ch {
				merged <- val
			}
		})
		if err != nil {
			return nil, err
		}
	}

	if err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	}); err != nil {
		return nil, err
	}

	return merged, nil
}
