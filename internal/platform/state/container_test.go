package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainer_UpdateNotifiesObservers(t *testing.T) {
	t.Parallel()

	c := NewContainer(0)
	var seen []int
	c.Subscribe(func(v int) { seen = append(seen, v) })

	c.Update(func(v *int) { *v += 2 })
	c.Set(10)

	assert.Equal(t, []int{2, 10}, seen)
	assert.Equal(t, 10, c.Get())
}

func TestContainer_Unsubscribe(t *testing.T) {
	t.Parallel()

	c := NewContainer("a")
	var first, second int
	unsubFirst := c.Subscribe(func(string) { first++ })
	c.Subscribe(func(string) { second++ })

	c.Set("b")
	unsubFirst()
	c.Set("c")

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestContainer_ObserverMayReadContainer(t *testing.T) {
	t.Parallel()

	c := NewContainer(1)
	var got int
	c.Subscribe(func(int) { got = c.Get() })

	c.Set(5)
	assert.Equal(t, 5, got)
}

func TestContainer_ConcurrentUpdates(t *testing.T) {
	t.Parallel()

	c := NewContainer(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Update(func(v *int) { *v++ })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Get())
}
