package intern

import (
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestInternReturnsSharedStorage(t *testing.T) {
	c := NewCache()

	doc := "alpha beta alpha"
	first := c.Intern(doc[0:5])
	second := c.Intern(doc[11:16])

	assert.Equal(t, "alpha", first)
	assert.Equal(t, unsafe.StringData(first), unsafe.StringData(second), "equal strings should share storage")
	assert.Equal(t, 1, c.Len())

	c.Intern("beta")
	assert.Equal(t, 2, c.Len())
}

func TestInternConcurrent(t *testing.T) {
	c := NewCache()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Intern(fmt.Sprintf("name-%d", i%10))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, c.Len())
}

func TestZeroValueCache(t *testing.T) {
	var c Cache
	assert.Equal(t, 0, c.Len())

	first := c.Intern("gamma")
	second := c.Intern(string([]byte("gamma")))

	assert.Equal(t, "gamma", first)
	assert.Equal(t, unsafe.StringData(first), unsafe.StringData(second))
	assert.Equal(t, 1, c.Len())
}
