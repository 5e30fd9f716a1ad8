package lightsheet

import (
	"sync"

	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

type shardLocks struct{ mu [NumShards]sync.Mutex }

func (sl *shardLocks) lock(idx int)   { sl.mu[idx&(NumShards-1)].Lock() }
func (sl *shardLocks) unlock(idx int) { sl.mu[idx&(NumShards-1)].Unlock() }

// accumulator sums volumes slab by slab along axis 0; concurrent adds only
// contend on slabs hashing to the same shard.
type accumulator struct {
	sum   *optics.Volume
	locks shardLocks
}

func newAccumulator(n0, n1, n2 int) *accumulator {
	return &accumulator{sum: optics.NewVolume(n0, n1, n2)}
}

func (a *accumulator) add(v *optics.Volume) {
	slab := v.N1 * v.N2
	for i := 0; i < v.N0; i++ {
		a.locks.lock(i)
		dst := a.sum.Data[i*slab : (i+1)*slab]
		for j, x := range v.Data[i*slab : (i+1)*slab] {
			if isFinite(x) {
				dst[j] += x
			}
		}
		a.locks.unlock(i)
	}
}
