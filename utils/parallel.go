package utils

import "fmt"

// PartitionMap splits a global index space into ParallelDegree contiguous
// buckets with a maximum imbalance of one item, one bucket per rank.
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bucketNum int) (kMax int) {
	if bucketNum == -1 {
		kMax = pm.MaxIndex
		return
	}
	var (
		k1, k2 = pm.GetBucketRange(bucketNum)
	)
	kMax = k2 - k1
	return
}

func (pm *PartitionMap) GetGlobalK(kLocal, bucketNum int) (kGlobal int) {
	if bucketNum == -1 {
		kGlobal = kLocal
		return
	}
	var (
		kMin = pm.Partitions[bucketNum][0]
	)
	kGlobal = kMin + kLocal
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// Splits one dimension into ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// Communicator is the point-to-point and collective surface the solver needs
// from a process group. Ranks execute the same program, so every rank reaches
// each collective in the same order.
type Communicator interface {
	Rank() int
	Size() int
	// SendRecv posts send to dest, then blocks for a message from src. A
	// negative dest skips the send, a negative src skips the receive and
	// returns nil.
	SendRecv(dest int, send []float64, src int) (recv []float64)
	AllReduceMin(x float64) float64
	AllReduceMax(x float64) float64
}

// LocalGroup connects size ranks within one process through buffered channel
// links, one per directed pair. Links are FIFO and every rank runs the same
// sequence of exchanges, so a small buffer cannot deadlock.
type LocalGroup struct {
	size  int
	links [][]chan []float64 // links[from][to]
}

// NewLocalGroup returns one connected Communicator per rank.
func NewLocalGroup(size int) (comms []Communicator) {
	if size < 1 {
		panic(fmt.Errorf("invalid group size %d", size))
	}
	g := &LocalGroup{
		size:  size,
		links: make([][]chan []float64, size),
	}
	for from := 0; from < size; from++ {
		g.links[from] = make([]chan []float64, size)
		for to := 0; to < size; to++ {
			g.links[from][to] = make(chan []float64, 2)
		}
	}
	comms = make([]Communicator, size)
	for n := 0; n < size; n++ {
		comms[n] = &RankComm{rank: n, group: g}
	}
	return
}

// RankComm is one rank's endpoint into a LocalGroup.
type RankComm struct {
	rank  int
	group *LocalGroup
}

func (c *RankComm) Rank() int { return c.rank }
func (c *RankComm) Size() int { return c.group.size }

func (c *RankComm) SendRecv(dest int, send []float64, src int) (recv []float64) {
	if dest >= 0 {
		if dest >= c.group.size {
			panic(fmt.Errorf("rank %d out of bounds sending to %d", c.rank, dest))
		}
		buf := make([]float64, len(send))
		copy(buf, send)
		c.group.links[c.rank][dest] <- buf
	}
	if src >= 0 {
		if src >= c.group.size {
			panic(fmt.Errorf("rank %d out of bounds receiving from %d", c.rank, src))
		}
		recv = <-c.group.links[src][c.rank]
	}
	return
}

func (c *RankComm) AllReduceMin(x float64) float64 {
	return c.allReduce(x, func(a, b float64) float64 {
		if b < a {
			return b
		}
		return a
	})
}

func (c *RankComm) AllReduceMax(x float64) float64 {
	return c.allReduce(x, func(a, b float64) float64 {
		if b > a {
			return b
		}
		return a
	})
}

func (c *RankComm) allReduce(x float64, combine func(a, b float64) float64) (r float64) {
	var (
		size = c.group.size
		msg  = []float64{x}
	)
	for n := 0; n < size; n++ {
		if n != c.rank {
			c.group.links[c.rank][n] <- msg
		}
	}
	r = x
	for n := 0; n < size; n++ {
		if n != c.rank {
			peer := <-c.group.links[n][c.rank]
			r = combine(r, peer[0])
		}
	}
	return
}

// SelfComm is the degenerate single-rank Communicator.
type SelfComm struct{}

func (SelfComm) Rank() int { return 0 }
func (SelfComm) Size() int { return 1 }
func (SelfComm) SendRecv(dest int, send []float64, src int) (recv []float64) {
	if src >= 0 {
		panic("no peers in a single rank group")
	}
	return nil
}
func (SelfComm) AllReduceMin(x float64) float64 { return x }
func (SelfComm) AllReduceMax(x float64) float64 { return x }
