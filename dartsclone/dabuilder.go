package dartsclone

import (
	"fmt"
)

// Units are allocated in blocks. Only the last numOpenBlocks blocks can still
// receive children; older blocks are closed as the array grows.
const (
	blockSize     = 256
	numOpenBlocks = 16
	numOpenUnits  = blockSize * numOpenBlocks
	upperMask     = 0xFF << 21
	lowerMask     = 0xFF
	maxOffset     = 1 << 29
)

const (
	hasLeafBit  = uint32(1) << 8
	extendedBit = uint32(1) << 9
	leafBit     = uint32(1) << 31
)

// ProgressFunc receives the number of keys placed so far and the total.
type ProgressFunc func(state int, max int)

func withLeaf(u uint32) uint32 {
	return u | hasLeafBit
}

func leafUnit(value int) uint32 {
	return uint32(value) | leafBit
}

func withLabel(u uint32, label byte) uint32 {
	return u&^uint32(0xFF) | uint32(label)
}

func withOffset(u uint32, offset int) uint32 {
	u &= leafBit | hasLeafBit | 0xFF
	if uint32(offset) < 1<<21 {
		return u | uint32(offset)<<10
	}
	return u | uint32(offset)<<2 | extendedBit
}

// keySet is a sorted list of unique keys. A nil values slice maps every key
// to its index.
type keySet struct {
	keys   [][]byte
	values []int
}

func newKeySet(keys [][]byte, values []int) *keySet {
	return &keySet{keys: keys, values: values}
}

func (ks *keySet) length() int {
	return len(ks.keys)
}

// label is 0 past the end of key i.
func (ks *keySet) label(i int, depth int) byte {
	if depth >= len(ks.keys[i]) {
		return 0
	}
	return ks.keys[i][depth]
}

func (ks *keySet) value(i int) int {
	if ks.values == nil {
		return i
	}
	return ks.values[i]
}

// freeUnit is the bookkeeping of one unit in an open block. Unfixed units
// form a doubly linked ring starting at doubleArrayBuilder.head.
type freeUnit struct {
	prev  int
	next  int
	fixed bool
	used  bool
}

type doubleArrayBuilder struct {
	progress ProgressFunc
	units    []uint32
	ring     []freeUnit
	labels   []byte
	head     int
}

func newDoubleArrayBuilder(f ProgressFunc) *doubleArrayBuilder {
	return &doubleArrayBuilder{progress: f}
}

func (dab *doubleArrayBuilder) build(ks *keySet) ([]uint32, error) {
	capacity := 1
	for capacity < ks.length() {
		capacity *= 2
	}
	dab.units = make([]uint32, 0, capacity)
	dab.ring = make([]freeUnit, numOpenUnits)

	dab.reserve(0)
	dab.at(0).used = true
	dab.units[0] = withLabel(withOffset(dab.units[0], 1), 0)

	if ks.length() > 0 {
		if err := dab.insert(ks, 0, ks.length(), 0, 0); err != nil {
			return nil, err
		}
	}

	blocks := len(dab.units) / blockSize
	first := 0
	if blocks > numOpenBlocks {
		first = blocks - numOpenBlocks
	}
	for b := first; b < blocks; b++ {
		dab.closeBlock(b)
	}

	dab.ring = nil
	dab.labels = nil
	return dab.units, nil
}

func (dab *doubleArrayBuilder) at(id int) *freeUnit {
	return &dab.ring[id%numOpenUnits]
}

// insert places the children of keys [begin, end) at depth under the unit
// parent, then descends into each distinct non-terminal label.
func (dab *doubleArrayBuilder) insert(ks *keySet, begin, end, depth, parent int) error {
	value, err := dab.collectLabels(ks, begin, end, depth)
	if err != nil {
		return err
	}
	offset, err := dab.place(parent, value)
	if err != nil {
		return err
	}

	for begin < end && ks.label(begin, depth) == 0 {
		begin++
	}
	for begin < end {
		label := ks.label(begin, depth)
		next := begin + 1
		for next < end && ks.label(next, depth) == label {
			next++
		}
		if err := dab.insert(ks, begin, next, depth+1, offset^int(label)); err != nil {
			return err
		}
		begin = next
	}
	return nil
}

// collectLabels fills dab.labels with the distinct labels of keys
// [begin, end) at depth and returns the value of the key ending there, or -1.
func (dab *doubleArrayBuilder) collectLabels(ks *keySet, begin, end, depth int) (int, error) {
	dab.labels = dab.labels[:0]
	value := -1
	for i := begin; i < end; i++ {
		label := ks.label(i, depth)
		if label == 0 {
			if depth < len(ks.keys[i]) {
				return 0, fmt.Errorf("key %d contains a null byte", i)
			}
			if ks.value(i) < 0 {
				return 0, fmt.Errorf("key %d has a negative value", i)
			}
			if value == -1 {
				value = ks.value(i)
			}
			if dab.progress != nil {
				dab.progress(i+1, ks.length())
			}
		}

		n := len(dab.labels)
		switch {
		case n == 0 || label > dab.labels[n-1]:
			dab.labels = append(dab.labels, label)
		case label < dab.labels[n-1]:
			return 0, fmt.Errorf("keys are not sorted at key %d", i)
		}
	}
	return value, nil
}

// place finds an offset for dab.labels below parent and reserves the child
// units.
func (dab *doubleArrayBuilder) place(parent int, value int) (int, error) {
	offset := dab.findOffset(parent)
	if offset^parent >= maxOffset {
		return 0, fmt.Errorf("offset %d is too large", offset^parent)
	}
	dab.units[parent] = withOffset(dab.units[parent], parent^offset)

	for _, label := range dab.labels {
		child := offset ^ int(label)
		dab.reserve(child)
		if label == 0 {
			dab.units[parent] = withLeaf(dab.units[parent])
			dab.units[child] = leafUnit(value)
		} else {
			dab.units[child] = withLabel(dab.units[child], label)
		}
	}
	dab.at(offset).used = true
	return offset, nil
}

func (dab *doubleArrayBuilder) findOffset(parent int) int {
	fallback := len(dab.units) | (parent & lowerMask)
	if dab.head >= len(dab.units) {
		return fallback
	}
	id := dab.head
	for {
		offset := id ^ int(dab.labels[0])
		if dab.fits(parent, offset) {
			return offset
		}
		id = dab.at(id).next
		if id == dab.head {
			return fallback
		}
	}
}

func (dab *doubleArrayBuilder) fits(parent int, offset int) bool {
	if dab.at(offset).used {
		return false
	}
	rel := parent ^ offset
	if rel&lowerMask != 0 && rel&upperMask != 0 {
		return false
	}
	for _, label := range dab.labels[1:] {
		if dab.at(offset ^ int(label)).fixed {
			return false
		}
	}
	return true
}

// reserve unlinks id from the free ring, growing the array when needed.
func (dab *doubleArrayBuilder) reserve(id int) {
	if id >= len(dab.units) {
		dab.grow()
	}
	if id == dab.head {
		dab.head = dab.at(id).next
		if dab.head == id {
			dab.head = len(dab.units)
		}
	}
	u := dab.at(id)
	dab.at(u.prev).next = u.next
	dab.at(u.next).prev = u.prev
	u.fixed = true
}

// grow appends one block and links its units in front of the ring head.
func (dab *doubleArrayBuilder) grow() {
	begin := len(dab.units)
	end := begin + blockSize
	blocks := begin/blockSize + 1

	if blocks > numOpenBlocks {
		dab.closeBlock(blocks - 1 - numOpenBlocks)
	}
	dab.units = append(dab.units, make([]uint32, blockSize)...)
	if blocks > numOpenBlocks {
		for id := begin; id < end; id++ {
			*dab.at(id) = freeUnit{}
		}
	}

	for id := begin + 1; id < end; id++ {
		dab.at(id - 1).next = id
		dab.at(id).prev = id - 1
	}
	// the new block is a ring of its own before it is spliced in, since the
	// head may be begin itself
	dab.at(begin).prev = end - 1
	dab.at(end - 1).next = begin

	tail := dab.at(dab.head).prev
	dab.at(begin).prev = tail
	dab.at(end - 1).next = dab.head
	dab.at(tail).next = begin
	dab.at(dab.head).prev = end - 1
}

// closeBlock reserves every remaining unit of a block and labels it so that
// no lookup from a used offset can match it.
func (dab *doubleArrayBuilder) closeBlock(block int) {
	begin := block * blockSize
	end := begin + blockSize

	unused := 0
	for offset := begin; offset < end; offset++ {
		if !dab.at(offset).used {
			unused = offset
			break
		}
	}
	for id := begin; id < end; id++ {
		if !dab.at(id).fixed {
			dab.reserve(id)
			dab.units[id] = withLabel(dab.units[id], byte(id^unused))
		}
	}
}
