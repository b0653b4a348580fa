package dartsclone

import (
	"errors"
	"io"
	"unsafe"
)

// DoubleArray is a read-only darts-clone double array. Keys are byte
// strings without NUL bytes, each mapped to a non-negative int value.
type DoubleArray struct {
	array  []uint32
	buffer []byte
}

func NewDoubleArray() *DoubleArray {
	return &DoubleArray{}
}

func (da *DoubleArray) SetArray(array []uint32) {
	da.array = array
	da.buffer = asByteArray(array)
}

// SetBuffer uses buffer in place. It must be 4-byte aligned little-endian
// units, e.g. a slice of a memory-mapped trie file.
func (da *DoubleArray) SetBuffer(buffer []byte) {
	da.buffer = buffer
	da.array = asUInt32Array(buffer)
}

func (da *DoubleArray) Array() []uint32 {
	return da.array
}

func (da *DoubleArray) ByteArray() []byte {
	return da.buffer
}

func (da *DoubleArray) Clear() {
	da.buffer = []byte{}
	da.array = []uint32{}
}

func (da *DoubleArray) Length() int {
	return len(da.array)
}

func (da *DoubleArray) TotalSize() int {
	return len(da.buffer)
}

// Build constructs the array from keys sorted in ascending byte order.
// values may be nil, in which case the value of a key is its index.
func (da *DoubleArray) Build(keys [][]byte, values []int, f ProgressFunc) error {
	dab := newDoubleArrayBuilder(f)
	array, err := dab.build(newKeySet(keys, values))
	if err != nil {
		return err
	}
	da.SetArray(array)
	return nil
}

func (da *DoubleArray) Save(writer io.Writer) (int, error) {
	return writer.Write(da.buffer)
}

// child returns the position of the child of the node at nodePos labelled
// label, or -1.
func (da *DoubleArray) child(nodePos uint32, label byte) int {
	pos := nodePos ^ daunit(da.array[nodePos]).offset() ^ uint32(label)
	if int(pos) >= len(da.array) {
		return -1
	}
	if daunit(da.array[pos]).label() != uint32(label) {
		return -1
	}
	return int(pos)
}

// leafValue returns the value stored for the key ending at nodePos.
func (da *DoubleArray) leafValue(nodePos uint32) (int, bool) {
	u := daunit(da.array[nodePos])
	if !u.hasLeaf() {
		return -1, false
	}
	return daunit(da.array[nodePos^u.offset()]).value(), true
}

// follow walks key from the root and returns the reached node.
func (da *DoubleArray) follow(key []byte) (uint32, bool) {
	if len(da.array) == 0 {
		return 0, false
	}
	var nodePos uint32
	for _, k := range key {
		pos := da.child(nodePos, k)
		if pos < 0 {
			return 0, false
		}
		nodePos = uint32(pos)
	}
	return nodePos, true
}

func (da *DoubleArray) ExactMatchSearch(key []byte) (int, int) {
	nodePos, ok := da.follow(key)
	if !ok {
		return -1, 0
	}
	value, ok := da.leafValue(nodePos)
	if !ok {
		return -1, 0
	}
	return value, len(key)
}

func (da *DoubleArray) CommonPrefixSearch(key []byte, offset int, maxNumResult int) [][2]int {
	result := make([][2]int, 0)
	if len(da.array) == 0 {
		return result
	}

	var nodePos uint32
	for i := offset; i < len(key); i++ {
		pos := da.child(nodePos, key[i])
		if pos < 0 {
			return result
		}
		nodePos = uint32(pos)
		if value, ok := da.leafValue(nodePos); ok && len(result) < maxNumResult {
			result = append(result, [2]int{value, i + 1})
		}
	}
	return result
}

// PredictiveSearch returns every key that starts with query, in ascending
// byte order, together with its value.
func (da *DoubleArray) PredictiveSearch(query []byte) ([][]byte, []int) {
	var (
		keys   [][]byte
		values []int
	)
	it := da.PredictiveSearchItr(query)
	for it.Next() {
		key, value := it.Get()
		keys = append(keys, append([]byte(nil), key...))
		values = append(values, value)
	}
	return keys, values
}

func (da *DoubleArray) PredictiveSearchItr(query []byte) *PredictiveIterator {
	it := &PredictiveIterator{da: da, value: -1}
	nodePos, ok := da.follow(query)
	if ok {
		it.stack = []frame{{nodePos: nodePos, key: append([]byte(nil), query...)}}
	}
	return it
}

type frame struct {
	nodePos uint32
	key     []byte
}

// PredictiveIterator enumerates the keys below a node depth first. Children
// are pushed in reverse label order so keys come out sorted.
type PredictiveIterator struct {
	da    *DoubleArray
	stack []frame
	key   []byte
	value int
	err   error
}

func (it *PredictiveIterator) Next() bool {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		for label := 255; label > 0; label-- {
			pos := it.da.child(top.nodePos, byte(label))
			if pos < 0 {
				continue
			}
			key := make([]byte, len(top.key)+1)
			copy(key, top.key)
			key[len(top.key)] = byte(label)
			it.stack = append(it.stack, frame{nodePos: uint32(pos), key: key})
		}

		if value, ok := it.da.leafValue(top.nodePos); ok {
			it.key = top.key
			it.value = value
			return true
		}
	}
	it.key = nil
	it.value = -1
	return false
}

// Get returns the current key and its value. The key must not be modified.
func (it *PredictiveIterator) Get() ([]byte, int) {
	if it.key == nil {
		it.err = errors.New("No more element")
	}
	return it.key, it.value
}

func (it *PredictiveIterator) Err() error {
	return it.err
}

func asUInt32Array(data []byte) []uint32 {
	if len(data) < 4 {
		return []uint32{}
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}

func asByteArray(data []uint32) []byte {
	if len(data) == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
}

type daunit uint32

func (u daunit) hasLeaf() bool {
	return ((uint32(u) >> 8) & uint32(1)) == 1
}

func (u daunit) value() int {
	return int(uint32(u) & ((uint32(1) << 31) - 1))
}

// label keeps the MSB so that value units never match a byte label.
func (u daunit) label() uint32 {
	return uint32(u) & ((uint32(1) << 31) | 0xFF)
}

func (u daunit) offset() uint32 {
	return (uint32(u) >> 10) << ((uint32(u) & (uint32(1) << 9)) >> 6)
}
