package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/msnoigrs/gomorphtag/dartsclone"
	"github.com/msnoigrs/gomorphtag/internal/mmap"
)

// KeySeparator separates the fields of a trie key.
const KeySeparator = ' '

// Index is a read-only trie of textual keys.
type Index interface {
	// PredictiveSearch iterates over every key starting with query.
	PredictiveSearch(query []byte) KeyIterator
}

type KeyIterator interface {
	Next() bool
	// Key is the whole stored key.
	Key() []byte
	// Remainder is Key without the query prefix.
	Remainder() []byte
}

// TrieIndex is a double array trie stored in a file behind a
// DictionaryHeader, or built in memory.
type TrieIndex struct {
	fd     *os.File
	fmap   []byte
	Header *DictionaryHeader
	trie   *dartsclone.DoubleArray
}

// OpenTrieIndex maps filename read-only and checks that its header carries
// version.
func OpenTrieIndex(filename string, version uint64) (*TrieIndex, error) {
	fd, err := os.OpenFile(filename, os.O_RDONLY, 0644)
	if err != nil {
		return nil, err
	}

	finfo, err := fd.Stat()
	if err != nil {
		_ = fd.Close()
		return nil, err
	}
	fmap, err := mmap.Mmap(fd, false, 0, finfo.Size())
	if err != nil {
		_ = fd.Close()
		return nil, err
	}

	ti, err := newTrieIndex(fmap, version)
	if err != nil {
		_ = mmap.Munmap(fmap)
		_ = fd.Close()
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	_ = mmap.Madvise(fmap, false)
	ti.fd = fd
	ti.fmap = fmap
	return ti, nil
}

func newTrieIndex(buffer []byte, version uint64) (*TrieIndex, error) {
	header, err := ParseDictionaryHeader(buffer, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrCorruptedDictionary)
	}
	if header.Version != version {
		return nil, fmt.Errorf("invalid trie version %#x, expected %#x: %w", header.Version, version, ErrCorruptedDictionary)
	}

	offset := HeaderStorageSize
	if len(buffer) < offset+4 {
		return nil, fmt.Errorf("missing trie size: %w", ErrCorruptedDictionary)
	}
	offset, size := bufferToUint32(buffer, offset)
	end := offset + int(size)*4
	if size == 0 || end > len(buffer) {
		return nil, fmt.Errorf("invalid trie size %d: %w", size, ErrCorruptedDictionary)
	}

	trie := dartsclone.NewDoubleArray()
	trie.SetBuffer(buffer[offset:end])
	return &TrieIndex{
		Header: header,
		trie:   trie,
	}, nil
}

// BuildTrieIndex builds an in-memory index from keys sorted in ascending
// byte order.
func BuildTrieIndex(header *DictionaryHeader, keys [][]byte) (*TrieIndex, error) {
	trie := dartsclone.NewDoubleArray()
	if err := trie.Build(keys, nil, nil); err != nil {
		return nil, err
	}
	return &TrieIndex{
		Header: header,
		trie:   trie,
	}, nil
}

func (ti *TrieIndex) Length() int {
	return ti.trie.Length()
}

// WriteTo writes the header, the unit count and the units.
func (ti *TrieIndex) WriteTo(writer io.Writer) (int64, error) {
	bwriter := bufio.NewWriter(writer)

	hb, err := ti.Header.ToBytes()
	if err != nil {
		return 0, err
	}
	n, err := bwriter.Write(hb)
	if err != nil {
		return int64(n), err
	}
	total := int64(n)

	err = binary.Write(bwriter, binary.LittleEndian, uint32(ti.trie.Length()))
	if err != nil {
		return total, err
	}
	total += 4

	n, err = ti.trie.Save(bwriter)
	total += int64(n)
	if err != nil {
		return total, err
	}
	return total, bwriter.Flush()
}

func (ti *TrieIndex) PredictiveSearch(query []byte) KeyIterator {
	return &trieKeyIterator{
		it:       ti.trie.PredictiveSearchItr(query),
		queryLen: len(query),
	}
}

// Close releases the file mapping. In-memory indexes need no Close.
func (ti *TrieIndex) Close() error {
	if ti.fd == nil {
		return nil
	}
	err := mmap.Munmap(ti.fmap)
	if err != nil {
		return err
	}
	ti.fmap = nil
	ti.trie.Clear()
	err = ti.fd.Close()
	ti.fd = nil
	return err
}

type trieKeyIterator struct {
	it       *dartsclone.PredictiveIterator
	queryLen int
	key      []byte
}

func (it *trieKeyIterator) Next() bool {
	if !it.it.Next() {
		it.key = nil
		return false
	}
	it.key, _ = it.it.Get()
	return true
}

func (it *trieKeyIterator) Key() []byte {
	return it.key
}

func (it *trieKeyIterator) Remainder() []byte {
	return it.key[it.queryLen:]
}
