package dictionary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	DescriptionSize   = 256
	HeaderStorageSize = 8 + 8 + DescriptionSize
)

// DictionaryHeader prefixes every trie file.
type DictionaryHeader struct {
	Version     uint64
	CreateTime  int64
	Description string
}

func NewDictionaryHeader(version uint64, createTime int64, description string) *DictionaryHeader {
	return &DictionaryHeader{
		Version:     version,
		CreateTime:  createTime,
		Description: description,
	}
}

func ParseDictionaryHeader(input []byte, offset int) (*DictionaryHeader, error) {
	if len(input)-offset < HeaderStorageSize {
		return nil, fmt.Errorf("header is too short: %d bytes", len(input)-offset)
	}
	offset, version := bufferToUint64(input, offset)
	offset, createTime := bufferToInt64(input, offset)

	end := offset + DescriptionSize
	i := offset
	for ; i < end; i++ {
		if input[i] == 0 {
			break
		}
	}
	// UTF-8
	description := string(input[offset:i])

	return &DictionaryHeader{
		Version:     version,
		CreateTime:  createTime,
		Description: description,
	}, nil
}

func (dh *DictionaryHeader) ToBytes() ([]byte, error) {
	desc := []byte(dh.Description)
	if len(desc) > DescriptionSize {
		return nil, errors.New("description is too long")
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderStorageSize))
	err := binary.Write(buf, binary.LittleEndian, dh.Version)
	if err != nil {
		return nil, err
	}
	err = binary.Write(buf, binary.LittleEndian, dh.CreateTime)
	if err != nil {
		return nil, err
	}
	buf.Write(desc)
	buf.Write(make([]byte, DescriptionSize-len(desc)))
	return buf.Bytes(), nil
}
