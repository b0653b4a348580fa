package dictionary

import (
	"encoding/binary"
)

func bufferToInt64(bytebuffer []byte, offset int) (int, int64) {
	offsetend := offset + 8
	return offsetend, int64(binary.LittleEndian.Uint64(bytebuffer[offset:offsetend]))
}

func bufferToUint64(bytebuffer []byte, offset int) (int, uint64) {
	offsetend := offset + 8
	return offsetend, binary.LittleEndian.Uint64(bytebuffer[offset:offsetend])
}

func bufferToUint32(bytebuffer []byte, offset int) (int, uint32) {
	offsetend := offset + 4
	return offsetend, binary.LittleEndian.Uint32(bytebuffer[offset:offsetend])
}
