package dictionary

const (
	WordsTrieVersion = 0x6d6f7270685f7731
	EndsTrieVersion  = 0x6d6f7270685f6531
)

func IsTrieVersion(version uint64) bool {
	return version == WordsTrieVersion || version == EndsTrieVersion
}

// TrieTypeName names the index kind stored under version.
func TrieTypeName(version uint64) string {
	switch version {
	case WordsTrieVersion:
		return "word form index"
	case EndsTrieVersion:
		return "suffix statistics index"
	}
	return ""
}
