package gomorphtag

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/msnoigrs/gomorphtag/dictionary"
)

// Model file encodings accepted by BaseConfig.ModelEncoding.
const (
	ModelEncodingUTF8   = "utf-8"
	ModelEncodingCP1251 = "cp1251"
)

type Settings interface {
	GetBaseConfig() *BaseConfig
}

type BaseConfig struct {
	Dictionary              string
	CharacterDefinitionFile string
	SuffixIndex             string
	CacheSize               int
	ModelEncoding           string
	Verify                  bool
}

func NewBaseConfig() *BaseConfig {
	bc := &BaseConfig{}
	bc.setDefaults()
	return bc
}

func (bc *BaseConfig) setDefaults() {
	bc.SuffixIndex = dictionary.SuffixIndexEnds
	bc.ModelEncoding = ModelEncodingUTF8
	bc.Verify = true
}

// DictionaryConfig returns the dictionary loading options of bc.
func (bc *BaseConfig) DictionaryConfig() *dictionary.DictionaryConfig {
	return &dictionary.DictionaryConfig{
		SuffixIndex:             bc.SuffixIndex,
		CharacterDefinitionFile: bc.CharacterDefinitionFile,
		CacheSize:               bc.CacheSize,
		Verify:                  bc.Verify,
	}
}

type SettingsJSON struct {
	BaseConfig
	path string
}

func NewSettingsJSON() *SettingsJSON {
	settings := &SettingsJSON{}
	settings.setDefaults()
	return settings
}

func (settings *SettingsJSON) GetBaseConfig() *BaseConfig {
	return &settings.BaseConfig
}

// ParseSettingsJSON reads settings from reader. Relative paths are resolved
// against "path", or defpath when the settings do not set it.
func (settings *SettingsJSON) ParseSettingsJSON(defpath string, reader io.Reader) error {
	internalBaseConfig := &struct {
		Path                    *string
		Dictionary              *string
		CharacterDefinitionFile *string
		SuffixIndex             *string
		CacheSize               *int
		ModelEncoding           *string
		Verify                  *bool
	}{}

	decoder := json.NewDecoder(reader)
	err := decoder.Decode(internalBaseConfig)
	if err != nil {
		return err
	}
	if internalBaseConfig.Path == nil {
		settings.path = defpath
	} else {
		settings.path = *internalBaseConfig.Path
	}
	if internalBaseConfig.Dictionary != nil {
		settings.Dictionary = settings.getPath(*internalBaseConfig.Dictionary)
	}
	if internalBaseConfig.CharacterDefinitionFile != nil {
		settings.CharacterDefinitionFile = settings.getPath(*internalBaseConfig.CharacterDefinitionFile)
	}
	if internalBaseConfig.SuffixIndex != nil {
		switch *internalBaseConfig.SuffixIndex {
		case dictionary.SuffixIndexEnds, dictionary.SuffixIndexWords:
			settings.SuffixIndex = *internalBaseConfig.SuffixIndex
		default:
			return fmt.Errorf("suffixIndex: %s is unknown", *internalBaseConfig.SuffixIndex)
		}
	}
	if internalBaseConfig.CacheSize != nil {
		settings.CacheSize = *internalBaseConfig.CacheSize
	}
	if internalBaseConfig.ModelEncoding != nil {
		switch *internalBaseConfig.ModelEncoding {
		case ModelEncodingUTF8, ModelEncodingCP1251:
			settings.ModelEncoding = *internalBaseConfig.ModelEncoding
		default:
			return fmt.Errorf("modelEncoding: %s is unknown", *internalBaseConfig.ModelEncoding)
		}
	}
	if internalBaseConfig.Verify != nil {
		settings.Verify = *internalBaseConfig.Verify
	}
	return nil
}

// ParseSettingsFile reads settings from filename. Relative paths default to
// the directory of the file.
func (settings *SettingsJSON) ParseSettingsFile(filename string) error {
	fd, err := os.OpenFile(filename, os.O_RDONLY, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()
	err = settings.ParseSettingsJSON(filepath.Dir(filename), fd)
	if err != nil {
		return fmt.Errorf("%s: %s", filename, err)
	}
	return nil
}

func (settings *SettingsJSON) getPath(path string) string {
	if path == "" || filepath.IsAbs(path) || settings.path == "" {
		return path
	}
	return filepath.Join(settings.path, path)
}
