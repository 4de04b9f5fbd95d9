package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownFileFormat = errors.New("unknown file format")

// FileFormat is the on-disk alignment format; it sets the compression applied
// to every test size. Keep these values stable; they are used in config files and the API.
type FileFormat string

const (
	FormatBAM    FileFormat = "BAM"
	FormatCRAMv2 FileFormat = "CRAMV2"
	FormatCRAMv3 FileFormat = "CRAMV3"
)

var compression = map[FileFormat]float64{
	FormatBAM:    1.0,
	FormatCRAMv2: 0.7,
	FormatCRAMv3: 0.6,
}

// FileFormats lists the accepted formats in menu order.
func FileFormats() []FileFormat {
	return []FileFormat{FormatBAM, FormatCRAMv2, FormatCRAMv3}
}

// ParseFileFormat accepts the enumerated formats, case-insensitively.
func ParseFileFormat(s string) (FileFormat, error) {
	f := FileFormat(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := compression[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFileFormat, s)
	}
	return f, nil
}

// Compression returns the size multiplier for the format.
func (f FileFormat) Compression() (float64, error) {
	m, ok := compression[f]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFileFormat, string(f))
	}
	return m, nil
}

// TestType is a category of sequencing test.
type TestType string

const (
	TestGenome TestType = "genome"
	TestExome  TestType = "exome"
	TestPanel  TestType = "panel"
)

// TestTypes lists test types in display order.
func TestTypes() []TestType {
	return []TestType{TestGenome, TestExome, TestPanel}
}
