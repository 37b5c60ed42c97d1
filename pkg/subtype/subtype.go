package subtype

import (
	"path/filepath"
	"regexp"
	"strings"
)

type Format string

const (
	Unknown Format = ""
	ASS     Format = "ass"
	SSA     Format = "ssa"
	SRT     Format = "srt"
	VTT     Format = "vtt"
)

var srtTimestamp = regexp.MustCompile(`(\d{1,2}):(\d{2}):(\d{2})[.,](\d{2,3})`)

// FromName maps a file extension to a format.
func FromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ass":
		return ASS
	case ".ssa":
		return SSA
	case ".srt":
		return SRT
	case ".vtt":
		return VTT
	}
	return Unknown
}

// Guess looks at the content of a subtitle file to tell its format.
func Guess(sub string) Format {
	lsub := strings.ToLower(sub)
	if strings.Contains(lsub, "[v4+ styles]") {
		return ASS
	}
	if strings.Contains(lsub, "[v4 styles]") {
		return SSA
	}
	if strings.Contains(lsub, "[events]") && strings.Contains(lsub, "dialogue:") {
		return ASS
	}
	if strings.HasPrefix(strings.TrimLeft(sub, " \ufeff"), "WEBVTT") {
		return VTT
	}
	for _, l := range strings.Split(sub, "\n") {
		if len(srtTimestamp.FindAllString(l, 3)) == 2 {
			return SRT
		}
	}
	return Unknown
}
