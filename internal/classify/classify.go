// Package classify maps file extensions to broad content categories.
//
// Classification is a pure table lookup: no I/O, no state. The scan engine
// calls Classify once per file; everything downstream (statistics, treemap
// color modes) works in terms of the resulting Category.
package classify

import "strings"

// Category is a broad content class derived from a file extension.
type Category int

const (
	Other Category = iota
	Archive
	Audio
	Code
	Document
	Executable
	Image
	System
	Video

	// Count is the number of defined categories, for fixed-size aggregates.
	Count = int(Video) + 1
)

var categoryNames = [...]string{
	Other:      "other",
	Archive:    "archive",
	Audio:      "audio",
	Code:       "code",
	Document:   "document",
	Executable: "executable",
	Image:      "image",
	System:     "system",
	Video:      "video",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

var byExtension = map[string]Category{
	// Archives and disk images.
	"7z": Archive, "bz2": Archive, "gz": Archive, "iso": Archive,
	"rar": Archive, "tar": Archive, "tgz": Archive, "xz": Archive,
	"zip": Archive, "zst": Archive,

	// Audio.
	"aac": Audio, "flac": Audio, "m4a": Audio, "mp3": Audio,
	"ogg": Audio, "opus": Audio, "wav": Audio, "wma": Audio,

	// Source code and build manifests.
	"c": Code, "cc": Code, "cpp": Code, "cs": Code, "css": Code,
	"go": Code, "h": Code, "hpp": Code, "html": Code, "java": Code,
	"js": Code, "json": Code, "jsx": Code, "kt": Code, "lua": Code,
	"php": Code, "py": Code, "rb": Code, "rs": Code, "sh": Code,
	"sql": Code, "swift": Code, "toml": Code, "ts": Code, "tsx": Code,
	"xml": Code, "yaml": Code, "yml": Code,

	// Documents.
	"csv": Document, "doc": Document, "docx": Document, "epub": Document,
	"md": Document, "odt": Document, "pdf": Document, "ppt": Document,
	"pptx": Document, "rtf": Document, "txt": Document, "xls": Document,
	"xlsx": Document,

	// Executables and libraries.
	"a": Executable, "apk": Executable, "app": Executable, "bin": Executable,
	"deb": Executable, "dll": Executable, "dylib": Executable,
	"exe": Executable, "jar": Executable, "msi": Executable,
	"rpm": Executable, "so": Executable, "wasm": Executable,

	// Images.
	"avif": Image, "bmp": Image, "gif": Image, "heic": Image,
	"ico": Image, "jpeg": Image, "jpg": Image, "png": Image,
	"psd": Image, "raw": Image, "svg": Image, "tiff": Image,
	"webp": Image,

	// System, caches, and app-internal formats.
	"bak": System, "cache": System, "dat": System, "db": System,
	"dmp": System, "idx": System, "lock": System, "log": System,
	"pak": System, "plist": System, "sqlite": System, "swp": System,
	"sys": System, "tmp": System,

	// Video.
	"avi": Video, "flv": Video, "m4v": Video, "mkv": Video,
	"mov": Video, "mp4": Video, "mpeg": Video, "mpg": Video,
	"webm": Video, "wmv": Video,
}

// Classify returns the category for a file extension. The extension may be
// given with or without a leading dot and in any case. Unknown or empty
// extensions map to Other.
func Classify(ext string) Category {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		return Other
	}
	if cat, ok := byExtension[ext]; ok {
		return cat
	}
	return Other
}
