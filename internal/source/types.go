package source

type (
	// FileID uniquely identifies an expression source within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the source was added from memory (argument, repl, test).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File captures metadata and content for a single expression source.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n' bytes
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
