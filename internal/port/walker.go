package port

// FileWalker lists the files under root that should be estimated.
type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path string
	Size int64
}

// FileReader reads a file as text. Implementations must reject content that
// is not valid UTF-8.
type FileReader interface {
	ReadText(path string) (string, error)
}
