package ports

// Renamer moves a file to its terminal name once its job completes.
// os.Rename satisfies the signature through adapters/fs.
type Renamer interface {
	Rename(oldPath, newPath string) error
}
