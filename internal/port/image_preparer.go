package port

// ImagePreparer turns a source file into something a provider accepts:
// it resizes out-of-bounds images into a temp file and encodes the result.
type ImagePreparer interface {
	Prepare(path string) (SourceImage, error)
}
