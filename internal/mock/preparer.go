package mock

import "github.com/fhuszti/imgbatch/internal/port"

// Preparer implements port.ImagePreparer without touching the image.
type Preparer struct {
	Out   port.SourceImage
	Paths []string

	PrepareErr error

	PrepareCalled bool
}

func (m *Preparer) Prepare(path string) (port.SourceImage, error) {
	m.PrepareCalled = true
	m.Paths = append(m.Paths, path)
	if m.PrepareErr != nil {
		return port.SourceImage{}, m.PrepareErr
	}
	out := m.Out
	if out.Path == "" {
		out.Path = path
	}
	return out, nil
}
