package mock

import (
	"context"

	"github.com/fhuszti/imgbatch/internal/port"
)

// Provider implements port.ImageProvider for tests.
type Provider struct {
	// stored values
	URLs []string

	// captured inputs
	Inputs []port.GenerateInput

	// errors
	GenerateErr error

	// call flags
	GenerateCalled bool
}

func (m *Provider) Name() string { return "mock" }

func (m *Provider) Generate(ctx context.Context, in port.GenerateInput) (port.GenerateOutput, error) {
	m.GenerateCalled = true
	m.Inputs = append(m.Inputs, in)
	if m.GenerateErr != nil {
		return port.GenerateOutput{}, m.GenerateErr
	}
	return port.GenerateOutput{URLs: m.URLs}, nil
}
