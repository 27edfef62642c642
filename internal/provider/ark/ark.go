package ark

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhuszti/imgbatch/internal/config"
	"github.com/fhuszti/imgbatch/internal/port"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	arkmodel "github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"
	"github.com/volcengine/volcengine-go-sdk/volcengine"
)

const Name = "ark"

// generateFunc is the one SDK call the provider needs.
type generateFunc func(ctx context.Context, req arkmodel.GenerateImagesRequest) (arkmodel.ImagesResponse, error)

type Provider struct {
	generate generateFunc
	t2i      config.GenerationParams
	edit     config.GenerationParams
}

// compile-time check: *Provider must satisfy port.ImageProvider
var _ port.ImageProvider = (*Provider)(nil)

// New builds an Ark image provider. The SDK's own retries are disabled:
// a failed task is reported, never retried.
func New(cfg config.ArkSettings) *Provider {
	opts := []arkruntime.ConfigOption{arkruntime.WithRetryTimes(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, arkruntime.WithBaseUrl(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, arkruntime.WithTimeout(cfg.Timeout))
	}
	client := arkruntime.NewClientWithApiKey(cfg.APIKey, opts...)

	return newProvider(func(ctx context.Context, req arkmodel.GenerateImagesRequest) (arkmodel.ImagesResponse, error) {
		return client.GenerateImages(ctx, req)
	}, cfg)
}

func newProvider(fn generateFunc, cfg config.ArkSettings) *Provider {
	return &Provider{generate: fn, t2i: cfg.T2I, edit: cfg.Edit}
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Generate(ctx context.Context, in port.GenerateInput) (port.GenerateOutput, error) {
	req, err := p.buildRequest(in)
	if err != nil {
		return port.GenerateOutput{}, err
	}

	resp, err := p.generate(ctx, req)
	if err != nil {
		return port.GenerateOutput{}, fmt.Errorf("ark: generate images: %w", err)
	}
	if resp.Error != nil {
		return port.GenerateOutput{}, fmt.Errorf("ark: api error %v: %s", resp.Error.Code, resp.Error.Message)
	}

	var out port.GenerateOutput
	for _, img := range resp.Data {
		if img.Url != nil && *img.Url != "" {
			out.URLs = append(out.URLs, *img.Url)
		}
	}
	return out, nil
}

func (p *Provider) buildRequest(in port.GenerateInput) (arkmodel.GenerateImagesRequest, error) {
	params := p.t2i
	if in.Kind.NeedsSource() {
		params = p.edit
	}

	req := arkmodel.GenerateImagesRequest{
		Model:          params.Model,
		Prompt:         in.Prompt,
		ResponseFormat: volcengine.String(arkmodel.GenerateImagesResponseFormatURL),
		Watermark:      volcengine.Bool(params.Watermark),
		Seed:           volcengine.Int64(params.Seed),
	}
	if params.Size != "" {
		req.Size = volcengine.String(params.Size)
	}
	if params.GuidanceScale > 0 {
		req.GuidanceScale = volcengine.Float64(params.GuidanceScale)
	}

	if in.Kind.NeedsSource() {
		if in.Source == nil || in.Source.DataURI == "" {
			return req, errors.New("ark: edit task without source image")
		}
		req.Image = volcengine.String(in.Source.DataURI)
	}
	return req, nil
}
