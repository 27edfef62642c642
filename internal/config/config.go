package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderArk       = "ark"
	ProviderDashScope = "dashscope"

	BackendLocal = "local"
	BackendMinio = "minio"
)

// GenerationParams are the fixed per-request parameters sent to a provider.
// They never depend on task data.
type GenerationParams struct {
	Model         string
	Function      string
	Size          string
	Seed          int64
	GuidanceScale float64
	Watermark     bool
}

type ArkSettings struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	T2I     GenerationParams
	Edit    GenerationParams
}

type DashScopeSettings struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	PollInterval time.Duration
	// TaskTimeout bounds how long a submitted task is polled; 0 polls until ctx ends.
	TaskTimeout time.Duration
	T2I         GenerationParams
	Edit        GenerationParams
}

type MinioSettings struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Prefix    string
}

type Settings struct {
	Provider string

	TaskFile  string
	SourceDir string
	OutputDir string
	TempDir   string

	TaskDelay     time.Duration
	ResizeEnabled bool
	ResizeMin     int
	ResizeMax     int
	FetchTimeout  time.Duration
	Resume        bool

	Ark       ArkSettings
	DashScope DashScopeSettings

	OutputBackend string
	Minio         MinioSettings

	RedisAddr     string
	RedisPassword string
	LedgerTTL     time.Duration
	QueueName     string
}

func setDefaults() {
	viper.SetDefault("PROVIDER", ProviderArk)
	viper.SetDefault("TASK_FILE", "./data/task.csv")
	viper.SetDefault("SOURCE_DIR", "./data/imgs")
	viper.SetDefault("OUTPUT_DIR", "./imgs")
	viper.SetDefault("TEMP_DIR", "./temp_imgs")
	viper.SetDefault("TASK_DELAY", "3s")
	viper.SetDefault("RESIZE_ENABLED", true)
	viper.SetDefault("RESIZE_MIN", 512)
	viper.SetDefault("RESIZE_MAX", 4096)
	viper.SetDefault("FETCH_TIMEOUT", "30s")
	viper.SetDefault("RESUME", false)

	viper.SetDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3")
	viper.SetDefault("ARK_TIMEOUT", "120s")
	viper.SetDefault("ARK_T2I_MODEL", "ep-20250811010554-qn4cd")
	viper.SetDefault("ARK_T2I_SIZE", "512x512")
	viper.SetDefault("ARK_T2I_SEED", 12345)
	viper.SetDefault("ARK_T2I_GUIDANCE_SCALE", 2.5)
	viper.SetDefault("ARK_EDIT_MODEL", "ep-20250810215112-2r7w4")
	viper.SetDefault("ARK_EDIT_SIZE", "adaptive")
	viper.SetDefault("ARK_EDIT_SEED", 123)
	viper.SetDefault("ARK_EDIT_GUIDANCE_SCALE", 5.5)
	viper.SetDefault("ARK_WATERMARK", true)

	viper.SetDefault("DASHSCOPE_BASE_URL", "https://dashscope.aliyuncs.com")
	viper.SetDefault("DASHSCOPE_TIMEOUT", "60s")
	viper.SetDefault("DASHSCOPE_POLL_INTERVAL", "2s")
	viper.SetDefault("DASHSCOPE_TASK_TIMEOUT", "10m")
	viper.SetDefault("DASHSCOPE_T2I_MODEL", "wan2.2-t2i-flash")
	viper.SetDefault("DASHSCOPE_T2I_SIZE", "1024*1024")
	viper.SetDefault("DASHSCOPE_T2I_SEED", 0)
	viper.SetDefault("DASHSCOPE_EDIT_MODEL", "wanx2.1-imageedit")
	viper.SetDefault("DASHSCOPE_EDIT_FUNCTION", "description_edit")
	viper.SetDefault("DASHSCOPE_EDIT_SEED", 0)
	viper.SetDefault("DASHSCOPE_WATERMARK", false)

	viper.SetDefault("OUTPUT_BACKEND", BackendLocal)
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("MINIO_BUCKET", "imgbatch")
	viper.SetDefault("LEDGER_TTL", "0s")
	viper.SetDefault("QUEUE_NAME", "imgbatch")
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	provider := strings.ToLower(viper.GetString("PROVIDER"))
	switch provider {
	case ProviderArk:
		if viper.GetString("ARK_API_KEY") == "" {
			return nil, fmt.Errorf("ARK_API_KEY is required")
		}
	case ProviderDashScope:
		if viper.GetString("DASHSCOPE_API_KEY") == "" {
			return nil, fmt.Errorf("DASHSCOPE_API_KEY is required")
		}
	default:
		return nil, fmt.Errorf("PROVIDER must be %q or %q, got %q", ProviderArk, ProviderDashScope, provider)
	}

	resizeMin, resizeMax := viper.GetInt("RESIZE_MIN"), viper.GetInt("RESIZE_MAX")
	if resizeMin <= 0 || resizeMax <= 0 {
		return nil, fmt.Errorf("RESIZE_MIN and RESIZE_MAX must be positive")
	}
	if resizeMin > resizeMax {
		return nil, fmt.Errorf("RESIZE_MIN (%d) must not exceed RESIZE_MAX (%d)", resizeMin, resizeMax)
	}

	backend := strings.ToLower(viper.GetString("OUTPUT_BACKEND"))
	switch backend {
	case BackendLocal:
	case BackendMinio:
		for _, k := range []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"} {
			if viper.GetString(k) == "" {
				return nil, fmt.Errorf("%s is required", k)
			}
		}
	default:
		return nil, fmt.Errorf("OUTPUT_BACKEND must be %q or %q, got %q", BackendLocal, BackendMinio, backend)
	}

	return &Settings{
		Provider:      provider,
		TaskFile:      viper.GetString("TASK_FILE"),
		SourceDir:     viper.GetString("SOURCE_DIR"),
		OutputDir:     viper.GetString("OUTPUT_DIR"),
		TempDir:       viper.GetString("TEMP_DIR"),
		TaskDelay:     viper.GetDuration("TASK_DELAY"),
		ResizeEnabled: viper.GetBool("RESIZE_ENABLED"),
		ResizeMin:     resizeMin,
		ResizeMax:     resizeMax,
		FetchTimeout:  viper.GetDuration("FETCH_TIMEOUT"),
		Resume:        viper.GetBool("RESUME"),
		Ark: ArkSettings{
			APIKey:  viper.GetString("ARK_API_KEY"),
			BaseURL: viper.GetString("ARK_BASE_URL"),
			Timeout: viper.GetDuration("ARK_TIMEOUT"),
			T2I: GenerationParams{
				Model:         viper.GetString("ARK_T2I_MODEL"),
				Size:          viper.GetString("ARK_T2I_SIZE"),
				Seed:          viper.GetInt64("ARK_T2I_SEED"),
				GuidanceScale: viper.GetFloat64("ARK_T2I_GUIDANCE_SCALE"),
				Watermark:     viper.GetBool("ARK_WATERMARK"),
			},
			Edit: GenerationParams{
				Model:         viper.GetString("ARK_EDIT_MODEL"),
				Size:          viper.GetString("ARK_EDIT_SIZE"),
				Seed:          viper.GetInt64("ARK_EDIT_SEED"),
				GuidanceScale: viper.GetFloat64("ARK_EDIT_GUIDANCE_SCALE"),
				Watermark:     viper.GetBool("ARK_WATERMARK"),
			},
		},
		DashScope: DashScopeSettings{
			APIKey:       viper.GetString("DASHSCOPE_API_KEY"),
			BaseURL:      viper.GetString("DASHSCOPE_BASE_URL"),
			Timeout:      viper.GetDuration("DASHSCOPE_TIMEOUT"),
			PollInterval: viper.GetDuration("DASHSCOPE_POLL_INTERVAL"),
			TaskTimeout:  viper.GetDuration("DASHSCOPE_TASK_TIMEOUT"),
			T2I: GenerationParams{
				Model:     viper.GetString("DASHSCOPE_T2I_MODEL"),
				Size:      viper.GetString("DASHSCOPE_T2I_SIZE"),
				Seed:      viper.GetInt64("DASHSCOPE_T2I_SEED"),
				Watermark: viper.GetBool("DASHSCOPE_WATERMARK"),
			},
			Edit: GenerationParams{
				Model:     viper.GetString("DASHSCOPE_EDIT_MODEL"),
				Function:  viper.GetString("DASHSCOPE_EDIT_FUNCTION"),
				Seed:      viper.GetInt64("DASHSCOPE_EDIT_SEED"),
				Watermark: viper.GetBool("DASHSCOPE_WATERMARK"),
			},
		},
		OutputBackend: backend,
		Minio: MinioSettings{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			Prefix:    viper.GetString("MINIO_PREFIX"),
		},
		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),
		LedgerTTL:     viper.GetDuration("LEDGER_TTL"),
		QueueName:     viper.GetString("QUEUE_NAME"),
	}, nil
}
