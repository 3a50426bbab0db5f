package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Dataset    Dataset    `mapstructure:",squash"`
	Anvisa     Anvisa     `mapstructure:",squash"`
	Output     Output     `mapstructure:",squash"`
	MirrorSync MirrorSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level" validate:"required"`
}

// Dataset aponta para os arquivos mensais locais
type Dataset struct {
	Dir        string `mapstructure:"data_dir" validate:"required"`
	FilePrefix string `mapstructure:"file_prefix" validate:"required"`
}

// Anvisa descreve o portal de dados abertos de onde os meses são baixados
type Anvisa struct {
	SourceURL         string        `mapstructure:"source_url" validate:"required,url"`
	RemotePrefix      string        `mapstructure:"remote_prefix" validate:"required"`
	DownloadTimeout   time.Duration `mapstructure:"download_timeout" validate:"gt=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gte=0"` // 0 desliga o limite
}

type Output struct {
	Dir             string  `mapstructure:"output_dir" validate:"required"`
	GifFPS          int     `mapstructure:"gif_fps"`
	ChloroquineVMax float64 `mapstructure:"chloroquine_vmax" validate:"gt=0"`
}

type MirrorSync struct {
	CronSchedule string `mapstructure:"mirror_sync_cron" validate:"required_if=Enabled true"`
	Enabled      bool   `mapstructure:"mirror_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("DATA_DIR", "dados")
	viper.SetDefault("FILE_PREFIX", "Manipulados")

	viper.SetDefault("SOURCE_URL", "https://dados.anvisa.gov.br/dados/SNGPC/Manipulados")
	viper.SetDefault("REMOTE_PREFIX", "EDA_Manipulados")
	viper.SetDefault("DOWNLOAD_TIMEOUT", "5m") // Arquivos mensais passam de 100MB
	viper.SetDefault("REQUESTS_PER_SECOND", 1)

	viper.SetDefault("OUTPUT_DIR", "imagens")
	viper.SetDefault("GIF_FPS", 4)
	viper.SetDefault("CHLOROQUINE_VMAX", 400) // Teto da escala de cores do mapa

	viper.SetDefault("MIRROR_SYNC_CRON", "0 3 1 * *") // No primeiro dia de cada mês às 3h da manhã
	viper.SetDefault("MIRROR_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.Output.GifFPS <= 0 {
		config.Output.GifFPS = 4
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de: ", location)
			return
		}
	}
}
