package config

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()

	if got := viper.GetInt("server.port"); got != 8080 {
		t.Errorf("Expected default server.port to be 8080, got %d", got)
	}
	if got := viper.GetString("storage.bucket"); got != "church-media" {
		t.Errorf("Expected default storage.bucket to be church-media, got %s", got)
	}
	if got := viper.GetInt64("processing.max_chunk_bytes"); got != 18874368 {
		t.Errorf("Expected default processing.max_chunk_bytes to be 18874368, got %d", got)
	}
	if got := viper.GetString("gemini.model"); got != "gemini-2.0-flash" {
		t.Errorf("Expected default gemini.model to be gemini-2.0-flash, got %s", got)
	}
	if got := viper.GetString("youtube.token_url"); got != "https://oauth2.googleapis.com/token" {
		t.Errorf("Expected default youtube.token_url to be the Google token endpoint, got %s", got)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	os.Setenv("CHURCH_SERVER_PORT", "9090")
	defer os.Unsetenv("CHURCH_SERVER_PORT")

	setDefaults()
	viper.SetEnvPrefix("CHURCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if got := viper.GetInt("server.port"); got != 9090 {
		t.Errorf("Expected server.port to be overridden to 9090, got %d", got)
	}
}

func TestValidate_AutoCorrectsWorkerCounts(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()
	viper.Set("processing.workers", -1)
	viper.Set("processing.max_concurrent_chunks", 0)

	if err := validate(); err != nil {
		t.Fatalf("validate() returned unexpected error: %v", err)
	}

	if got := viper.GetInt("processing.workers"); got != 2 {
		t.Errorf("Expected workers to be corrected to 2, got %d", got)
	}
	if got := viper.GetInt("processing.max_concurrent_chunks"); got != 2 {
		t.Errorf("Expected max_concurrent_chunks to be corrected to 2, got %d", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 8080,
				},
				Database: DatabaseConfig{
					Path: "./data/church.db",
				},
			},
			wantErr: false,
		},
		{
			name: "invalid port",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 0,
				},
			},
			wantErr: true,
		},
		{
			name: "port above range",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 70000,
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
