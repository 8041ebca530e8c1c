package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Driver: "redis",
			Addrs:  []string{"localhost:6379"},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_RedisRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing addrs")
	}
	if !strings.Contains(err.Error(), "database.addrs") {
		t.Errorf("error = %q", err)
	}
}

func TestValidate_MemoryNeedsNoAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "memory"
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "mongo"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if !strings.Contains(err.Error(), "database.driver") {
		t.Errorf("error = %q", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Database.Driver != "redis" {
		t.Errorf("Driver = %q, want redis", cfg.Database.Driver)
	}
	if cfg.Database.KeyPrefix != "nestscout:" {
		t.Errorf("KeyPrefix = %q", cfg.Database.KeyPrefix)
	}
	if cfg.OpenAI.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q", cfg.OpenAI.EmbeddingModel)
	}
	if cfg.OpenAI.Dimensions != 1536 {
		t.Errorf("Dimensions = %d", cfg.OpenAI.Dimensions)
	}
	if cfg.Search.TopK != 10 {
		t.Errorf("TopK = %d", cfg.Search.TopK)
	}
	if cfg.Evaluation.ResultsPath != "results.json" {
		t.Errorf("ResultsPath = %q", cfg.Evaluation.ResultsPath)
	}
}

func TestApplyDefaults_JudgeModelFollowsChatModel(t *testing.T) {
	cfg := Config{OpenAI: OpenAIConfig{ChatModel: "gpt-4o-mini"}}
	cfg.ApplyDefaults()

	if cfg.Evaluation.JudgeModel != "gpt-4o-mini" {
		t.Errorf("JudgeModel = %q, want gpt-4o-mini", cfg.Evaluation.JudgeModel)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("NESTSCOUT_TEST_KEY", "sk-test")

	data := expandEnvVars([]byte("api_key: ${NESTSCOUT_TEST_KEY}\nother: ${NESTSCOUT_UNSET_VAR}"))

	got := string(data)
	if !strings.Contains(got, "api_key: sk-test") {
		t.Errorf("expanded = %q", got)
	}
	if strings.Contains(got, "NESTSCOUT_UNSET_VAR") {
		t.Errorf("unset var not cleared: %q", got)
	}
}
