package unit

import (
	"context"
	"os"
	"testing"

	"github.com/ErenSahind/qr-menu/internal/awsx"
)

func TestLoadAWSConfig_DefaultRegion(t *testing.T) {
	os.Setenv("AWS_REGION", "")

	cfg, err := awsx.LoadAWSConfig(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Region != "us-east-1" {
		t.Fatalf("expected default region 'us-east-1', got %s", cfg.Region)
	}
}

func TestLoadAWSConfig_ExplicitRegion(t *testing.T) {
	os.Setenv("AWS_REGION", "eu-central-1")
	defer os.Setenv("AWS_REGION", "")

	cfg, err := awsx.LoadAWSConfig(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Region != "eu-central-1" {
		t.Fatalf("region mismatch, got %s", cfg.Region)
	}
}
