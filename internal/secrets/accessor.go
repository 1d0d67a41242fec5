package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/mediscribe/platform/pkg/logging"
)

// vaultAPI is the subset of the Secrets Manager client used by Accessor.
type vaultAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Accessor fetches named secret values from the vault.
type Accessor struct {
	client vaultAPI
	logger *logging.Logger
}

// NewAccessor builds an accessor backed by the provided Secrets Manager client.
func NewAccessor(client vaultAPI, logger *logging.Logger) *Accessor {
	if client == nil {
		panic("secrets: secrets manager client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Accessor{client: client, logger: logger.Named("secrets")}
}

// Fetch returns the latest value of the named secret.
func (a *Accessor) Fetch(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("secrets: secret name required")
	}

	out, err := a.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("secrets: fetch %s: %w", name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secrets: %s has no string value", name)
	}
	return *out.SecretString, nil
}

// Bundle holds the process-wide secrets, fetched once at startup and
// treated as read-only thereafter.
type Bundle struct {
	AdminPassword    string
	MasterCalendarID string
}

// LoadBundle resolves the startup secrets. A failed fetch leaves the field
// empty and logs a warning; the dependent feature degrades rather than the
// process dying.
func (a *Accessor) LoadBundle(ctx context.Context, adminPasswordName, masterCalendarName string) *Bundle {
	b := &Bundle{}

	if v, err := a.Fetch(ctx, adminPasswordName); err != nil {
		a.logger.Warn("admin password secret unavailable, admin login disabled", "secret", adminPasswordName, "error", err)
	} else {
		b.AdminPassword = v
	}

	if v, err := a.Fetch(ctx, masterCalendarName); err != nil {
		a.logger.Warn("master calendar secret unavailable, hospital calendar blocking disabled", "secret", masterCalendarName, "error", err)
	} else {
		b.MasterCalendarID = v
	}

	return b
}
