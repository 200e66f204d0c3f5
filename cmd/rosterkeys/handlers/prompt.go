package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/rosterkeys/internal/platform/openrouter"
)

// runKeyPrompt asks for the provisioning key with masked input.
func runKeyPrompt(ctx context.Context) (string, error) {
	var key string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenRouter provisioning key").
				Description(fmt.Sprintf("Not set by --provisioning-key or %s", openrouter.ProvisioningKeyEnvVar)).
				EchoMode(huh.EchoModePassword).
				Value(&key).
				Validate(validateProvisioningKey),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("prompt canceled: %w", err)
	}
	return strings.TrimSpace(key), nil
}

// runConfirmPrompt shows summary and asks whether to create the keys.
func runConfirmPrompt(ctx context.Context, summary string) (bool, error) {
	proceed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(summary).
				Description("Keys created before a failure are not rolled back.").
				Affirmative("Create keys").
				Negative("Cancel").
				Value(&proceed),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return false, fmt.Errorf("prompt canceled: %w", err)
	}
	return proceed, nil
}

func validateProvisioningKey(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("provisioning key is required")
	}
	if strings.ContainsAny(s, " \t") {
		return errors.New("provisioning key cannot contain spaces")
	}
	return nil
}
