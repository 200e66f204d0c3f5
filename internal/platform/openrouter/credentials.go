package openrouter

import (
	"fmt"
	"os"
	"strings"
)

// ProvisioningKeyEnvVar holds the provisioning key when none is passed explicitly.
const ProvisioningKeyEnvVar = "OPENROUTER_PROVISIONING_KEY"

// ResolveProvisioningKey returns explicit when set, otherwise the
// environment value. It fails when neither is present.
func ResolveProvisioningKey(explicit string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv(ProvisioningKeyEnvVar)); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("provisioning key is required: pass --provisioning-key or set %s", ProvisioningKeyEnvVar)
}
