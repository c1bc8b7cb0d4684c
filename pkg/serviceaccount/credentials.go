package serviceaccount

import (
	"encoding/json"
	"errors"
	"fmt"

	ycsdk "github.com/yandex-cloud/go-sdk"
	"github.com/yandex-cloud/go-sdk/iamkey"
)

// ErrNoCredentials is returned when neither a key nor a token is supplied.
var ErrNoCredentials = errors.New("no Yandex Cloud credentials provided")

// keyFields are the parts of an authorized key file the SDK needs.
type keyFields struct {
	ID               string `json:"id"`
	ServiceAccountID string `json:"service_account_id"`
	PrivateKey       string `json:"private_key"`
}

// ValidateKeyJSON checks that data is an authorized key for a service account.
func ValidateKeyJSON(data []byte) error {
	var key keyFields
	if err := json.Unmarshal(data, &key); err != nil {
		return fmt.Errorf("failed to parse service account key JSON: %w", err)
	}

	var missing []string

	if key.ID == "" {
		missing = append(missing, "id")
	}

	if key.ServiceAccountID == "" {
		missing = append(missing, "service_account_id")
	}

	if key.PrivateKey == "" {
		missing = append(missing, "private_key")
	}

	if len(missing) > 0 {
		return fmt.Errorf("service account key is missing required fields: %v", missing)
	}

	return nil
}

// Credentials returns SDK credentials from a service account key JSON or,
// when that is empty, from an IAM token.
func Credentials(keyJSON, iamToken string) (ycsdk.Credentials, error) {
	switch {
	case keyJSON != "":
		if err := ValidateKeyJSON([]byte(keyJSON)); err != nil {
			return nil, err
		}

		key, err := iamkey.ReadFromJSONBytes([]byte(keyJSON))
		if err != nil {
			return nil, fmt.Errorf("failed to read service account JSON: %w", err)
		}

		credentials, err := ycsdk.ServiceAccountKey(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create credentials: %w", err)
		}

		return credentials, nil
	case iamToken != "":
		return ycsdk.NewIAMTokenCredentials(iamToken), nil
	default:
		return nil, ErrNoCredentials
	}
}
