package mirror

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParseAddress validates a contract address string and returns its
// normalized form.
func ParseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("%w: %s", ErrInvalidAddress, input)
	}
	return common.HexToAddress(input), nil
}

// ValidateEndpoint checks that an RPC URL carries a dialable scheme.
func ValidateEndpoint(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEndpoint, rawURL)
	}
	switch parsed.Scheme {
	case "http", "https", "ws", "wss":
		return nil
	default:
		return fmt.Errorf("%w: %s (scheme must be http, https, ws or wss)", ErrInvalidEndpoint, rawURL)
	}
}
