package mirror

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// TopicFromSignature computes the topic0 hash for a Solidity event
// signature such as "Transfer(address,address,uint256)". The hash is the
// Keccak-256 digest of the exact signature bytes, the same value nodes
// store as the first topic of every matching log.
func TopicFromSignature(signature string) (common.Hash, error) {
	if !strings.Contains(signature, "(") || !strings.Contains(signature, ")") {
		return common.Hash{}, fmt.Errorf("%w: %q must look like Name(type1,type2,...)", ErrInvalidSignature, signature)
	}
	return crypto.Keccak256Hash([]byte(signature)), nil
}
