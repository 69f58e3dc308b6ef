package helpers

import (
	"strings"

	"github.com/google/uuid"
)

// GenPurchaseCode generates a unique, human-shareable ticket reference,
// e.g. "TKT-9F2C41A7D3B8". Uniqueness is ultimately enforced by the
// purchase_code unique constraint.
func GenPurchaseCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TKT-" + raw[:12]
}
