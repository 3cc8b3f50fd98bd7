package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

type Variant string

const (
	VariantBase     Variant = "base"
	VariantEnriched Variant = "enriched"
)

// Hash returns the SHA-256 hex digest of v's canonical JSON form (object keys sorted).
// Values that cannot be marshalled fall back to RollingHash of their printed form.
func Hash(v any) string {
	b, err := canonicalJSON(v)
	if err != nil {
		return RollingHash(fmt.Sprintf("%v", v))
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// ConfigHash covers only the parts of a config that influence generated content:
// the topic outline, trust profiles and asset-scoring rules.
func ConfigHash(cfg types.TopicConfig) string {
	payload := map[string]any{
		"topics":        cfg.Topics(),
		"trustProfiles": cfg.TrustProfilesRaw(),
		"assetScoring":  cfg.AssetScoring(),
	}
	return Hash(payload)
}

// RollingHash is the 31-multiplier 32-bit string hash, rendered as signed hex.
func RollingHash(s string) string {
	return strconv.FormatInt(int64(rolling(s)), 16)
}

// SlugSuffix is the short collision suffix appended to duplicate slugs.
func SlugSuffix(identity string) string {
	out := strconv.FormatUint(uint64(uint32(rolling(identity))), 36)
	if len(out) > 6 {
		out = out[:6]
	}
	return out
}

func CurriculumKey(slug, configHash string, variant Variant) string {
	return slug + ":" + configHash + ":" + string(variant)
}

// AssetKey is the flattened (slug, topic, type, hash) tuple, used by key-value stores.
func AssetKey(slug, topicID string, assetType types.AssetType, configHash string) string {
	return strings.Join([]string{slug, topicID, string(assetType), configHash}, ":")
}

func rolling(s string) int32 {
	var h int32
	for _, cu := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(cu)
	}
	return h
}

func canonicalJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	// encoding/json sorts map keys, so a round trip through a generic value
	// also orders struct fields.
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
