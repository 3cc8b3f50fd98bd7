package curriculum

import "strings"

// TopicConfig is one subject's raw configuration document as served by the config source.
type TopicConfig map[string]any

func (c TopicConfig) Name() string {
	if s, ok := c["name"].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Topics returns the topic outline, preferring the nested topics.topics form.
// It returns nil when the config has no outline.
func (c TopicConfig) Topics() any {
	raw, ok := c["topics"]
	if !ok || raw == nil {
		return nil
	}
	if m, ok := raw.(map[string]any); ok {
		if nested, ok := m["topics"]; ok && nested != nil {
			return nested
		}
	}
	return raw
}

// Outline is the payload embedded in the topic-generation prompt: the topic outline, or
// the whole config when it has none.
func (c TopicConfig) Outline() any {
	if t := c.Topics(); t != nil {
		return t
	}
	return map[string]any(c)
}

// TrustProfilesRaw returns the trust-profile value exactly as configured.
func (c TopicConfig) TrustProfilesRaw() any {
	for _, k := range []string{"trustProfiles", "trust_profiles"} {
		if v, ok := c[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// TrustProfiles unwraps trustProfiles.trustProfiles when present. Never nil.
func (c TopicConfig) TrustProfiles() map[string]any {
	m, ok := c.TrustProfilesRaw().(map[string]any)
	if !ok {
		return map[string]any{}
	}
	if nested, ok := m["trustProfiles"].(map[string]any); ok {
		return nested
	}
	return m
}

func (c TopicConfig) AssetScoring() any {
	for _, k := range []string{"assetScoring", "asset_scoring"} {
		if v, ok := c[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
