package ai

// modelAliases maps the friendly names used in tournament rosters to
// concrete provider model identifiers.
var modelAliases = map[string]string{
	"GPT-4o":          "gpt-4o",
	"GPT-4o Mini":     "gpt-4o-mini",
	"GPT-4.1":         "gpt-4.1",
	"o3 Mini":         "o3-mini",
	"Claude Sonnet":   "openrouter/anthropic/claude-3.7-sonnet",
	"Claude Haiku":    "openrouter/anthropic/claude-3.5-haiku",
	"Gemini Flash":    "openrouter/google/gemini-2.0-flash-001",
	"DeepSeek V3":     "openrouter/deepseek/deepseek-chat",
	"Llama 3.3 70B":   "groq/llama-3.3-70b-versatile",
	"Llama 3.1 8B":    "groq/llama-3.1-8b-instant",
	"Mistral Large":   "openrouter/mistralai/mistral-large-2411",
	"Qwen 2.5 72B":    "openrouter/qwen/qwen-2.5-72b-instruct",
}

// ResolveModel turns a roster alias into a model identifier. Unknown
// aliases pass through verbatim so raw identifiers keep working.
func ResolveModel(alias string) string {
	if id, ok := modelAliases[alias]; ok {
		return id
	}
	return alias
}

var samplingOverrides = map[string]SamplingConfig{
	"o3-mini": {Temperature: 1.0, MaxTokens: 4096},
}

// SamplingFor returns the sampling settings for a model identifier.
func SamplingFor(model string) SamplingConfig {
	if cfg, ok := samplingOverrides[model]; ok {
		return cfg
	}
	return DefaultSamplingConfig()
}
