// Package openaicompat adapts any endpoint that speaks the OpenAI chat
// completions format, using github.com/sashabaranov/go-openai.
//
// The same adapter serves OpenRouter, DeepSeek and self-hosted gateways;
// only the name, base URL and default model differ:
//
//	p := openaicompat.New("deepseek", providers.Config{
//	    APIKey: os.Getenv("DEEPSEEK_API_KEY"),
//	    Model:  "deepseek-chat",
//	})
//
// Each successful call yields a thought followed by an action naming the
// endpoint that served it.
package openaicompat
