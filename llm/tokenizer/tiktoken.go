package tokenizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TiktokenTokenizer 使用 tiktoken 为 OpenAI 系列模型精确计数。
// 编码数据在首次使用时加载（可能需要下载）。
type TiktokenTokenizer struct {
	model    string
	encoding string

	once    sync.Once
	enc     *tiktoken.Tiktoken
	initErr error
}

// modelEncodings 模型名前缀 → tiktoken 编码
var modelEncodings = map[string]string{
	"gpt-4o":        "o200k_base",
	"gpt-4-turbo":   "cl100k_base",
	"gpt-4":         "cl100k_base",
	"gpt-3.5-turbo": "cl100k_base",
}

const defaultEncoding = "cl100k_base"

// IsTiktokenModel reports whether model belongs to a family tiktoken knows.
func IsTiktokenModel(model string) bool {
	_, ok := encodingFor(model)
	return ok
}

func encodingFor(model string) (string, bool) {
	if enc, ok := modelEncodings[model]; ok {
		return enc, true
	}
	best, bestLen := "", 0
	for prefix, enc := range modelEncodings {
		if strings.HasPrefix(model, prefix) && len(prefix) > bestLen {
			best, bestLen = enc, len(prefix)
		}
	}
	return best, bestLen > 0
}

// NewTiktokenTokenizer 为模型创建 tiktoken 分词器，未知模型使用 cl100k_base
func NewTiktokenTokenizer(model string) *TiktokenTokenizer {
	enc, ok := encodingFor(model)
	if !ok {
		enc = defaultEncoding
	}
	return &TiktokenTokenizer{model: model, encoding: enc}
}

func (t *TiktokenTokenizer) init() error {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = fmt.Errorf("init tiktoken encoding %s: %w", t.encoding, err)
			return
		}
		t.enc = enc
	})
	return t.initErr
}

// Warm loads the encoding data, which may need a download on first use,
// and waits for it no longer than ctx allows. The load itself cannot be
// interrupted; it keeps running in the background after ctx ends.
func (t *TiktokenTokenizer) Warm(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- t.init() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *TiktokenTokenizer) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := t.init(); err != nil {
		return 0, err
	}
	return len(t.enc.Encode(text, nil, nil)), nil
}

// Encoding returns the tiktoken encoding name.
func (t *TiktokenTokenizer) Encoding() string { return t.encoding }

func (t *TiktokenTokenizer) Name() string {
	return fmt.Sprintf("tiktoken[%s]", t.encoding)
}
