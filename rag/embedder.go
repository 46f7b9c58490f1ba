package rag

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultDimensions is the vector width of the default HashingEmbedder.
const DefaultDimensions = 256

// Embedder maps text to a fixed-width vector.
type Embedder interface {
	Embed(text string) []float64
}

// HashingEmbedder 基于特征哈希的本地嵌入：对小写后的词元及相邻词元二元组做
// FNV-1a 哈希分桶（带符号），最后做 L2 归一化。无需模型、无网络调用。
type HashingEmbedder struct {
	dims int
}

var _ Embedder = (*HashingEmbedder)(nil)

// NewHashingEmbedder 创建哈希嵌入器，dims <= 0 时使用 DefaultDimensions
func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashingEmbedder{dims: dims}
}

func (h *HashingEmbedder) Dimensions() int { return h.dims }

func (h *HashingEmbedder) Embed(text string) []float64 {
	vec := make([]float64, h.dims)
	tokens := Tokenize(text)
	for i, tok := range tokens {
		h.add(vec, tok)
		if i > 0 {
			h.add(vec, tokens[i-1]+" "+tok)
		}
	}
	normalize(vec)
	return vec
}

func (h *HashingEmbedder) add(vec []float64, feature string) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	sign := 1.0
	if sum>>63 == 1 {
		sign = -1.0
	}
	vec[sum%uint64(h.dims)] += sign
}

// Tokenize 按 Unicode 字母/数字切分并转为小写
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func normalize(vec []float64) {
	var sq float64
	for _, v := range vec {
		sq += v * v
	}
	if sq == 0 {
		return
	}
	norm := math.Sqrt(sq)
	for i := range vec {
		vec[i] /= norm
	}
}

// CosineSimilarity 计算余弦相似度并截断到 [0, 1]。
// 长度不一致或任一向量为零向量时返回 0。
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(0, math.Min(1, sim))
}
