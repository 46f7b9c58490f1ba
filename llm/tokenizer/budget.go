package tokenizer

// Budget tracks how many tokens of a fixed allowance have been spent.
// It is not safe for concurrent use; create one per request.
type Budget struct {
	tok   Tokenizer
	limit int
	used  int
}

// NewBudget returns a budget of limit tokens counted with t.
func NewBudget(t Tokenizer, limit int) *Budget {
	if limit < 0 {
		limit = 0
	}
	return &Budget{tok: t, limit: limit}
}

// Take spends the tokens of text if they fit in what remains. It returns
// false and spends nothing otherwise.
func (b *Budget) Take(text string) (bool, error) {
	n, err := b.tok.CountTokens(text)
	if err != nil {
		return false, err
	}
	if b.used+n > b.limit {
		return false, nil
	}
	b.used += n
	return true, nil
}

func (b *Budget) Used() int { return b.used }

func (b *Budget) Remaining() int { return b.limit - b.used }
