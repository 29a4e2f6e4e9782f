package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func keys(m map[string]struct{}) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	return res
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{name: "hangul shingles", title: "블루아울 환매 중단 발표",
			want: []string{"블루", "루아", "아울", "환매", "중단", "발표"}},
		{name: "punctuation splits runs", title: "사모펀드 블루아울, 환매중단",
			want: []string{"사모", "모펀", "펀드", "블루", "루아", "아울", "환매", "매중", "중단"}},
		{name: "latin needs three runes", title: "Fed cuts rates by 25bp",
			want: []string{"fed", "cuts", "rates", "25bp"}},
		{name: "script change splits token", title: "SK하이닉스 HBM3E 양산",
			want: []string{"하이", "이닉", "닉스", "hbm3e", "양산"}},
		{name: "single syllables dropped", title: "금 값 급등",
			want: []string{"급등"}},
		{name: "duplicates collapse", title: "속보 속보 BREAKING breaking",
			want: []string{"속보", "breaking"}},
		{name: "empty", title: "  ...  ", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, keys(Tokenize(tt.title)))
		})
	}
}

func TestJaccard(t *testing.T) {
	a := Tokenize("블루아울 환매 중단 발표")
	b := Tokenize("사모펀드 블루아울, 환매중단 결정")
	assert.InDelta(t, 5.0/11.0, Jaccard(a, b), 0.0001)
	assert.InDelta(t, Jaccard(a, b), Jaccard(b, a), 0.0001, "symmetric")
	assert.InDelta(t, 1.0, Jaccard(a, a), 0.0001)
	assert.Zero(t, Jaccard(a, Tokenize("코스피 하락 마감")))
	assert.Zero(t, Jaccard(map[string]struct{}{}, map[string]struct{}{}))
}

func TestUnionFind(t *testing.T) {
	t.Run("deep chain", func(t *testing.T) {
		const n = 100000
		uf := newUnionFind(n)
		for i := 0; i < n-1; i++ {
			uf.union(i+1, i)
		}
		root := uf.find(0)
		for i := 0; i < n; i += 997 {
			assert.Equal(t, root, uf.find(i))
		}
	})

	t.Run("separate sets", func(t *testing.T) {
		uf := newUnionFind(5)
		uf.union(0, 1)
		uf.union(3, 4)
		assert.Equal(t, uf.find(0), uf.find(1))
		assert.Equal(t, uf.find(3), uf.find(4))
		assert.NotEqual(t, uf.find(0), uf.find(3))
		assert.Equal(t, 2, uf.find(2))
	})
}
