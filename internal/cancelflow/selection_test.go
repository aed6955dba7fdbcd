package cancelflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSelection(t *testing.T) {
	cases := []struct {
		text string
		n    int
		want []int
	}{
		{"1", 3, []int{1}},
		{"1,3", 3, []int{1, 3}},
		{"3 y 1", 3, []int{3, 1}},
		{"2, 2, 2", 3, []int{2}},
		{"1, 7", 3, []int{1}},
		{"0", 3, []int{}},
		{"todas", 3, []int{1, 2, 3}},
		{"Todos.", 2, []int{1, 2}},
		{"TODAS LAS ANTERIORES", 2, []int{1, 2}},
		{"all", 1, []int{1}},
		{"el primero", 3, []int{}},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseSelection(tc.text, tc.n))
		})
	}
}

func TestIsAbort(t *testing.T) {
	for _, text := range []string{"salir", "Salir.", "ninguno", "NADA", "no", "abort"} {
		assert.True(t, IsAbort(text), text)
	}
	for _, text := range []string{"1", "todas", "no sé", ""} {
		assert.False(t, IsAbort(text), text)
	}
}
