package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextLink(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "empty header",
			header: "",
			want:   "",
		},
		{
			name:   "next among other relations",
			header: `<https://c.example/api/v1/courses?page=2>; rel="next", <https://c.example/api/v1/courses?page=1>; rel="first", <https://c.example/api/v1/courses?page=9>; rel="last"`,
			want:   "https://c.example/api/v1/courses?page=2",
		},
		{
			name:   "no next relation on last page",
			header: `<https://c.example/api/v1/courses?page=1>; rel="first", <https://c.example/api/v1/courses?page=9>; rel="prev"`,
			want:   "",
		},
		{
			name:   "unquoted rel parameter",
			header: `<https://c.example/api/v1/courses?page=3>; rel=next`,
			want:   "https://c.example/api/v1/courses?page=3",
		},
		{
			name:   "single next link",
			header: `<https://c.example/api/v1/courses?page=2&per_page=100>; rel="next"`,
			want:   "https://c.example/api/v1/courses?page=2&per_page=100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextLink(tt.header))
		})
	}
}
